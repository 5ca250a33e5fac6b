package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/service/game"
)

type nopRenderer struct{}

func (nopRenderer) ResetBoardView()                           {}
func (nopRenderer) RenderPiece(row, column int, color string) {}
func (nopRenderer) RenderGameOver(message string)             {}

func newTestRouter(t *testing.T) (*gin.Engine, *game.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := game.NewService(nopRenderer{}, logger, game.Options{Player1Color: "red", Player2Color: "yellow"})
	router := NewRouter(RouterConfig{
		Logger: logger,
		Game:   NewGameHandler(svc),
		Static: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
	})
	return router, svc
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestGameHandler_GetGame(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/game", "")

	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[game.Snapshot](t, w)
	assert.Equal(t, domain.StatusNotStarted, snap.Status)
}

func TestGameHandler_StartGame(t *testing.T) {
	t.Run("With colors", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := do(t, router, http.MethodPost, "/api/game/start", `{"player1Color":"#00ff00","player2Color":"#0000ff"}`)

		require.Equal(t, http.StatusOK, w.Code)
		snap := decode[game.Snapshot](t, w)
		assert.Equal(t, domain.StatusInProgress, snap.Status)
		assert.Equal(t, "#00ff00", snap.CurrentColor)
	})

	t.Run("Empty body uses defaults", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := do(t, router, http.MethodPost, "/api/game/start", "")

		require.Equal(t, http.StatusOK, w.Code)
		snap := decode[game.Snapshot](t, w)
		assert.Equal(t, "red", snap.CurrentColor)
	})

	t.Run("Malformed body", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := do(t, router, http.MethodPost, "/api/game/start", `{"player1Color":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGameHandler_DropPiece(t *testing.T) {
	t.Run("Accepted", func(t *testing.T) {
		router, svc := newTestRouter(t)
		svc.Start("red", "yellow")

		w := do(t, router, http.MethodPost, "/api/game/move", `{"column":3}`)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[moveResponse](t, w)
		assert.True(t, resp.Accepted)
		require.NotNil(t, resp.Move)
		assert.Equal(t, domain.Rows-1, resp.Move.Row)
		assert.Equal(t, "red", resp.Game.Board[domain.Rows-1][3])
		assert.Equal(t, 2, resp.Game.CurrentPlayer)
	})

	t.Run("Column zero is a valid column", func(t *testing.T) {
		router, svc := newTestRouter(t)
		svc.Start("red", "yellow")

		w := do(t, router, http.MethodPost, "/api/game/move", `{"column":0}`)

		resp := decode[moveResponse](t, w)
		assert.True(t, resp.Accepted)
	})

	t.Run("Rejected move leaves the board alone", func(t *testing.T) {
		router, svc := newTestRouter(t)
		svc.Start("red", "yellow")
		before := svc.Snapshot()

		w := do(t, router, http.MethodPost, "/api/game/move", `{"column":9}`)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[moveResponse](t, w)
		assert.False(t, resp.Accepted)
		assert.Equal(t, string(domain.ErrInvalidColumn), resp.Reason)
		assert.Equal(t, before, resp.Game)
	})

	t.Run("Before start", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := do(t, router, http.MethodPost, "/api/game/move", `{"column":1}`)

		resp := decode[moveResponse](t, w)
		assert.False(t, resp.Accepted)
		assert.Equal(t, string(domain.ErrGameNotInProgress), resp.Reason)
	})

	t.Run("Missing column", func(t *testing.T) {
		router, svc := newTestRouter(t)
		svc.Start("red", "yellow")

		w := do(t, router, http.MethodPost, "/api/game/move", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRouter(t *testing.T) {
	router, _ := newTestRouter(t)

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusTeapot, do(t, router, http.MethodGet, "/index.html", "").Code)
}

package websocket

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/service/game"
)

type testServer struct {
	*httptest.Server
	game  *game.Service
	conns *ConnectionManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cm := NewConnectionManager(logger)
	svc := game.NewService(cm, logger, game.Options{Player1Color: "red", Player2Color: "yellow"})
	h := NewHandler(cm, svc, nil, logger)

	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, game: svc, conns: cm}
}

func (s *testServer) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(s.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHandler_InitialState(t *testing.T) {
	// Given: a game already in progress
	srv := newTestServer(t)
	srv.game.Start("red", "yellow")
	_, err := srv.game.DropPiece(3)
	require.NoError(t, err)

	// When: a view connects
	conn := srv.dial(t)

	// Then: it is sent the current board
	msg := read(t, conn)
	require.Equal(t, TypeState, msg.Type)
	require.NotNil(t, msg.State)
	assert.Equal(t, "red", msg.State.Board[domain.Rows-1][3])
	assert.Equal(t, 2, msg.State.CurrentPlayer)
}

func TestHandler_PlayGame(t *testing.T) {
	srv := newTestServer(t)
	conn := srv.dial(t)
	require.Equal(t, TypeState, read(t, conn).Type)

	// When: the view starts a game
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeStartGame, Player1Color: "#ff0000", Player2Color: "#00ff00"}))

	// Then: the board is reset
	assert.Equal(t, TypeResetBoard, read(t, conn).Type)

	// When: Player 1 and Player 2 each drop a disk
	for _, column := range []int{0, 0} {
		column := column
		require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeDropPiece, Column: &column}))
	}

	// Then: both placements are broadcast in order
	first := read(t, conn)
	require.Equal(t, TypePiecePlaced, first.Type)
	require.NotNil(t, first.Row)
	assert.Equal(t, domain.Rows-1, *first.Row)
	assert.Equal(t, 0, *first.Column)
	assert.Equal(t, "#ff0000", first.Color)
	assert.Equal(t, 2, first.CurrentPlayer)

	second := read(t, conn)
	require.Equal(t, TypePiecePlaced, second.Type)
	assert.Equal(t, domain.Rows-2, *second.Row)
	assert.Equal(t, "#00ff00", second.Color)
	assert.Equal(t, 1, second.CurrentPlayer)
}

func TestHandler_WinIsBroadcastToEveryView(t *testing.T) {
	srv := newTestServer(t)
	player := srv.dial(t)
	watcher := srv.dial(t)
	require.Equal(t, TypeState, read(t, player).Type)
	require.Equal(t, TypeState, read(t, watcher).Type)

	require.NoError(t, player.WriteJSON(ClientMessage{Type: TypeStartGame}))
	for _, column := range []int{0, 1, 0, 1, 0, 1, 0} {
		column := column
		require.NoError(t, player.WriteJSON(ClientMessage{Type: TypeDropPiece, Column: &column}))
	}

	var msgs []ServerMessage
	for i := 0; i < 9; i++ {
		msgs = append(msgs, read(t, watcher))
	}

	assert.Equal(t, TypeResetBoard, msgs[0].Type)
	winning := msgs[7]
	require.Equal(t, TypePiecePlaced, winning.Type)
	assert.Equal(t, 0, winning.CurrentPlayer)

	last := msgs[8]
	assert.Equal(t, TypeGameOver, last.Type)
	assert.Equal(t, "Player 1 won!", last.Message)
	assert.Equal(t, []domain.Position{{Row: 2, Column: 0}, {Row: 3, Column: 0}, {Row: 4, Column: 0}, {Row: 5, Column: 0}}, last.Line)
	assert.Equal(t, domain.StatusFinished, srv.game.Snapshot().Status)
}

func TestHandler_IgnoresBadInput(t *testing.T) {
	srv := newTestServer(t)
	conn := srv.dial(t)
	require.Equal(t, TypeState, read(t, conn).Type)

	// garbage, unknown types and out of range columns are all dropped
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "resign"}))
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeDropPiece}))
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeStartGame}))
	bad := 42
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeDropPiece, Column: &bad}))
	good := 6
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeDropPiece, Column: &good}))

	// the connection survives and only the valid actions are drawn
	assert.Equal(t, TypeResetBoard, read(t, conn).Type)
	msg := read(t, conn)
	require.Equal(t, TypePiecePlaced, msg.Type)
	assert.Equal(t, 6, *msg.Column)
}

func TestConnectionManager_RemoveConnection(t *testing.T) {
	srv := newTestServer(t)
	conn := srv.dial(t)
	require.Equal(t, TypeState, read(t, conn).Type)
	require.Equal(t, 1, srv.conns.Count())

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool {
		return srv.conns.Count() == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestConnectionManager_StalledViewIsDropped(t *testing.T) {
	srv := newTestServer(t)
	stalled := srv.dial(t)
	require.Equal(t, TypeState, read(t, stalled).Type)
	require.Equal(t, 1, srv.conns.Count())

	// stalled never reads again, so its socket buffers fill up and a write
	// blocks until the broadcast deadline
	big := ServerMessage{Type: TypeGameOver, Message: strings.Repeat("x", 1<<20)}
	for i := 0; i < 256 && srv.conns.Count() > 0; i++ {
		start := time.Now()
		srv.conns.BroadcastMessage(big)
		require.Less(t, time.Since(start), writeWait)
	}

	assert.Equal(t, 0, srv.conns.Count())
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4/internal/config"
	"github.com/iamasit07/connect4/internal/service/game"
	transportHttp "github.com/iamasit07/connect4/internal/transport/http"
	"github.com/iamasit07/connect4/internal/transport/http/middleware"
	"github.com/iamasit07/connect4/internal/transport/websocket"
	"github.com/iamasit07/connect4/web"
)

func main() {
	foundEnv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)
	slog.SetDefault(logger)
	if !foundEnv {
		logger.Info("No .env file found, using environment variables")
	}

	// 1. The connection manager is the renderer the game draws through
	connManager := websocket.NewConnectionManager(logger)
	gameService := game.NewService(connManager, logger, game.Options{
		Player1Color: cfg.Player1Color,
		Player2Color: cfg.Player2Color,
	})

	// 2. Handlers
	checkOrigin := func(r *http.Request) bool {
		return middleware.OriginAllowed(r, cfg.AllowedOrigins)
	}
	wsHandler := websocket.NewHandler(connManager, gameService, checkOrigin, logger)
	gameHandler := transportHttp.NewGameHandler(gameService)

	// 3. Router
	gin.SetMode(gin.ReleaseMode)
	router := transportHttp.NewRouter(transportHttp.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
		Game:           gameHandler,
		WebSocket:      gin.WrapF(wsHandler.HandleWebSocket),
		Static:         web.Handler(),
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Server is shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// hijacked websocket connections are not closed by Shutdown
	connManager.CloseAll()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server exited gracefully")
}

func initLogger(cfg *config.Config) *slog.Logger {
	level, _ := config.ParseLevel(cfg.LogLevel)
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

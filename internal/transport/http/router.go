package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4/internal/transport/http/middleware"
)

type RouterConfig struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	Game           *GameHandler
	WebSocket      gin.HandlerFunc
	Static         http.Handler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger.With("component", "http")

	router := gin.New()
	router.Use(middleware.RequestLogger(logger), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/game")
	{
		api.GET("", cfg.Game.GetGame)
		api.POST("/start", cfg.Game.StartGame)
		api.POST("/move", cfg.Game.DropPiece)
	}

	if cfg.WebSocket != nil {
		router.GET("/ws", cfg.WebSocket)
	}

	if cfg.Static != nil {
		router.NoRoute(gin.WrapH(cfg.Static))
	}

	return router
}

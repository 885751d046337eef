// Package server assembles the HTTP surface around the game hub.
package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/okybr/tictacgo-backend/internal/config"
	"github.com/okybr/tictacgo-backend/internal/game"
)

type Server struct {
	cfg *config.Config
	log *zap.SugaredLogger
	hub *game.Hub
}

func New(cfg *config.Config, log *zap.SugaredLogger) *Server {
	hub := game.NewHub(game.Config{
		ChatHistoryLimit: cfg.ChatHistoryLimit,
		ChatCooldown:     cfg.ChatCooldown,
		ChatMaxLength:    cfg.ChatMaxLength,
	}, log)

	return &Server{
		cfg: cfg,
		log: log,
		hub: hub,
	}
}

// HTTPServer builds the http.Server for the configured address. Read/write
// timeouts stay generous because the websocket endpoint holds connections
// open indefinitely.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:        s.cfg.Addr(),
		Handler:     s.RegisterRoutes(),
		IdleTimeout: time.Minute,
	}
}

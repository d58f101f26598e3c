// Package server is the viewer gateway: it owns the watch sessions,
// polls the upstream game server for each of them, and pushes rendered
// HTML fragments to connected browsers. Game rules never live here; the
// gateway is a consumer of server-confirmed truth.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shiven-Sharmaa/AmongUs/internal/config"
	"github.com/Shiven-Sharmaa/AmongUs/internal/upstream"
)

type Server struct {
	cfg      config.Config
	upstream *upstream.Client
	store    *sessionStore
	ws       *wsHub
}

func New(cfg config.Config, client *upstream.Client) *Server {
	return &Server{
		cfg:      cfg,
		upstream: client,
		store:    newSessionStore(),
		ws:       newWSHub(),
	}
}

func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", s.handleHome)
	r.GET("/sessions/:id", s.handleSessionView)
	r.POST("/api/sessions", s.handleCreateSession)
	r.GET("/api/sessions/:id", s.handleGetSession)
	r.POST("/api/sessions/:id/action", s.handleSubmitAction)
	r.GET("/ws/sessions/:id", s.handleWebsocket)
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

// Shutdown stops every session's poller.
func (s *Server) Shutdown() {
	s.store.StopAll()
}

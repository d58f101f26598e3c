package server

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"github.com/Shiven-Sharmaa/AmongUs/internal/logging"
	"github.com/Shiven-Sharmaa/AmongUs/internal/web"
)

func (s *Server) handleHome(c *gin.Context) {
	templ.Handler(web.Home(s.store.ListSummaries())).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleSessionView(c *gin.Context) {
	sessionID := c.Param("id")
	if _, ok := s.store.Get(sessionID); !ok {
		logging.Log.Infof("session view missing session_id=%s", sessionID)
		c.Redirect(http.StatusFound, "/")
		return
	}
	templ.Handler(web.SessionView(sessionID)).ServeHTTP(c.Writer, c.Request)
}

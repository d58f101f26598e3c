package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shiven-Sharmaa/AmongUs/internal/logging"
	"github.com/Shiven-Sharmaa/AmongUs/internal/upstream"
)

type createSessionRequest struct {
	CrewmateModel string `json:"crewmate_model"`
	ImpostorModel string `json:"impostor_model"`
}

type actionRequest struct {
	ActionIndex *int   `json:"action_index" binding:"required,gte=0"`
	SpeechText  string `json:"speech_text"`
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req createSessionRequest
	if !bindJSON(c, &req, nil, "invalid create request") {
		return
	}
	crewmate := req.CrewmateModel
	if crewmate == "" {
		crewmate = s.cfg.CrewmateModel
	}
	impostor := req.ImpostorModel
	if impostor == "" {
		impostor = s.cfg.ImpostorModel
	}

	gameID, err := s.upstream.CreateGame(c.Request.Context(), crewmate, impostor)
	if err != nil {
		logging.Log.Errorf("create game failed error=%v", err)
		c.JSON(upstreamStatus(err, http.StatusBadGateway), gin.H{"error": err.Error()})
		return
	}

	session := s.store.Create(gameID)
	s.startPolling(session)
	logging.Log.Infof("session created session_id=%s game_id=%d", session.ID, gameID)
	c.JSON(http.StatusCreated, gin.H{
		"session_id": session.ID,
		"game_id":    gameID,
	})
}

func (s *Server) handleGetSession(c *gin.Context) {
	session, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	session.mu.Lock()
	state := buildViewState(session, nil)
	session.mu.Unlock()
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleSubmitAction(c *gin.Context) {
	session, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	var req actionRequest
	messages := bindMessages{
		"ActionIndex": {
			"required": "action_index is required",
			"gte":      "action_index must not be negative",
		},
	}
	if !bindJSON(c, &req, messages, "invalid action request") {
		return
	}

	// Only one action may be outstanding. The panel is cleared right
	// away and the memo invalidated, so the next snapshot re-renders it
	// even if it matches the pre-submit shape.
	session.mu.Lock()
	if session.submitting {
		session.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": errSubmitInFlight.Error()})
		return
	}
	session.submitting = true
	session.view.InvalidateActionPanel()
	pending := []wsHTMLMessage{renderActionPanelMessage(session)}
	session.mu.Unlock()
	s.ws.Broadcast(session.ID, pending)

	err := s.upstream.SubmitAction(context.Background(), session.GameID, *req.ActionIndex, req.SpeechText)

	session.mu.Lock()
	session.submitting = false
	var after []wsHTMLMessage
	if err != nil {
		// Submit failures surface in the banner but never halt polling.
		session.lastError = err.Error()
		after = append(after, renderErrorMessage(session), renderActionPanelMessage(session))
	}
	session.mu.Unlock()
	s.ws.Broadcast(session.ID, after)

	if err != nil {
		logging.Log.Warnf("action submit failed session_id=%s error=%v", session.ID, err)
		c.JSON(upstreamStatus(err, http.StatusBadGateway), gin.H{"error": err.Error()})
		return
	}
	logging.Log.Infof("action submitted session_id=%s action_index=%d", session.ID, *req.ActionIndex)
	c.JSON(http.StatusOK, gin.H{"status": "accepted"})
}

// upstreamStatus maps an upstream APIError onto our response status so
// callers can tell a rejected action from a dead server.
func upstreamStatus(err error, fallback int) int {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		return apiErr.StatusCode
	}
	return fallback
}

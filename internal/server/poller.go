package server

import (
	"context"
	"time"

	"github.com/Shiven-Sharmaa/AmongUs/internal/logging"
)

// startPolling runs the session's poll loop: one fetch per tick, with a
// re-entrancy guard that skips a tick while the previous fetch is still
// unresolved. The loop ends when the game leaves the running states or a
// fetch fails; the in-flight request itself is never aborted.
func (s *Server) startPolling(session *GameSession) {
	go func() {
		ticker := time.NewTicker(s.cfg.PollInterval())
		defer ticker.Stop()
		for {
			select {
			case <-session.stop:
				return
			case <-ticker.C:
				session.mu.Lock()
				busy := session.fetchInFlight
				stopped := session.stopped
				if !busy && !stopped {
					session.fetchInFlight = true
				}
				session.mu.Unlock()
				if stopped {
					return
				}
				if busy {
					continue
				}
				keepGoing := s.pollOnce(session)
				session.mu.Lock()
				session.fetchInFlight = false
				if !keepGoing {
					session.stopped = true
				}
				session.mu.Unlock()
				if !keepGoing {
					session.Stop()
					return
				}
			}
		}
	}()
}

// pollOnce fetches one snapshot, applies it, and pushes the resulting
// fragments. Returns false when polling must stop: fetch error or a
// snapshot with a non-running status.
func (s *Server) pollOnce(session *GameSession) bool {
	snap, err := s.upstream.GameState(context.Background(), session.GameID)
	if err != nil {
		logging.Log.Warnf("poll failed session_id=%s game_id=%d error=%v", session.ID, session.GameID, err)
		session.mu.Lock()
		session.lastError = err.Error()
		messages := []wsHTMLMessage{renderErrorMessage(session)}
		session.mu.Unlock()
		s.ws.Broadcast(session.ID, messages)
		return false
	}

	session.mu.Lock()
	session.lastSnap = snap
	update := session.view.Apply(snap)
	messages := renderUpdateMessages(session, &update)
	session.mu.Unlock()
	s.ws.Broadcast(session.ID, messages)

	if update.Terminal {
		logging.Log.Infof("game over session_id=%s game_id=%d status=%s", session.ID, session.GameID, snap.Status)
		return false
	}
	return true
}

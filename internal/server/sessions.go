package server

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Shiven-Sharmaa/AmongUs/internal/reconcile"
	"github.com/Shiven-Sharmaa/AmongUs/internal/upstream"
	"github.com/Shiven-Sharmaa/AmongUs/internal/web"
)

// GameSession is one upstream game being watched. All fields behind mu
// are touched either by the session's poller goroutine or by handlers
// holding the lock; the reconciler itself is single-writer.
type GameSession struct {
	ID     string
	GameID int

	mu         sync.Mutex
	view       *reconcile.Session
	lastSnap   *upstream.Snapshot
	lastError  string
	submitting bool
	stopped    bool

	// Rendered-fragment signatures; a fragment is pushed only when its
	// content actually changed.
	lastStatusHTML string
	lastMapHTML    string
	lastErrorHTML  string

	fetchInFlight bool
	stop          chan struct{}
	stopOnce      sync.Once
}

func newGameSession(id string, gameID int) *GameSession {
	return &GameSession{
		ID:     id,
		GameID: gameID,
		view:   reconcile.NewSession(),
		stop:   make(chan struct{}),
	}
}

// Stop ends the session's polling loop. Idempotent.
func (g *GameSession) Stop() {
	g.stopOnce.Do(func() { close(g.stop) })
}

type sessionStore struct {
	mu       sync.Mutex
	nextID   int
	sessions map[string]*GameSession
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		nextID:   1,
		sessions: make(map[string]*GameSession),
	}
}

func (s *sessionStore) Create(gameID int) *GameSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("session-%d", s.nextID)
	s.nextID++
	session := newGameSession(id, gameID)
	s.sessions[id] = session
	return session
}

func (s *sessionStore) Get(id string) (*GameSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *sessionStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[id]; ok {
		session.Stop()
		delete(s.sessions, id)
	}
}

func (s *sessionStore) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, session := range s.sessions {
		session.Stop()
	}
}

func (s *sessionStore) ListSummaries() []web.SessionSummary {
	s.mu.Lock()
	sessions := make([]*GameSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.Unlock()

	list := make([]web.SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		session.mu.Lock()
		summary := web.SessionSummary{
			ID:     session.ID,
			GameID: session.GameID,
			Status: upstream.StatusInitializing,
		}
		if session.lastSnap != nil {
			summary.Status = session.lastSnap.Status
			summary.Timestep = session.lastSnap.Timestep
		}
		session.mu.Unlock()
		list = append(list, summary)
	}
	sort.Slice(list, func(i, j int) bool {
		return sessionSortKey(list[i].ID) < sessionSortKey(list[j].ID)
	})
	return list
}

func sessionSortKey(id string) int {
	parts := strings.Split(id, "-")
	if len(parts) < 2 {
		return 0
	}
	value, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return value
}

var errSubmitInFlight = errors.New("an action is already in flight")

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Shiven-Sharmaa/AmongUs/internal/config"
	"github.com/Shiven-Sharmaa/AmongUs/internal/upstream"
)

// fakeUpstream mimics the external game server: a mutable snapshot plus
// a record of submitted actions.
type fakeUpstream struct {
	mu         sync.Mutex
	nextGameID int
	snapshot   upstream.Snapshot
	actions    []map[string]any
	failState  bool
	failSubmit string
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		nextGameID: 1,
		snapshot: upstream.Snapshot{
			Status:      upstream.StatusRunning,
			Timestep:    1,
			IsHumanTurn: false,
		},
	}
}

func (f *fakeUpstream) setSnapshot(snap upstream.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshot = snap
}

func (f *fakeUpstream) submittedActions() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.actions...)
}

func (f *fakeUpstream) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/create_game", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		gameID := f.nextGameID
		f.nextGameID++
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"game_id": gameID, "status": "running"})
	})
	mux.HandleFunc("/game_state", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		fail := f.failState
		snap := f.snapshot
		f.mu.Unlock()
		if fail {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "game exploded"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(snap)
	})
	mux.HandleFunc("/human_action", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)
		f.mu.Lock()
		failDetail := f.failSubmit
		if failDetail == "" {
			f.actions = append(f.actions, payload)
		}
		f.mu.Unlock()
		if failDetail != "" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": failDetail})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
	})
	return mux
}

// newTestServer wires a gateway to a fake upstream and returns all three.
func newTestServer(t *testing.T) (*Server, *fakeUpstream, *httptest.Server) {
	t.Helper()
	fake := newFakeUpstream()
	upstreamTS := httptest.NewServer(fake.handler())
	t.Cleanup(upstreamTS.Close)

	cfg := config.Default()
	cfg.UpstreamBaseURL = upstreamTS.URL
	// Tests drive pollOnce directly; park the background ticker.
	cfg.PollIntervalMS = 60_000
	srv := New(cfg, upstream.NewClient(upstreamTS.URL, time.Second))
	t.Cleanup(srv.Shutdown)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, fake, ts
}

func createSession(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/sessions", map[string]any{})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["session_id"].(string)
}

func fetchViewState(t *testing.T, ts *httptest.Server, sessionID string) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodGet, "/api/sessions/"+sessionID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

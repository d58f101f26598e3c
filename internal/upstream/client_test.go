package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCreateGame(t *testing.T) {
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/create_game" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"game_id": 7, "status": "running"})
	}))
	t.Cleanup(ts.Close)

	client := NewClient(ts.URL, time.Second)
	gameID, err := client.CreateGame(context.Background(), "model-a", "model-b")
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if gameID != 7 {
		t.Fatalf("expected game id 7, got %d", gameID)
	}
	if gotBody["crewmate_model"] != "model-a" || gotBody["impostor_model"] != "model-b" {
		t.Fatalf("unexpected create payload: %#v", gotBody)
	}
}

func TestGameState(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/game_state" || r.URL.Query().Get("game_id") != "3" {
			t.Fatalf("unexpected request %s %s", r.URL.Path, r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"game_id":       3,
			"status":        "running",
			"timestep":      12,
			"current_phase": "task",
			"is_human_turn": true,
			"available_actions": []map[string]any{
				{"index": 0, "name": "Move to Weapons", "requires_message": false},
			},
			"player_positions": []map[string]any{
				{"name": "Player 1: Red", "room": "Cafeteria", "color": "Red", "is_alive": true},
			},
		})
	}))
	t.Cleanup(ts.Close)

	client := NewClient(ts.URL, time.Second)
	snap, err := client.GameState(context.Background(), 3)
	if err != nil {
		t.Fatalf("game state: %v", err)
	}
	if snap.Timestep != 12 || !snap.IsHumanTurn {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if len(snap.Actions) != 1 || snap.Actions[0].Name != "Move to Weapons" {
		t.Fatalf("unexpected actions: %+v", snap.Actions)
	}
	if len(snap.PlayerPositions) != 1 || snap.PlayerPositions[0].Room != "Cafeteria" {
		t.Fatalf("unexpected positions: %+v", snap.PlayerPositions)
	}
	if !snap.Running() {
		t.Fatalf("expected running snapshot")
	}
}

func TestSubmitActionPayload(t *testing.T) {
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/human_action" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
	}))
	t.Cleanup(ts.Close)

	client := NewClient(ts.URL, time.Second)
	if err := client.SubmitAction(context.Background(), 5, 2, "hello"); err != nil {
		t.Fatalf("submit action: %v", err)
	}
	if gotBody["game_id"].(float64) != 5 || gotBody["action_index"].(float64) != 2 {
		t.Fatalf("unexpected action payload: %#v", gotBody)
	}
	if gotBody["speech_text"] != "hello" {
		t.Fatalf("unexpected speech text: %#v", gotBody["speech_text"])
	}
}

func TestErrorDetailDecoded(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "action_index out of range: 9"})
	}))
	t.Cleanup(ts.Close)

	client := NewClient(ts.URL, time.Second)
	err := client.SubmitAction(context.Background(), 1, 9, "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
	if apiErr.Detail != "action_index out of range: 9" {
		t.Fatalf("unexpected detail: %q", apiErr.Detail)
	}
}

func TestErrorFallsBackToRawBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	t.Cleanup(ts.Close)

	client := NewClient(ts.URL, time.Second)
	_, err := client.GameState(context.Background(), 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Detail != "upstream exploded" {
		t.Fatalf("unexpected detail: %q", apiErr.Detail)
	}
}

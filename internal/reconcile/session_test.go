package reconcile

import (
	"testing"

	"github.com/Shiven-Sharmaa/AmongUs/internal/upstream"
)

func runningSnapshot() *upstream.Snapshot {
	return &upstream.Snapshot{
		Status:        upstream.StatusRunning,
		Timestep:      3,
		CurrentPhase:  "task",
		CurrentPlayer: "Player 1: Red",
		IsHumanTurn:   true,
		Actions: []upstream.Action{
			{Index: 0, Name: "Move to Weapons", RequiresMessage: false},
			{Index: 1, Name: "Report", RequiresMessage: false},
		},
		PlayerPositions: []upstream.PlayerPosition{
			{Name: "Player 1: Red", Room: "Cafeteria", Color: "Red", IsAlive: true},
			{Name: "Player 2: Blue", Room: "Storage", Color: "Blue", IsAlive: true},
		},
		PlayerInfo: "Players in Cafeteria: Player 1: Red\nPlayers in Storage: Player 2: Blue",
	}
}

func TestApplyIdempotent(t *testing.T) {
	session := NewSession()
	first := session.Apply(runningSnapshot())
	if !first.RenderActions {
		t.Fatalf("first apply must render the action panel")
	}
	if len(first.Log) == 0 {
		t.Fatalf("first apply should surface log lines")
	}

	second := session.Apply(runningSnapshot())
	if len(second.Moves) != 0 {
		t.Fatalf("identical snapshot produced moves: %+v", second.Moves)
	}
	if second.RenderActions {
		t.Fatalf("identical snapshot should not re-render actions")
	}
	if len(second.Meeting) != 0 || len(second.Tasks) != 0 || len(second.Log) != 0 {
		t.Fatalf("identical snapshot produced feed entries: %+v", second)
	}
	if second.ActiveRoomChanged {
		t.Fatalf("active room should be stable across identical snapshots")
	}
}

func TestMovesDetected(t *testing.T) {
	session := NewSession()
	session.Apply(runningSnapshot())

	snap := runningSnapshot()
	snap.PlayerPositions[1].Room = "Admin"
	update := session.Apply(snap)
	if len(update.Moves) != 1 {
		t.Fatalf("expected 1 move, got %+v", update.Moves)
	}
	move := update.Moves[0]
	if move.Player != "Player 2: Blue" || move.From != Room("Storage") || move.To != Room("Admin") {
		t.Fatalf("unexpected move: %+v", move)
	}
}

func TestActiveRoomTracksCurrentPlayer(t *testing.T) {
	session := NewSession()
	update := session.Apply(runningSnapshot())
	if !update.ActiveRoomChanged || update.ActiveRoom != Room("Cafeteria") {
		t.Fatalf("expected active room Cafeteria, got %+v", update)
	}

	snap := runningSnapshot()
	snap.CurrentPlayer = "Player 2: Blue"
	update = session.Apply(snap)
	if !update.ActiveRoomChanged || update.ActiveRoom != Room("Storage") {
		t.Fatalf("expected active room Storage, got %+v", update)
	}
}

func TestActionPanelMemo(t *testing.T) {
	session := NewSession()
	session.Apply(runningSnapshot())

	// Same actions, flag flipped: render.
	snap := runningSnapshot()
	snap.IsHumanTurn = false
	update := session.Apply(snap)
	if !update.RenderActions {
		t.Fatalf("flag flip must re-render")
	}

	// Flag stable, signature changed: render.
	snap = runningSnapshot()
	snap.IsHumanTurn = false
	snap.Actions = []upstream.Action{{Index: 0, Name: "Wait", RequiresMessage: false}}
	update = session.Apply(snap)
	if !update.RenderActions {
		t.Fatalf("signature change must re-render")
	}

	// Nothing changed: no render.
	update = session.Apply(snap)
	if update.RenderActions {
		t.Fatalf("no-op tick must not re-render")
	}
}

func TestInvalidateActionPanelForcesRender(t *testing.T) {
	session := NewSession()
	session.Apply(runningSnapshot())
	session.InvalidateActionPanel()
	update := session.Apply(runningSnapshot())
	if !update.RenderActions {
		t.Fatalf("invalidation must force a render even for an identical snapshot")
	}
}

func TestMeetingDedup(t *testing.T) {
	snap := &upstream.Snapshot{
		Status:   upstream.StatusRunning,
		Timestep: 3,
		MeetingMessages: []upstream.MeetingMessage{
			{Timestep: 3, Player: "Player 1: Red", Text: "hi"},
		},
	}
	session := NewSession()
	first := session.Apply(snap)
	if len(first.Meeting) != 1 {
		t.Fatalf("expected 1 meeting entry, got %d", len(first.Meeting))
	}
	second := session.Apply(snap)
	if len(second.Meeting) != 0 {
		t.Fatalf("duplicate message must be suppressed, got %d", len(second.Meeting))
	}
	if len(session.MeetingEntries()) != 1 {
		t.Fatalf("feed should hold exactly one entry, got %d", len(session.MeetingEntries()))
	}
}

func TestMeetingFallbackFromBlob(t *testing.T) {
	snap := &upstream.Snapshot{
		Status:     upstream.StatusRunning,
		Timestep:   4,
		PlayerInfo: "[meeting] Player 2: Blue SPEAK: it was not me",
	}
	session := NewSession()
	update := session.Apply(snap)
	if len(update.Meeting) != 1 {
		t.Fatalf("expected 1 meeting entry from blob, got %d", len(update.Meeting))
	}
	entry := update.Meeting[0]
	if entry.Timestep != 4 || entry.Player != "Player 2: Blue" || entry.Text != "it was not me" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestTaskFeedAttribution(t *testing.T) {
	snap := &upstream.Snapshot{
		Status:        upstream.StatusRunning,
		Timestep:      5,
		CurrentPlayer: "Player 3: Green",
		PlayerInfo: "Seemingly doing task at wires\n" +
			"Player 4: Pink Seemingly doing task in Electrical\n",
	}
	session := NewSession()
	update := session.Apply(snap)
	if len(update.Tasks) != 2 {
		t.Fatalf("expected 2 task events, got %d", len(update.Tasks))
	}
	if update.Tasks[0].Player != "Player 3: Green" {
		t.Fatalf("first-person task should attribute to current player, got %q", update.Tasks[0].Player)
	}
	if update.Tasks[1].Player != "Player 4: Pink" {
		t.Fatalf("unexpected observed player: %q", update.Tasks[1].Player)
	}
}

func TestLogFeedDiffAndStamp(t *testing.T) {
	session := NewSession()
	session.Apply(&upstream.Snapshot{
		Status:       upstream.StatusRunning,
		Timestep:     1,
		CurrentPhase: "task",
		PlayerInfo:   "alpha\nbeta\n",
	})
	update := session.Apply(&upstream.Snapshot{
		Status:       upstream.StatusRunning,
		Timestep:     2,
		CurrentPhase: "meeting",
		PlayerInfo:   "beta\ngamma\n",
	})
	if len(update.Log) != 1 {
		t.Fatalf("expected 1 new log line, got %+v", update.Log)
	}
	if update.Log[0].Stamped() != "[T2] [meeting] gamma" {
		t.Fatalf("unexpected stamp: %q", update.Log[0].Stamped())
	}
}

func TestTerminalSnapshot(t *testing.T) {
	winner := 1
	session := NewSession()
	update := session.Apply(&upstream.Snapshot{
		Status:       upstream.StatusCompleted,
		Winner:       &winner,
		WinnerReason: "All impostors ejected",
	})
	if !update.Terminal {
		t.Fatalf("completed status must be terminal")
	}
	if update.Winner == nil || *update.Winner != 1 || update.WinnerReason == "" {
		t.Fatalf("winner fields missing: %+v", update)
	}
}

func TestActionSignature(t *testing.T) {
	actions := []upstream.Action{
		{Index: 0, Name: "Move", RequiresMessage: false},
		{Index: 1, Name: "Speak", RequiresMessage: true},
	}
	sig := ActionSignature(actions)
	if sig != "0|Move|false;1|Speak|true" {
		t.Fatalf("unexpected signature: %q", sig)
	}
	if ActionSignature(nil) != "" {
		t.Fatalf("empty action list should have empty signature")
	}
}

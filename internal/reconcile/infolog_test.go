package reconcile

import "testing"

func TestParseInfoOccupancy(t *testing.T) {
	report := ParseInfo("Players in Cafeteria: Player 1: Red, Player 2: Blue (dead)\n")
	if len(report.Occupancy) != 1 {
		t.Fatalf("expected 1 occupancy entry, got %d", len(report.Occupancy))
	}
	occ := report.Occupancy[0]
	if occ.Room != "Cafeteria" {
		t.Fatalf("expected room Cafeteria, got %q", occ.Room)
	}
	if len(occ.Players) != 2 {
		t.Fatalf("expected 2 occupants, got %d", len(occ.Players))
	}
	if occ.Players[0].Name != "Player 1: Red" || occ.Players[0].Dead {
		t.Fatalf("unexpected first occupant: %+v", occ.Players[0])
	}
	if occ.Players[1].Name != "Player 2: Blue" || !occ.Players[1].Dead {
		t.Fatalf("unexpected second occupant: %+v", occ.Players[1])
	}
}

func TestParseInfoMoveAndLocation(t *testing.T) {
	blob := "Current Location: Storage\nPlayer 3: Green MOVE from Cafeteria to Weapons\n"
	report := ParseInfo(blob)
	if report.CurrentLocation != "Storage" {
		t.Fatalf("expected location Storage, got %q", report.CurrentLocation)
	}
	if len(report.Moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(report.Moves))
	}
	move := report.Moves[0]
	if move.Player != "Player 3: Green" || move.From != "Cafeteria" || move.To != "Weapons" {
		t.Fatalf("unexpected move: %+v", move)
	}
}

func TestParseInfoSpeech(t *testing.T) {
	blob := "[meeting round 2] Player 1: Red SPEAK: I saw Blue vent\nnot a speech line\n"
	report := ParseInfo(blob)
	if len(report.Speech) != 1 {
		t.Fatalf("expected 1 speech entry, got %d", len(report.Speech))
	}
	if report.Speech[0].Player != "Player 1: Red" {
		t.Fatalf("unexpected speaker: %q", report.Speech[0].Player)
	}
	if report.Speech[0].Text != "I saw Blue vent" {
		t.Fatalf("unexpected text: %q", report.Speech[0].Text)
	}
}

func TestParseInfoTasks(t *testing.T) {
	blob := "Player 4: Pink Seemingly doing task in Electrical\nSeemingly doing task at the wires panel\n"
	report := ParseInfo(blob)
	if len(report.Tasks) != 2 {
		t.Fatalf("expected 2 task entries, got %d", len(report.Tasks))
	}
	if report.Tasks[0].Player != "Player 4: Pink" {
		t.Fatalf("unexpected observed player: %q", report.Tasks[0].Player)
	}
	if report.Tasks[1].Player != "" {
		t.Fatalf("first-person task should have empty player, got %q", report.Tasks[1].Player)
	}
}

func TestParseInfoKeepsAllLines(t *testing.T) {
	blob := "  line one  \n\n\nline two\n"
	report := ParseInfo(blob)
	if len(report.Lines) != 2 {
		t.Fatalf("expected 2 trimmed lines, got %d", len(report.Lines))
	}
	if report.Lines[0] != "line one" || report.Lines[1] != "line two" {
		t.Fatalf("unexpected lines: %#v", report.Lines)
	}
}

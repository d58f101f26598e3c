package reconcile

import "testing"

func TestCanonicalRoom(t *testing.T) {
	if room := CanonicalRoom("Cafeteria"); room != Room("Cafeteria") {
		t.Fatalf("expected Cafeteria, got %q", room)
	}
	if room := CanonicalRoom("  lower   engine "); room != Room("Lower Engine") {
		t.Fatalf("expected Lower Engine, got %q", room)
	}
	if room := CanonicalRoom("MEDBAY"); room != Room("Medbay") {
		t.Fatalf("expected Medbay, got %q", room)
	}
	if room := CanonicalRoom("The Moon"); room != RoomUnknown {
		t.Fatalf("expected Unknown, got %q", room)
	}
	if room := CanonicalRoom(""); room != RoomUnknown {
		t.Fatalf("expected Unknown for empty string, got %q", room)
	}
}

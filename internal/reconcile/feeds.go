package reconcile

import (
	"fmt"

	"github.com/Shiven-Sharmaa/AmongUs/internal/upstream"
)

// MeetingEntry is one line of the append-only meeting feed.
type MeetingEntry struct {
	Timestep int
	Player   string
	Text     string
}

// TaskEvent is one "seemingly doing task" sighting in the task feed.
type TaskEvent struct {
	Timestep int
	Player   string
}

// LogEntry is one new line of the raw log feed, stamped with the
// timestep and phase it first appeared under.
type LogEntry struct {
	Timestep int
	Phase    string
	Line     string
}

// Stamped renders the entry the way the log pane shows it.
func (e LogEntry) Stamped() string {
	return fmt.Sprintf("[T%d] [%s] %s", e.Timestep, e.Phase, e.Line)
}

// meetingFeed deduplicates by (timestep, player, text) across the whole
// session, so overlapping log re-fetches never repeat a message.
type meetingFeed struct {
	seen    map[string]struct{}
	entries []MeetingEntry
}

func newMeetingFeed() *meetingFeed {
	return &meetingFeed{seen: make(map[string]struct{})}
}

func (f *meetingFeed) add(entry MeetingEntry) bool {
	key := fmt.Sprintf("%d|%s|%s", entry.Timestep, entry.Player, entry.Text)
	if _, dup := f.seen[key]; dup {
		return false
	}
	f.seen[key] = struct{}{}
	f.entries = append(f.entries, entry)
	return true
}

// append merges one snapshot's messages and returns the entries that were
// actually new. Structured meeting_messages win; otherwise SPEAK lines
// scraped from the info blob are attributed to the current timestep.
func (f *meetingFeed) append(snap *upstream.Snapshot, info *InfoReport) []MeetingEntry {
	var fresh []MeetingEntry
	if len(snap.MeetingMessages) > 0 {
		for _, msg := range snap.MeetingMessages {
			entry := MeetingEntry{Timestep: msg.Timestep, Player: msg.Player, Text: msg.Text}
			if f.add(entry) {
				fresh = append(fresh, entry)
			}
		}
		return fresh
	}
	if info == nil {
		return nil
	}
	for _, speech := range info.Speech {
		entry := MeetingEntry{Timestep: snap.Timestep, Player: speech.Player, Text: speech.Text}
		if f.add(entry) {
			fresh = append(fresh, entry)
		}
	}
	return fresh
}

// taskFeed deduplicates by (timestep, player, "task"): one sighting per
// player per timestep no matter how often the line recurs in the blob.
type taskFeed struct {
	seen    map[string]struct{}
	entries []TaskEvent
}

func newTaskFeed() *taskFeed {
	return &taskFeed{seen: make(map[string]struct{})}
}

func (f *taskFeed) append(snap *upstream.Snapshot, info *InfoReport) []TaskEvent {
	if info == nil {
		return nil
	}
	var fresh []TaskEvent
	for _, task := range info.Tasks {
		player := task.Player
		if player == "" {
			// First-person form; the current player is the one doing it.
			player = snap.CurrentPlayer
		}
		if player == "" {
			continue
		}
		key := fmt.Sprintf("%d|%s|task", snap.Timestep, player)
		if _, dup := f.seen[key]; dup {
			continue
		}
		f.seen[key] = struct{}{}
		event := TaskEvent{Timestep: snap.Timestep, Player: player}
		f.entries = append(f.entries, event)
		fresh = append(fresh, event)
	}
	return fresh
}

// logFeed appends lines of the current blob absent from the previous
// blob's line set. This is a naive line-set diff, not a patch: a line
// that recurs verbatim after intervening different lines is treated as
// already seen and suppressed, and a server-side format change makes
// every line look new.
type logFeed struct {
	prevLines map[string]struct{}
	entries   []LogEntry
}

func newLogFeed() *logFeed {
	return &logFeed{prevLines: make(map[string]struct{})}
}

func (f *logFeed) append(snap *upstream.Snapshot, info *InfoReport) []LogEntry {
	if info == nil {
		return nil
	}
	var fresh []LogEntry
	for _, line := range info.Lines {
		if _, seen := f.prevLines[line]; seen {
			continue
		}
		entry := LogEntry{Timestep: snap.Timestep, Phase: snap.CurrentPhase, Line: line}
		f.entries = append(f.entries, entry)
		fresh = append(fresh, entry)
	}
	next := make(map[string]struct{}, len(info.Lines))
	for _, line := range info.Lines {
		next[line] = struct{}{}
	}
	f.prevLines = next
	return fresh
}

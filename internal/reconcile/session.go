// Package reconcile turns repeated, loosely structured game snapshots
// into idempotent view updates. A Session is the explicit per-game
// context object: all directories, dedup sets, and memo signatures live
// on it, so several games can be reconciled side by side and the logic
// tests without shared fixtures. Nothing in this package renders or does
// I/O; Apply returns a plain Update describing what changed.
package reconcile

import (
	"strconv"
	"strings"

	"github.com/Shiven-Sharmaa/AmongUs/internal/upstream"
)

// Move records a player changing rooms between two snapshots. Renderers
// reattach the token and play a transient animation on it.
type Move struct {
	Player string
	From   Room
	To     Room
}

// Update is what one Apply call changed. Renderers consume it without
// re-deriving anything from the raw snapshot.
type Update struct {
	Timestep int
	Phase    string
	Status   string

	Moves             []Move
	ActiveRoom        Room
	ActiveRoomChanged bool

	// RenderActions reports whether the action panel must re-render:
	// the human-turn flag flipped or the action signature changed.
	RenderActions bool
	IsHumanTurn   bool
	Actions       []upstream.Action

	Meeting []MeetingEntry
	Tasks   []TaskEvent
	Log     []LogEntry

	Terminal     bool
	Winner       *int
	WinnerReason string
}

// Session holds all view state for one game.
type Session struct {
	directory *Directory
	meetings  *meetingFeed
	tasks     *taskFeed
	log       *logFeed

	lastActionSig   string
	lastIsHumanTurn *bool
	activeRoom      Room
	hasActiveRoom   bool
}

func NewSession() *Session {
	return &Session{
		directory: NewDirectory(),
		meetings:  newMeetingFeed(),
		tasks:     newTaskFeed(),
		log:       newLogFeed(),
	}
}

// Directory exposes the player records for full renders.
func (s *Session) Directory() *Directory { return s.directory }

// ActiveRoom is the canonical room of the current-turn player, if known.
func (s *Session) ActiveRoom() (Room, bool) { return s.activeRoom, s.hasActiveRoom }

// MeetingEntries returns the full append-only meeting feed.
func (s *Session) MeetingEntries() []MeetingEntry { return s.meetings.entries }

// TaskEvents returns the full task feed.
func (s *Session) TaskEvents() []TaskEvent { return s.tasks.entries }

// LogEntries returns the full raw-log feed.
func (s *Session) LogEntries() []LogEntry { return s.log.entries }

// Apply merges one snapshot into the session and reports what changed.
// Applying the same snapshot twice yields no moves, no new feed entries,
// and RenderActions false.
func (s *Session) Apply(snap *upstream.Snapshot) Update {
	var info *InfoReport
	if snap.PlayerInfo != "" {
		info = ParseInfo(snap.PlayerInfo)
	}

	before := make(map[string]Room, len(s.directory.players))
	for name, record := range s.directory.players {
		before[name] = record.Room
	}

	s.directory.update(snap, info)

	update := Update{
		Timestep:     snap.Timestep,
		Phase:        snap.CurrentPhase,
		Status:       snap.Status,
		IsHumanTurn:  snap.IsHumanTurn,
		Actions:      append([]upstream.Action(nil), snap.Actions...),
		Winner:       snap.Winner,
		WinnerReason: snap.WinnerReason,
		Terminal:     !snap.Running(),
	}

	for _, record := range s.directory.Players() {
		from, existed := before[record.Name]
		if existed && from != record.Room {
			update.Moves = append(update.Moves, Move{Player: record.Name, From: from, To: record.Room})
		}
	}

	update.ActiveRoom, update.ActiveRoomChanged = s.trackActiveRoom(snap)

	sig := ActionSignature(snap.Actions)
	if s.lastIsHumanTurn == nil || *s.lastIsHumanTurn != snap.IsHumanTurn || s.lastActionSig != sig {
		update.RenderActions = true
	}
	isHuman := snap.IsHumanTurn
	s.lastIsHumanTurn = &isHuman
	s.lastActionSig = sig

	update.Meeting = s.meetings.append(snap, info)
	update.Tasks = s.tasks.append(snap, info)
	update.Log = s.log.append(snap, info)

	return update
}

// InvalidateActionPanel forces the next Apply to report RenderActions,
// even for a snapshot identical in shape to the pre-submit one. Called
// right after an action submission clears the panel.
func (s *Session) InvalidateActionPanel() {
	s.lastIsHumanTurn = nil
}

// trackActiveRoom keeps the single "active" room in sync with the
// current-turn player. The previous highlight must always be cleared
// before the new one is set, so a change is reported explicitly.
func (s *Session) trackActiveRoom(snap *upstream.Snapshot) (Room, bool) {
	next := Room("")
	has := false
	if snap.CurrentPlayer != "" {
		if record, ok := s.directory.Get(snap.CurrentPlayer); ok {
			next = record.Room
			has = true
		}
	}
	changed := has != s.hasActiveRoom || next != s.activeRoom
	s.activeRoom = next
	s.hasActiveRoom = has
	return next, changed
}

// ActionSignature derives the memo key for the action list. Two snapshots
// with equal signatures need no action-panel re-render.
func ActionSignature(actions []upstream.Action) string {
	parts := make([]string, 0, len(actions))
	for _, action := range actions {
		part := strconv.Itoa(action.Index) + "|" + action.Name + "|" + strconv.FormatBool(action.RequiresMessage)
		parts = append(parts, part)
	}
	return strings.Join(parts, ";")
}

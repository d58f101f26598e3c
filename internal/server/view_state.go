package server

import (
	"fmt"

	"github.com/Shiven-Sharmaa/AmongUs/internal/reconcile"
	"github.com/Shiven-Sharmaa/AmongUs/internal/upstream"
	"github.com/Shiven-Sharmaa/AmongUs/internal/web"
)

// buildViewState projects a session onto the view types. update may be
// nil (full render for a fresh websocket or the JSON endpoint); when set,
// its moves mark tokens for the transient animation. Caller holds the
// session lock.
func buildViewState(session *GameSession, update *reconcile.Update) web.ViewState {
	state := web.ViewState{
		SessionID:  session.ID,
		GameID:     session.GameID,
		Status:     upstream.StatusInitializing,
		Submitting: session.submitting,
		Error:      session.lastError,
	}
	snap := session.lastSnap
	if snap != nil {
		state.Status = snap.Status
		state.Phase = snap.CurrentPhase
		state.Timestep = snap.Timestep
		state.MaxTimesteps = snap.MaxTimesteps
		state.CurrentPlayer = snap.CurrentPlayer
		state.IsHumanTurn = snap.IsHumanTurn
		state.Outcome = outcomeLine(snap)
		for _, action := range snap.Actions {
			state.Actions = append(state.Actions, web.ActionView{
				Index:           action.Index,
				Name:            action.Name,
				RequiresMessage: action.RequiresMessage,
			})
		}
	}

	moved := make(map[string]bool)
	if update != nil {
		for _, move := range update.Moves {
			moved[move.Player] = true
		}
	}

	activeRoom, hasActive := session.view.ActiveRoom()
	tokensByRoom := make(map[reconcile.Room][]web.TokenView)
	for _, record := range session.view.Directory().Players() {
		tokensByRoom[record.Room] = append(tokensByRoom[record.Room], web.TokenView{
			Name:    record.Name,
			Initial: web.TokenInitial(record.Name),
			Color:   web.PlayerColor(record.Color),
			Dead:    record.Dead,
			Human:   record.Human,
			Moved:   moved[record.Name],
		})
	}
	rooms := append([]reconcile.Room(nil), reconcile.SkeldRooms...)
	rooms = append(rooms, reconcile.RoomUnknown)
	for _, room := range rooms {
		state.Rooms = append(state.Rooms, web.RoomView{
			Name:   string(room),
			Active: hasActive && room == activeRoom,
			Tokens: tokensByRoom[room],
		})
	}

	for _, entry := range session.view.MeetingEntries() {
		state.Meeting = append(state.Meeting, meetingLine(entry))
	}
	for _, event := range session.view.TaskEvents() {
		state.Tasks = append(state.Tasks, taskLine(event))
	}
	for _, entry := range session.view.LogEntries() {
		state.Log = append(state.Log, entry.Stamped())
	}
	return state
}

func meetingLine(entry reconcile.MeetingEntry) string {
	return fmt.Sprintf("[T%d] %s: %s", entry.Timestep, entry.Player, entry.Text)
}

func taskLine(event reconcile.TaskEvent) string {
	return fmt.Sprintf("[T%d] %s is seemingly doing a task", event.Timestep, event.Player)
}

func outcomeLine(snap *upstream.Snapshot) string {
	if snap.Status != upstream.StatusCompleted || snap.Winner == nil {
		return ""
	}
	side := "Crewmates"
	if *snap.Winner == 1 {
		side = "Impostors"
	}
	if snap.WinnerReason != "" {
		return fmt.Sprintf("%s win: %s", side, snap.WinnerReason)
	}
	return side + " win"
}

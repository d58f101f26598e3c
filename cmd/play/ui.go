package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"

	"github.com/Shiven-Sharmaa/AmongUs/internal/reconcile"
	"github.com/Shiven-Sharmaa/AmongUs/internal/upstream"
	"github.com/Shiven-Sharmaa/AmongUs/internal/web"
)

const (
	roomWidth  = 24
	roomHeight = 4
	gridCols   = 4
)

var crewTermColors = map[string]termbox.Attribute{
	"red":    termbox.ColorRed,
	"blue":   termbox.ColorBlue,
	"green":  termbox.ColorGreen,
	"pink":   termbox.ColorMagenta,
	"orange": termbox.ColorYellow,
	"yellow": termbox.ColorYellow,
	"black":  termbox.ColorWhite,
	"white":  termbox.ColorWhite,
	"purple": termbox.ColorMagenta,
	"brown":  termbox.ColorRed,
	"cyan":   termbox.ColorCyan,
	"lime":   termbox.ColorGreen,
}

func tokenColor(color string) termbox.Attribute {
	if attr, ok := crewTermColors[strings.ToLower(strings.TrimSpace(color))]; ok {
		return attr
	}
	return termbox.ColorWhite
}

func drawText(x, y int, text string, fg, bg termbox.Attribute) int {
	for _, ch := range text {
		termbox.SetCell(x, y, ch, fg, bg)
		x += runewidth.RuneWidth(ch)
	}
	return x
}

// drawTextClipped draws at most maxWidth columns of text.
func drawTextClipped(x, y, maxWidth int, text string, fg, bg termbox.Attribute) {
	if runewidth.StringWidth(text) > maxWidth {
		text = runewidth.Truncate(text, maxWidth, "…")
	}
	drawText(x, y, text, fg, bg)
}

func (a *app) draw() {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	width, height := termbox.Size()

	y := a.drawHeader(width)
	y = a.drawRooms(y)
	y = a.drawActions(y, width)
	a.drawFeeds(y, width, height)
	a.drawInputLine(width, height)

	termbox.Flush()
}

func (a *app) drawHeader(width int) int {
	status := "connecting"
	line := ""
	if a.lastSnap != nil {
		snap := a.lastSnap
		status = snap.Status
		line = fmt.Sprintf("game %d  %s  phase=%s  T%d/%d  turn: %s",
			a.gameID, status, snap.CurrentPhase, snap.Timestep, snap.MaxTimesteps, snap.CurrentPlayer)
		if outcome := outcomeText(snap); outcome != "" {
			line = fmt.Sprintf("game %d  %s  %s", a.gameID, status, outcome)
		}
	} else {
		line = fmt.Sprintf("game %d  %s", a.gameID, status)
	}
	drawTextClipped(0, 0, width, line, termbox.ColorWhite|termbox.AttrBold, termbox.ColorDefault)

	if a.lastErr != "" {
		drawTextClipped(0, 1, width, "error: "+a.lastErr+" (polling stopped)", termbox.ColorRed|termbox.AttrBold, termbox.ColorDefault)
	}
	return 2
}

func outcomeText(snap *upstream.Snapshot) string {
	if snap.Status != upstream.StatusCompleted || snap.Winner == nil {
		return ""
	}
	side := "Crewmates"
	if *snap.Winner == 1 {
		side = "Impostors"
	}
	if snap.WinnerReason != "" {
		return side + " win: " + snap.WinnerReason
	}
	return side + " win"
}

func (a *app) drawRooms(top int) int {
	rooms := append([]reconcile.Room(nil), reconcile.SkeldRooms...)

	tokensByRoom := make(map[reconcile.Room][]*reconcile.PlayerRecord)
	unknown := false
	for _, record := range a.view.Directory().Players() {
		tokensByRoom[record.Room] = append(tokensByRoom[record.Room], record)
		if record.Room == reconcile.RoomUnknown {
			unknown = true
		}
	}
	if unknown {
		rooms = append(rooms, reconcile.RoomUnknown)
	}
	activeRoom, hasActive := a.view.ActiveRoom()

	for i, room := range rooms {
		x := (i % gridCols) * (roomWidth + 1)
		y := top + (i/gridCols)*roomHeight

		nameAttr := termbox.ColorWhite
		if hasActive && room == activeRoom {
			nameAttr = termbox.ColorYellow | termbox.AttrBold
		}
		drawTextClipped(x, y, roomWidth, string(room), nameAttr, termbox.ColorDefault)

		col := x
		for _, record := range tokensByRoom[room] {
			attr := tokenColor(record.Color)
			if record.Dead {
				attr = termbox.ColorDarkGray
			}
			label := tokenLabel(record)
			if col+runewidth.StringWidth(label) >= x+roomWidth {
				break
			}
			col = drawText(col, y+1, label, attr, termbox.ColorDefault)
			col++
		}
	}

	return top + ((len(rooms)+gridCols-1)/gridCols)*roomHeight + 1
}

func tokenLabel(record *reconcile.PlayerRecord) string {
	label := web.TokenInitial(record.Name)
	if record.Dead {
		label += "x"
	}
	if record.Human {
		label += "*"
	}
	return label
}

func (a *app) drawActions(top, width int) int {
	if a.submitting {
		drawTextClipped(0, top, width, "Submitting action...", termbox.ColorCyan, termbox.ColorDefault)
		return top + 2
	}
	if a.lastSnap == nil || !a.lastSnap.IsHumanTurn {
		drawTextClipped(0, top, width, "Waiting for your turn...", termbox.ColorDefault, termbox.ColorDefault)
		return top + 2
	}

	drawTextClipped(0, top, width, "Your turn. Pick an action:", termbox.ColorGreen|termbox.AttrBold, termbox.ColorDefault)
	y := top + 1
	for i, action := range a.lastSnap.Actions {
		suffix := ""
		if action.RequiresMessage {
			suffix = " (needs message)"
		}
		drawTextClipped(2, y, width-2, fmt.Sprintf("%d. %s%s", i+1, action.Name, suffix), termbox.ColorDefault, termbox.ColorDefault)
		y++
	}
	return y + 1
}

func (a *app) drawFeeds(top, width, height int) {
	// Three columns: meeting, tasks, log. The input line keeps the last
	// terminal row.
	bottom := height - 1
	if top >= bottom {
		return
	}
	colWidth := width / 3

	meeting := make([]string, 0)
	for _, entry := range a.view.MeetingEntries() {
		meeting = append(meeting, fmt.Sprintf("[T%d] %s: %s", entry.Timestep, entry.Player, entry.Text))
	}
	tasks := make([]string, 0)
	for _, event := range a.view.TaskEvents() {
		tasks = append(tasks, fmt.Sprintf("[T%d] %s is seemingly doing a task", event.Timestep, event.Player))
	}
	logs := make([]string, 0)
	for _, entry := range a.view.LogEntries() {
		logs = append(logs, entry.Stamped())
	}

	drawFeedColumn(0, top, colWidth-1, bottom, "Meeting", meeting)
	drawFeedColumn(colWidth, top, colWidth-1, bottom, "Tasks", tasks)
	drawFeedColumn(2*colWidth, top, width-2*colWidth, bottom, "Log", logs)
}

func drawFeedColumn(x, top, width, bottom int, title string, lines []string) {
	if width <= 0 {
		return
	}
	drawTextClipped(x, top, width, title, termbox.ColorWhite|termbox.AttrBold, termbox.ColorDefault)
	rows := bottom - top - 1
	if rows <= 0 {
		return
	}
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	for i, line := range lines {
		drawTextClipped(x, top+1+i, width, line, termbox.ColorDefault, termbox.ColorDefault)
	}
}

func (a *app) drawInputLine(width, height int) {
	y := height - 1
	switch {
	case a.typing:
		prompt := fmt.Sprintf("say [%s]: %s_", a.pendingAction.Name, a.input)
		drawTextClipped(0, y, width, prompt, termbox.ColorCyan|termbox.AttrBold, termbox.ColorDefault)
	default:
		drawTextClipped(0, y, width, "1-9 pick action  Esc quit", termbox.ColorDefault, termbox.ColorDefault)
	}
}

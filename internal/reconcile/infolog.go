package reconcile

import (
	"regexp"
	"strings"
)

// InfoReport is the typed result of scraping the free-text player_info
// blob. The blob is a fallback data source for servers that predate the
// structured snapshot fields, so every field here is best-effort: lines
// that do not match any known shape are simply skipped.
type InfoReport struct {
	Occupancy       []OccupancyEntry
	Moves           []MoveEntry
	CurrentLocation string
	Speech          []SpeechEntry
	Tasks           []TaskEntry
	Lines           []string // trimmed, non-empty lines, in order
}

// OccupancyEntry is one "Players in <room>: ..." line.
type OccupancyEntry struct {
	Room    string
	Players []Occupant
}

type Occupant struct {
	Name string
	Dead bool
}

// MoveEntry is one "<player> MOVE from <a> to <b>" line.
type MoveEntry struct {
	Player string
	From   string
	To     string
}

// SpeechEntry is one "[meeting...] <player> SPEAK: <text>" line.
type SpeechEntry struct {
	Player string
	Text   string
}

// TaskEntry is one "Seemingly doing task" sighting. Player is empty for
// the first-person form; callers attribute those to the current player.
type TaskEntry struct {
	Player string
}

var (
	occupancyRe = regexp.MustCompile(`^Players in ([^:]+):\s*(.*)$`)
	moveRe      = regexp.MustCompile(`^(.+?) MOVE from (.+?) to (.+?)\.?$`)
	locationRe  = regexp.MustCompile(`^Current Location:\s*(.+)$`)
	speakRe     = regexp.MustCompile(`^\[meeting[^\]]*\]\s*(.+?)\s+SPEAK\s*:?\s*(.*)$`)
	taskRe      = regexp.MustCompile(`^(.*?)\s*Seemingly doing task\b`)
	deadMarkRe  = regexp.MustCompile(`\s*\((?i:dead)\)\s*$`)
)

// ParseInfo scrapes one info blob into typed entries.
func ParseInfo(blob string) *InfoReport {
	report := &InfoReport{}
	for _, raw := range strings.Split(blob, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		report.Lines = append(report.Lines, line)

		if m := occupancyRe.FindStringSubmatch(line); m != nil {
			report.Occupancy = append(report.Occupancy, OccupancyEntry{
				Room:    strings.TrimSpace(m[1]),
				Players: parseOccupants(m[2]),
			})
			continue
		}
		if m := locationRe.FindStringSubmatch(line); m != nil {
			report.CurrentLocation = strings.TrimSpace(m[1])
			continue
		}
		if m := speakRe.FindStringSubmatch(line); m != nil {
			report.Speech = append(report.Speech, SpeechEntry{
				Player: strings.TrimSpace(m[1]),
				Text:   strings.TrimSpace(m[2]),
			})
			continue
		}
		if m := moveRe.FindStringSubmatch(line); m != nil {
			report.Moves = append(report.Moves, MoveEntry{
				Player: strings.TrimSpace(m[1]),
				From:   strings.TrimSpace(m[2]),
				To:     strings.TrimSpace(m[3]),
			})
			continue
		}
		if m := taskRe.FindStringSubmatch(line); m != nil {
			report.Tasks = append(report.Tasks, TaskEntry{
				Player: strings.TrimRight(strings.TrimSpace(m[1]), ":"),
			})
		}
	}
	return report
}

// parseOccupants splits a comma list of player names. Names themselves
// contain colons ("Player 1: Red") but never commas, so a plain comma
// split is safe. A trailing "(dead)" marks the player dead.
func parseOccupants(list string) []Occupant {
	var occupants []Occupant
	for _, part := range strings.Split(list, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		dead := false
		if loc := deadMarkRe.FindStringIndex(name); loc != nil {
			dead = true
			name = strings.TrimSpace(name[:loc[0]])
		}
		if name == "" {
			continue
		}
		occupants = append(occupants, Occupant{Name: name, Dead: dead})
	}
	return occupants
}

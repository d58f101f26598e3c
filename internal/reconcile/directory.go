package reconcile

import (
	"sort"

	"github.com/Shiven-Sharmaa/AmongUs/internal/upstream"
)

// PlayerRecord is the last-known view of one player. Records mutate in
// place as snapshots arrive and are never deleted: a player that stops
// appearing stays at their last-known room.
type PlayerRecord struct {
	Name  string
	Room  Room
	Color string
	Human bool
	Dead  bool
}

// Directory maps player name to record. At most one record per name.
type Directory struct {
	players map[string]*PlayerRecord
}

func NewDirectory() *Directory {
	return &Directory{players: make(map[string]*PlayerRecord)}
}

func (d *Directory) Get(name string) (*PlayerRecord, bool) {
	record, ok := d.players[name]
	return record, ok
}

// Players returns all records sorted by name for stable rendering.
func (d *Directory) Players() []*PlayerRecord {
	list := make([]*PlayerRecord, 0, len(d.players))
	for _, record := range d.players {
		list = append(list, record)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

func (d *Directory) ensure(name string) *PlayerRecord {
	if record, ok := d.players[name]; ok {
		return record
	}
	record := &PlayerRecord{Name: name, Room: RoomUnknown}
	d.players[name] = record
	return record
}

// update merges one snapshot into the directory. Structured positions are
// authoritative; without them room occupancy is scraped from the info
// blob. The human flag is fully recomputed every time because the server
// does not guarantee a stable human marker across ticks.
func (d *Directory) update(snap *upstream.Snapshot, info *InfoReport) {
	for _, record := range d.players {
		record.Human = false
	}

	if len(snap.PlayerPositions) > 0 {
		for _, pos := range snap.PlayerPositions {
			record := d.ensure(pos.Name)
			record.Room = CanonicalRoom(pos.Room)
			if pos.Color != "" {
				record.Color = pos.Color
			}
			record.Dead = !pos.IsAlive
		}
	} else if info != nil {
		d.applyInfoReport(snap, info)
	}

	if snap.HumanPlayerName != "" {
		record := d.ensure(snap.HumanPlayerName)
		record.Human = true
		if info != nil && info.CurrentLocation != "" {
			record.Room = CanonicalRoom(info.CurrentLocation)
		}
	}
}

// applyInfoReport is the text-only fallback path: occupancy lines set the
// baseline, MOVE lines override the destination afterwards.
func (d *Directory) applyInfoReport(snap *upstream.Snapshot, info *InfoReport) {
	for _, occ := range info.Occupancy {
		room := CanonicalRoom(occ.Room)
		for _, member := range occ.Players {
			record := d.ensure(member.Name)
			record.Room = room
			if member.Dead {
				record.Dead = true
			}
		}
	}
	for _, move := range info.Moves {
		record := d.ensure(move.Player)
		record.Room = CanonicalRoom(move.To)
	}
}

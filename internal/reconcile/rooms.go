package reconcile

import "strings"

// Room is a canonical room name, or RoomUnknown when the server string
// does not match the fixed Skeld map.
type Room string

const RoomUnknown Room = "Unknown"

// SkeldRooms is the fixed room enumeration, in map-layout order. Every
// player record always carries one of these or RoomUnknown.
var SkeldRooms = []Room{
	"Upper Engine",
	"Reactor",
	"Security",
	"Medbay",
	"Cafeteria",
	"Weapons",
	"Lower Engine",
	"Electrical",
	"Storage",
	"Admin",
	"O2",
	"Navigation",
	"Shields",
	"Communications",
}

var roomsByKey = func() map[string]Room {
	m := make(map[string]Room, len(SkeldRooms))
	for _, room := range SkeldRooms {
		m[roomKey(string(room))] = room
	}
	return m
}()

func roomKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// CanonicalRoom resolves a server-reported room string against the fixed
// enumeration, case-insensitively. Unmatched strings become RoomUnknown.
func CanonicalRoom(name string) Room {
	if room, ok := roomsByKey[roomKey(name)]; ok {
		return room
	}
	return RoomUnknown
}

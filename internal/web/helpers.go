package web

import (
	"html"
	"strconv"
	"strings"
)

func itoa(value int) string {
	return strconv.Itoa(value)
}

func escape(value string) string {
	return html.EscapeString(value)
}

// crewColors maps the server's color names to CSS colors. Unknown colors
// fall back to grey so a new palette upstream degrades visibly but safely.
var crewColors = map[string]string{
	"red":    "#c51111",
	"blue":   "#132ed1",
	"green":  "#117f2d",
	"pink":   "#ed54ba",
	"orange": "#ef7d0d",
	"yellow": "#f5f557",
	"black":  "#3f474e",
	"white":  "#d6e0f0",
	"purple": "#6b2fbb",
	"brown":  "#71491e",
	"cyan":   "#38fedc",
	"lime":   "#50ef39",
}

// PlayerColor resolves a color name like "Red" to a CSS color.
func PlayerColor(name string) string {
	if color, ok := crewColors[strings.ToLower(strings.TrimSpace(name))]; ok {
		return color
	}
	return "#8a8a8a"
}

// TokenInitial picks the short label shown inside a token. Names follow
// the "Player 1: Red" convention, so the color word is the best handle.
func TokenInitial(name string) string {
	if idx := strings.LastIndex(name, ":"); idx >= 0 {
		if tail := strings.TrimSpace(name[idx+1:]); tail != "" {
			return tail[:1]
		}
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "?"
	}
	return trimmed[:1]
}

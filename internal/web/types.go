// Package web holds the view-layer types and templ components for the
// viewer pages. The types are free of reconciler imports so templates
// stay a pure function of view state.
package web

// TokenView is one player token on the map board.
type TokenView struct {
	Name    string `json:"name"`
	Initial string `json:"initial"`
	Color   string `json:"color"` // CSS color
	Dead    bool   `json:"dead"`
	Human   bool   `json:"human"`
	Moved   bool   `json:"moved"` // token changed rooms this update; triggers the move animation
}

// RoomView is one room container with its tokens.
type RoomView struct {
	Name   string      `json:"name"`
	Active bool        `json:"active"` // room of the current-turn player; at most one is active
	Tokens []TokenView `json:"tokens"`
}

// ActionView is one button of the action panel.
type ActionView struct {
	Index           int    `json:"index"`
	Name            string `json:"name"`
	RequiresMessage bool   `json:"requires_message"`
}

// SessionSummary is one row of the home page session list.
type SessionSummary struct {
	ID       string `json:"id"`
	GameID   int    `json:"game_id"`
	Status   string `json:"status"`
	Timestep int    `json:"timestep"`
}

// ViewState is everything the session page shows. It is also the JSON
// shape of GET /api/sessions/:id.
type ViewState struct {
	SessionID     string       `json:"session_id"`
	GameID        int          `json:"game_id"`
	Status        string       `json:"status"`
	Phase         string       `json:"phase"`
	Timestep      int          `json:"timestep"`
	MaxTimesteps  int          `json:"max_timesteps"`
	CurrentPlayer string       `json:"current_player"`
	IsHumanTurn   bool         `json:"is_human_turn"`
	Submitting    bool         `json:"submitting"`
	Error         string       `json:"error,omitempty"`
	Outcome       string       `json:"outcome,omitempty"`
	Rooms         []RoomView   `json:"rooms"`
	Actions       []ActionView `json:"actions"`
	Meeting       []string     `json:"meeting"`
	Tasks         []string     `json:"tasks"`
	Log           []string     `json:"log"`
}

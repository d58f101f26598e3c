package upstream

// Snapshot is one server-reported game state as returned by /game_state.
// Older servers omit the structured player_positions and meeting_messages
// lists and only ship the free-text player_info blob; both shapes are kept.
type Snapshot struct {
	GameID          int              `json:"game_id"`
	Status          string           `json:"status"`
	Error           string           `json:"error,omitempty"`
	Winner          *int             `json:"winner,omitempty"`
	WinnerReason    string           `json:"winner_reason,omitempty"`
	Initialized     bool             `json:"initialized"`
	HasHuman        bool             `json:"has_human"`
	Timestep        int              `json:"timestep"`
	MaxTimesteps    int              `json:"max_timesteps,omitempty"`
	CurrentPhase    string           `json:"current_phase,omitempty"`
	CurrentPlayer   string           `json:"current_player,omitempty"`
	IsHumanTurn     bool             `json:"is_human_turn"`
	HumanPlayerName string           `json:"human_player_name,omitempty"`
	CurrentStep     string           `json:"current_step,omitempty"`
	PlayerInfo      string           `json:"player_info,omitempty"`
	Actions         []Action         `json:"available_actions"`
	PlayerPositions []PlayerPosition `json:"player_positions,omitempty"`
	MeetingMessages []MeetingMessage `json:"meeting_messages,omitempty"`
}

// Action is one entry of the human player's legal-action list.
type Action struct {
	Index           int    `json:"index"`
	Name            string `json:"name"`
	RequiresMessage bool   `json:"requires_message"`
}

// PlayerPosition is the structured position entry newer servers include.
type PlayerPosition struct {
	Name    string `json:"name"`
	Room    string `json:"room"`
	Color   string `json:"color"`
	IsAlive bool   `json:"is_alive"`
}

// MeetingMessage is one structured meeting speech entry.
type MeetingMessage struct {
	ID       string `json:"id,omitempty"`
	Timestep int    `json:"timestep"`
	Round    int    `json:"round,omitempty"`
	Player   string `json:"player"`
	Text     string `json:"text"`
}

const (
	StatusInitializing = "initializing"
	StatusRunning      = "running"
	StatusCompleted    = "completed"
	StatusError        = "error"
)

// Running reports whether the game is still worth polling.
func (s *Snapshot) Running() bool {
	return s.Status == StatusRunning || s.Status == StatusInitializing
}

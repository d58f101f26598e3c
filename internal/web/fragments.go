package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// MapBoard renders the room grid with player tokens. Tokens that moved
// this update carry the "moved" class so CSS replays the slide animation.
func MapBoard(rooms []RoomView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, room := range rooms {
			roomClass := "room"
			if room.Active {
				roomClass = "room active"
			}
			_, _ = io.WriteString(w, `<div class="`+roomClass+`" data-room="`+escape(room.Name)+`">`)
			_, _ = io.WriteString(w, `<span class="room-name">`+escape(room.Name)+`</span>`)
			_, _ = io.WriteString(w, `<div class="tokens">`)
			for _, token := range room.Tokens {
				tokenClass := "token"
				if token.Moved {
					tokenClass = "token moved"
				}
				style := "background:" + token.Color
				if token.Dead {
					style += ";opacity:0.45"
				}
				_, _ = io.WriteString(w, `<span class="`+tokenClass+`" style="`+style+`" title="`+escape(token.Name)+`">`)
				_, _ = io.WriteString(w, escape(token.Initial))
				if token.Human {
					_, _ = io.WriteString(w, `<em class="you">YOU</em>`)
				}
				_, _ = io.WriteString(w, `</span>`)
			}
			_, _ = io.WriteString(w, `</div></div>`)
		}
		return nil
	})
}

// ActionPanel renders the legal-action buttons, or the waiting /
// submitting placeholder when there is nothing to click.
func ActionPanel(isHumanTurn, submitting bool, actions []ActionView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if submitting {
			_, _ = io.WriteString(w, `<p class="panel-note">Submitting action...</p>`)
			return nil
		}
		if !isHumanTurn || len(actions) == 0 {
			_, _ = io.WriteString(w, `<p class="panel-note">Waiting for your turn...</p>`)
			return nil
		}
		for _, action := range actions {
			needsMessage := "false"
			if action.RequiresMessage {
				needsMessage = "true"
			}
			_, _ = io.WriteString(w, `<button class="action" data-index="`+itoa(action.Index)+
				`" data-needs-message="`+needsMessage+`">`+escape(action.Name)+`</button>`)
		}
		return nil
	})
}

// FeedItems renders feed lines; used both for full renders and for the
// append-mode fragments that carry only new entries.
func FeedItems(lines []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, line := range lines {
			_, _ = io.WriteString(w, `<div class="feed-line">`+escape(line)+`</div>`)
		}
		return nil
	})
}

// StatusBar renders the session header line.
func StatusBar(state ViewState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<span class="stat">Game `+itoa(state.GameID)+`</span>`)
		_, _ = io.WriteString(w, `<span class="stat">T`+itoa(state.Timestep))
		if state.MaxTimesteps > 0 {
			_, _ = io.WriteString(w, `/`+itoa(state.MaxTimesteps))
		}
		_, _ = io.WriteString(w, `</span>`)
		if state.Phase != "" {
			_, _ = io.WriteString(w, `<span class="stat">`+escape(state.Phase)+`</span>`)
		}
		_, _ = io.WriteString(w, `<span class="stat">`+escape(state.Status)+`</span>`)
		if state.CurrentPlayer != "" {
			_, _ = io.WriteString(w, `<span class="stat">turn: `+escape(state.CurrentPlayer)+`</span>`)
		}
		if state.Outcome != "" {
			_, _ = io.WriteString(w, `<span class="stat outcome">`+escape(state.Outcome)+`</span>`)
		}
		return nil
	})
}

// ErrorBanner renders the error strip; empty message clears it.
func ErrorBanner(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			return nil
		}
		_, _ = io.WriteString(w, `<div class="error">`+escape(message)+`</div>`)
		return nil
	})
}

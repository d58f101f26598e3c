package server

import (
	"bytes"
	"context"

	"github.com/a-h/templ"

	"github.com/Shiven-Sharmaa/AmongUs/internal/reconcile"
	"github.com/Shiven-Sharmaa/AmongUs/internal/web"
)

// wsHTMLMessage is one incremental DOM update pushed to the page:
// replace (mode "inner") or extend (mode "append") the selector's
// contents with pre-rendered HTML.
type wsHTMLMessage struct {
	Selector string `json:"selector"`
	Mode     string `json:"mode"`
	HTML     string `json:"html"`
}

func htmlMessage(selector, mode, html string) wsHTMLMessage {
	return wsHTMLMessage{Selector: selector, Mode: mode, HTML: html}
}

func renderComponent(component templ.Component) string {
	var buf bytes.Buffer
	if err := component.Render(context.Background(), &buf); err != nil {
		return ""
	}
	return buf.String()
}

// renderFullMessages rebuilds every region; used when a websocket
// connects so a late viewer catches up with the whole feed history.
// Caller holds the session lock.
func renderFullMessages(session *GameSession) []wsHTMLMessage {
	state := buildViewState(session, nil)
	return []wsHTMLMessage{
		htmlMessage("#statusBar", "inner", renderComponent(web.StatusBar(state))),
		htmlMessage("#errorBanner", "inner", renderComponent(web.ErrorBanner(state.Error))),
		htmlMessage("#mapBoard", "inner", renderComponent(web.MapBoard(state.Rooms))),
		htmlMessage("#actionPanel", "inner", renderComponent(web.ActionPanel(state.IsHumanTurn, state.Submitting, state.Actions))),
		htmlMessage("#meetingFeed", "inner", renderComponent(web.FeedItems(state.Meeting))),
		htmlMessage("#taskFeed", "inner", renderComponent(web.FeedItems(state.Tasks))),
		htmlMessage("#logFeed", "inner", renderComponent(web.FeedItems(state.Log))),
	}
}

// renderUpdateMessages turns one reconciler update into the minimal
// fragment set. Unchanged regions send nothing: the rendered HTML is
// compared against the last pushed version, so an identical snapshot
// produces an empty list. Caller holds the session lock.
func renderUpdateMessages(session *GameSession, update *reconcile.Update) []wsHTMLMessage {
	state := buildViewState(session, update)
	var messages []wsHTMLMessage

	if html := renderComponent(web.StatusBar(state)); html != session.lastStatusHTML {
		session.lastStatusHTML = html
		messages = append(messages, htmlMessage("#statusBar", "inner", html))
	}
	if html := renderComponent(web.ErrorBanner(state.Error)); html != session.lastErrorHTML {
		session.lastErrorHTML = html
		messages = append(messages, htmlMessage("#errorBanner", "inner", html))
	}
	if html := renderComponent(web.MapBoard(state.Rooms)); html != session.lastMapHTML {
		session.lastMapHTML = html
		messages = append(messages, htmlMessage("#mapBoard", "inner", html))
	}
	if update.RenderActions {
		html := renderComponent(web.ActionPanel(state.IsHumanTurn, state.Submitting, state.Actions))
		messages = append(messages, htmlMessage("#actionPanel", "inner", html))
	}
	if len(update.Meeting) > 0 {
		lines := make([]string, 0, len(update.Meeting))
		for _, entry := range update.Meeting {
			lines = append(lines, meetingLine(entry))
		}
		messages = append(messages, htmlMessage("#meetingFeed", "append", renderComponent(web.FeedItems(lines))))
	}
	if len(update.Tasks) > 0 {
		lines := make([]string, 0, len(update.Tasks))
		for _, event := range update.Tasks {
			lines = append(lines, taskLine(event))
		}
		messages = append(messages, htmlMessage("#taskFeed", "append", renderComponent(web.FeedItems(lines))))
	}
	if len(update.Log) > 0 {
		lines := make([]string, 0, len(update.Log))
		for _, entry := range update.Log {
			lines = append(lines, entry.Stamped())
		}
		messages = append(messages, htmlMessage("#logFeed", "append", renderComponent(web.FeedItems(lines))))
	}
	return messages
}

// renderActionPanelMessage re-renders just the action panel, used when a
// submission toggles the in-flight state. Caller holds the session lock.
func renderActionPanelMessage(session *GameSession) wsHTMLMessage {
	state := buildViewState(session, nil)
	html := renderComponent(web.ActionPanel(state.IsHumanTurn, state.Submitting, state.Actions))
	return htmlMessage("#actionPanel", "inner", html)
}

// renderErrorMessage re-renders just the error banner. Caller holds the
// session lock.
func renderErrorMessage(session *GameSession) wsHTMLMessage {
	html := renderComponent(web.ErrorBanner(session.lastError))
	session.lastErrorHTML = html
	return htmlMessage("#errorBanner", "inner", html)
}

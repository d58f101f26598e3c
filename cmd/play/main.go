// Command play is a terminal viewer and controller for one game: it
// creates (or attaches to) a game on the upstream server, polls its
// state, and draws the map, action list, and feeds with termbox.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	termbox "github.com/nsf/termbox-go"

	"github.com/Shiven-Sharmaa/AmongUs/internal/config"
	"github.com/Shiven-Sharmaa/AmongUs/internal/reconcile"
	"github.com/Shiven-Sharmaa/AmongUs/internal/upstream"
)

type app struct {
	client *upstream.Client
	gameID int
	view   *reconcile.Session

	lastSnap   *upstream.Snapshot
	lastErr    string
	stopped    bool
	submitting bool

	// Speech input state for actions that need a message.
	typing        bool
	pendingAction upstream.Action
	input         string
}

// pollResult carries one fetch outcome from the poll goroutine.
type pollResult struct {
	snap *upstream.Snapshot
	err  error
}

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "dotenv:", err)
	}
	cfg := config.Load()

	serverURL := flag.String("server", cfg.UpstreamBaseURL, "upstream game server base URL")
	gameID := flag.Int("game", 0, "attach to an existing game id instead of creating one")
	crewmate := flag.String("crewmate", cfg.CrewmateModel, "crewmate model for a new game")
	impostor := flag.String("impostor", cfg.ImpostorModel, "impostor model for a new game")
	flag.Parse()

	client := upstream.NewClient(*serverURL, cfg.UpstreamTimeout())

	id := *gameID
	if id == 0 {
		created, err := client.CreateGame(context.Background(), *crewmate, *impostor)
		if err != nil {
			fmt.Fprintln(os.Stderr, "create game:", err)
			os.Exit(1)
		}
		id = created
	}

	if err := termbox.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "terminal init:", err)
		os.Exit(1)
	}
	defer termbox.Close()

	a := &app{
		client: client,
		gameID: id,
		view:   reconcile.NewSession(),
	}
	a.run(cfg)
}

func (a *app) run(cfg config.Config) {
	events := make(chan termbox.Event)
	go func() {
		for {
			events <- termbox.PollEvent()
		}
	}()

	polls := make(chan pollResult, 1)
	submits := make(chan error, 1)
	pollBusy := false

	ticker := time.NewTicker(cfg.PollInterval())
	defer ticker.Stop()

	// Fetch right away instead of waiting out the first tick.
	pollBusy = true
	go a.fetch(polls)
	a.draw()

	for {
		select {
		case <-ticker.C:
			// One fetch at a time; a slow response swallows the ticks
			// behind it.
			if pollBusy || a.stopped {
				continue
			}
			pollBusy = true
			go a.fetch(polls)

		case result := <-polls:
			pollBusy = false
			a.applyPoll(result)
			a.draw()

		case err := <-submits:
			a.submitting = false
			if err != nil {
				// A rejected action is shown but polling carries on.
				a.lastErr = err.Error()
			}
			a.draw()

		case ev := <-events:
			if ev.Type == termbox.EventResize {
				a.draw()
				continue
			}
			if ev.Type != termbox.EventKey {
				continue
			}
			if quit := a.handleKey(ev, submits); quit {
				return
			}
			a.draw()
		}
	}
}

func (a *app) fetch(polls chan<- pollResult) {
	snap, err := a.client.GameState(context.Background(), a.gameID)
	polls <- pollResult{snap: snap, err: err}
}

func (a *app) applyPoll(result pollResult) {
	if result.err != nil {
		a.lastErr = result.err.Error()
		a.stopped = true
		return
	}
	a.lastSnap = result.snap
	a.view.Apply(result.snap)
	if !result.snap.Running() {
		a.stopped = true
	}
}

func (a *app) handleKey(ev termbox.Event, submits chan<- error) (quit bool) {
	if a.typing {
		a.handleInputKey(ev, submits)
		return false
	}

	switch {
	case ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC:
		return true
	case ev.Ch >= '1' && ev.Ch <= '9':
		a.pickAction(int(ev.Ch-'1'), submits)
	}
	return false
}

func (a *app) pickAction(slot int, submits chan<- error) {
	if a.submitting || a.lastSnap == nil || !a.lastSnap.IsHumanTurn {
		return
	}
	if slot < 0 || slot >= len(a.lastSnap.Actions) {
		return
	}
	action := a.lastSnap.Actions[slot]
	if action.RequiresMessage {
		a.typing = true
		a.pendingAction = action
		a.input = ""
		return
	}
	a.submit(action, "", submits)
}

func (a *app) handleInputKey(ev termbox.Event, submits chan<- error) {
	switch {
	case ev.Key == termbox.KeyEsc:
		a.typing = false
		a.input = ""
	case ev.Key == termbox.KeyEnter:
		action := a.pendingAction
		text := a.input
		a.typing = false
		a.input = ""
		a.submit(action, text, submits)
	case ev.Key == termbox.KeyBackspace || ev.Key == termbox.KeyBackspace2:
		if len(a.input) > 0 {
			runes := []rune(a.input)
			a.input = string(runes[:len(runes)-1])
		}
	case ev.Key == termbox.KeySpace:
		a.input += " "
	case ev.Ch != 0:
		a.input += string(ev.Ch)
	}
}

func (a *app) submit(action upstream.Action, speech string, submits chan<- error) {
	a.submitting = true
	a.view.InvalidateActionPanel()
	go func() {
		submits <- a.client.SubmitAction(context.Background(), a.gameID, action.Index, speech)
	}()
}

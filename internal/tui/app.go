package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/naveenspark/reflex/internal/config"
	"github.com/naveenspark/reflex/internal/game"
	"github.com/naveenspark/reflex/pkg/domain"
)

type screen int

const (
	screenStart screen = iota
	screenGame
	screenResults
)

// flashDuration is how long "too early" / "too slow" stays on screen.
const flashDuration = 1500 * time.Millisecond

// firedMsg carries a round timer expiry onto the update loop.
type firedMsg game.Fired

// flashExpiredMsg clears the flash if it is still the one identified by id.
type flashExpiredMsg struct{ id int }

type copyResultMsg struct{ err error }

// Shimmer animation for the logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// waitForFired blocks until the controller's next timer expiry.
func waitForFired(ch <-chan game.Fired) tea.Cmd {
	return func() tea.Msg {
		return firedMsg(<-ch)
	}
}

// App is the root Bubbletea model. It adapts terminal input and rendering to
// the round controller, which it drives from Update only.
type App struct {
	cfg      config.Config
	ctrl     *game.Controller
	fired    chan game.Fired
	screen   screen
	theme    theme
	helpOpen bool

	flash     string
	flashID   int
	statusMsg string // results screen feedback (clipboard)

	width  int
	height int
	frame  int
}

// NewApp creates the TUI and its controller.
func NewApp(cfg config.Config, clock clockwork.Clock, logger zerolog.Logger) App {
	// Two timers per round at most; the buffer covers a stale pair in flight.
	fired := make(chan game.Fired, 4)
	ctrl := game.New(cfg, clock, func(f game.Fired) { fired <- f }, game.WithLogger(logger))
	return App{
		cfg:   cfg,
		ctrl:  ctrl,
		fired: fired,
		theme: themeFor(cfg.Theme),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(waitForFired(a.fired), shimmerTickCmd())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case firedMsg:
		ev := a.ctrl.Fire(game.Fired(msg))
		cmd := a.apply(ev)
		return a, tea.Batch(waitForFired(a.fired), cmd)

	case flashExpiredMsg:
		if msg.id == a.flashID {
			a.flash = ""
		}
		return a, nil

	case copyResultMsg:
		if msg.err != nil {
			a.statusMsg = "copy failed: " + msg.err.Error()
		} else {
			a.statusMsg = "copied to clipboard"
		}
		return a, nil

	case tea.MouseMsg:
		if a.screen != screenGame || a.helpOpen || !isPrimaryPress(msg) {
			return a, nil
		}
		tg, ok := a.ctrl.Target()
		if !ok {
			return a, nil
		}
		if x, y := arenaCell(msg.X, msg.Y); !tg.Contains(x, y) {
			return a, nil
		}
		return a, a.apply(a.ctrl.Click())

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Help overlay captures all keys when open
	if a.helpOpen {
		switch key {
		case "h", "esc":
			a.helpOpen = false
		case "q", "ctrl+c":
			a.ctrl.Stop()
			return a, tea.Quit
		}
		return a, nil
	}

	switch key {
	case "q", "ctrl+c":
		a.ctrl.Stop()
		return a, tea.Quit
	case "t":
		a.theme = a.theme.toggled()
		return a, nil
	case "h":
		a.helpOpen = true
		return a, nil
	}

	switch a.screen {
	case screenStart:
		if isStartKey(key) {
			return a, a.start()
		}
	case screenGame:
		if isClickKey(key) {
			return a, a.apply(a.ctrl.Click())
		}
		if key == "esc" {
			a.ctrl.Stop()
			a.screen = screenStart
			a.flash = ""
		}
	case screenResults:
		if isStartKey(key) {
			return a, a.start()
		}
		if key == "c" {
			stats, err := a.finalStats()
			return a, copyCmd(resultsText(a.ctrl.Session().ID, a.cfg.Attempts, stats, err))
		}
		if key == "esc" {
			a.screen = screenStart
		}
	}
	return a, nil
}

// start begins a fresh session and switches to the game screen.
func (a *App) start() tea.Cmd {
	a.flash = ""
	a.statusMsg = ""
	a.screen = screenGame
	return a.apply(a.ctrl.StartGame())
}

// apply turns a controller event into screen changes.
func (a *App) apply(ev game.Event) tea.Cmd {
	if ev.Finished {
		a.screen = screenResults
		a.statusMsg = ""
	}
	switch ev.Outcome {
	case domain.OutcomeEarly, domain.OutcomeTimeout:
		a.flashID++
		a.flash = ev.Outcome.Message()
		id := a.flashID
		return tea.Tick(flashDuration, func(time.Time) tea.Msg {
			return flashExpiredMsg{id: id}
		})
	case domain.OutcomeValid:
		a.flash = ""
	}
	return nil
}

func (a App) finalStats() (domain.Stats, error) {
	return a.ctrl.Final()
}

func (a App) View() string {
	var body, help string
	th := a.theme

	switch a.screen {
	case screenStart:
		body = a.startView()
		help = " " + th.helpEntry("enter", "start") + "  " + th.helpEntry("t", "theme") + "  " + th.helpEntry("h", "help") + "  " + th.helpEntry("q", "quit")
	case screenGame:
		body = a.gameView()
		help = " " + th.helpEntry("click/space", "hit") + "  " + th.helpEntry("t", "theme") + "  " + th.helpEntry("esc", "abandon") + "  " + th.helpEntry("q", "quit")
	case screenResults:
		body = a.resultsView()
		help = " " + th.helpEntry("enter", "retry") + "  " + th.helpEntry("c", "copy") + "  " + th.helpEntry("t", "theme") + "  " + th.helpEntry("q", "quit")
	}

	if a.helpOpen {
		body = a.helpView()
		help = " " + th.helpEntry("esc", "close")
	}

	if a.height > 1 {
		body = strings.TrimRight(truncateToHeight(body, a.height-1), "\n")
	}
	return body + "\n" + help
}

func (a App) startView() string {
	th := a.theme
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", th.renderLogo(a.frame))
	fmt.Fprintf(&b, "  %s\n", th.text.Render("A target appears in red. When it turns green, click it as fast as you can."))
	fmt.Fprintf(&b, "  %s\n\n", th.dim.Render(fmt.Sprintf("%d attempts. Clicking early or waiting %s counts as a miss.", a.cfg.Attempts, a.cfg.Timeout)))
	fmt.Fprintf(&b, "  %s %s\n", th.accent.Render("▶"), th.bold.Render("press enter to start"))
	return b.String()
}

func (a App) gameView() string {
	th := a.theme
	session := a.ctrl.Session()
	stats, err := a.ctrl.Stats()

	var b strings.Builder
	// Three lines before the arena: keep in sync with arenaTop.
	fmt.Fprintf(&b, "  %s\n", th.renderLogo(a.frame))
	fmt.Fprintf(&b, "  %s  %s\n\n",
		th.bold.Render(fmt.Sprintf("Attempt %d of %d", session.Attempt(), session.AttemptLimit)),
		statsLine(th, stats, err == nil))

	tg, ok := a.ctrl.Target()
	b.WriteString(renderArena(th, a.cfg.Arena.Width, a.cfg.Arena.Height, tg, ok, a.ctrl.Status()))
	b.WriteString("\n")

	switch {
	case a.flash != "":
		fmt.Fprintf(&b, "  %s\n", th.flash.Render(a.flash))
	case a.ctrl.Status() == domain.StatusReady:
		fmt.Fprintf(&b, "  %s\n", th.accent.Render("Click!"))
	default:
		fmt.Fprintf(&b, "  %s\n", th.dim.Render("Wait for green..."))
	}
	return b.String()
}

func (a App) resultsView() string {
	th := a.theme
	session := a.ctrl.Session()
	final, err := a.finalStats()

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", th.renderLogo(a.frame))
	fmt.Fprintf(&b, "  %s\n\n", th.bold.Render("Results"))
	if err != nil {
		fmt.Fprintf(&b, "  %s\n", th.flash.Render("No valid attempts. Wait for green, then click."))
	} else {
		fmt.Fprintf(&b, "  %s %s\n", th.dim.Render("Average"), th.bold.Render(domain.Seconds(final.Average)))
		fmt.Fprintf(&b, "  %s    %s\n", th.dim.Render("Best"), th.accent.Render(domain.Seconds(final.Best)))
	}
	fmt.Fprintf(&b, "\n  %s\n", th.meta.Render(fmt.Sprintf("%d of %d attempts valid", len(session.Times), session.AttemptLimit)))
	if a.statusMsg != "" {
		fmt.Fprintf(&b, "  %s\n", th.dim.Render(a.statusMsg))
	}
	return b.String()
}

func (a App) helpView() string {
	th := a.theme
	keys := []struct{ key, desc string }{
		{"enter", "start / retry"},
		{"space", "click the target"},
		{"mouse", "click the target"},
		{"t", "toggle dark/light theme"},
		{"c", "copy results"},
		{"esc", "back"},
		{"q", "quit"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", th.renderLogo(a.frame))
	fmt.Fprintf(&b, "  %s\n", th.bold.Render("Keys"))
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n", th.bold.Render(fmt.Sprintf("%-8s", k.key)), th.dim.Render(k.desc))
	}
	fmt.Fprintf(&b, "\n  %s\n", th.meta.Render(fmt.Sprintf("ready after %s–%s, timeout %s", a.cfg.ReadyDelayMin, a.cfg.ReadyDelayMax, a.cfg.Timeout)))
	return b.String()
}

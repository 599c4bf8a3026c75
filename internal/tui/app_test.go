package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/naveenspark/reflex/internal/config"
	"github.com/naveenspark/reflex/pkg/domain"
)

func newTestApp(t *testing.T, attempts int) (App, *clockwork.FakeClock) {
	t.Helper()
	cfg := config.Default()
	cfg.Attempts = attempts
	cfg.ReadyDelayMin = time.Second
	cfg.ReadyDelayMax = time.Second
	cfg.Seed = 1

	clock := clockwork.NewFakeClock()
	a := NewApp(cfg, clock, zerolog.Nop())
	a.width = 80
	a.height = 30
	t.Cleanup(a.ctrl.Stop)
	return a, clock
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	model, cmd := a.Update(msg)
	return model.(App), cmd
}

// deliverReady advances the fake clock to the ready delay and feeds the
// expiry through Update, as the waitForFired command would.
func deliverReady(t *testing.T, a App, clock *clockwork.FakeClock) App {
	t.Helper()
	clock.Advance(time.Second)
	select {
	case f := <-a.fired:
		a, _ = update(t, a, firedMsg(f))
	case <-time.After(2 * time.Second):
		t.Fatal("ready timer never fired")
	}
	return a
}

// targetPress returns a left-button press on the center of the current target.
func targetPress(t *testing.T, a App) tea.MouseMsg {
	t.Helper()
	tg, ok := a.ctrl.Target()
	if !ok {
		t.Fatal("expected an armed target")
	}
	cx, cy := tg.X+tg.Size, tg.Y+tg.Size/2
	return tea.MouseMsg{
		X:      arenaLeft + 1 + cx,
		Y:      arenaTop + 1 + cy,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	}
}

func TestAppStartsOnStartScreen(t *testing.T) {
	a, _ := newTestApp(t, 5)
	if a.screen != screenStart {
		t.Fatalf("expected screenStart, got %d", a.screen)
	}
	if !strings.Contains(a.View(), "press enter to start") {
		t.Errorf("expected start prompt in view, got:\n%s", a.View())
	}
}

func TestAppStartKeys(t *testing.T) {
	for _, k := range []string{"enter", " "} {
		t.Run(k, func(t *testing.T) {
			a, _ := newTestApp(t, 5)
			a, _ = update(t, a, key(k))
			if a.screen != screenGame {
				t.Fatalf("expected screenGame after %q, got %d", k, a.screen)
			}
			if a.ctrl.Status() != domain.StatusWaiting {
				t.Errorf("expected waiting round, got %s", a.ctrl.Status())
			}
			if !strings.Contains(a.View(), "Attempt 1 of 5") {
				t.Errorf("expected attempt counter in view, got:\n%s", a.View())
			}
		})
	}
}

func TestAppEarlySpaceShowsFlash(t *testing.T) {
	a, _ := newTestApp(t, 5)
	a, _ = update(t, a, key("enter"))

	a, cmd := update(t, a, key(" "))
	if cmd == nil {
		t.Fatal("expected flash expiry command after early click")
	}
	if a.flash != "Too early! Wait for green." {
		t.Errorf("expected too early flash, got %q", a.flash)
	}
	if got := a.ctrl.Session().CurrentAttempt; got != 1 {
		t.Errorf("expected attempt counter 1, got %d", got)
	}
	if len(a.ctrl.Session().Times) != 0 {
		t.Error("early click must not record a time")
	}
	if !strings.Contains(a.View(), "Too early!") {
		t.Errorf("expected flash in view, got:\n%s", a.View())
	}
}

func TestAppFlashExpiry(t *testing.T) {
	a, _ := newTestApp(t, 5)
	a, _ = update(t, a, key("enter"))
	a, _ = update(t, a, key(" "))

	// A stale expiry keeps the flash.
	a, _ = update(t, a, flashExpiredMsg{id: a.flashID - 1})
	if a.flash == "" {
		t.Fatal("stale flash expiry cleared the current flash")
	}

	a, _ = update(t, a, flashExpiredMsg{id: a.flashID})
	if a.flash != "" {
		t.Errorf("expected flash cleared, got %q", a.flash)
	}
}

func TestAppReadyThenMouseClick(t *testing.T) {
	a, clock := newTestApp(t, 5)
	a, _ = update(t, a, key("enter"))
	a = deliverReady(t, a, clock)

	if a.ctrl.Status() != domain.StatusReady {
		t.Fatalf("expected ready, got %s", a.ctrl.Status())
	}
	if !strings.Contains(a.View(), "Click!") {
		t.Errorf("expected ready prompt in view, got:\n%s", a.View())
	}

	clock.Advance(180 * time.Millisecond)
	a, _ = update(t, a, targetPress(t, a))

	times := a.ctrl.Session().Times
	if len(times) != 1 || times[0] != 180*time.Millisecond {
		t.Fatalf("expected one 180ms time, got %v", times)
	}
	if !strings.Contains(a.View(), "0.180s") {
		t.Errorf("expected last time in view, got:\n%s", a.View())
	}
}

func TestAppMouseOutsideTargetIgnored(t *testing.T) {
	a, clock := newTestApp(t, 5)
	a, _ = update(t, a, key("enter"))
	a = deliverReady(t, a, clock)

	// The arena border is never part of the target.
	a, _ = update(t, a, tea.MouseMsg{X: arenaLeft, Y: arenaTop, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if a.ctrl.Session().CurrentAttempt != 0 {
		t.Errorf("press outside the target counted as a click")
	}
}

func TestAppMouseReleaseIgnored(t *testing.T) {
	a, _ := newTestApp(t, 5)
	a, _ = update(t, a, key("enter"))

	press := targetPress(t, a)
	press.Action = tea.MouseActionRelease
	a, _ = update(t, a, press)
	if a.ctrl.Session().CurrentAttempt != 0 {
		t.Errorf("mouse release counted as a click")
	}

	press.Action = tea.MouseActionPress
	press.Button = tea.MouseButtonRight
	a, _ = update(t, a, press)
	if a.ctrl.Session().CurrentAttempt != 0 {
		t.Errorf("right button counted as a click")
	}
}

func TestAppFinishShowsResults(t *testing.T) {
	a, clock := newTestApp(t, 2)
	a, _ = update(t, a, key("enter"))
	a, _ = update(t, a, key(" ")) // early

	a = deliverReady(t, a, clock)
	clock.Advance(250 * time.Millisecond)
	a, _ = update(t, a, key(" "))

	if a.screen != screenResults {
		t.Fatalf("expected screenResults, got %d", a.screen)
	}
	view := a.View()
	for _, want := range []string{"Results", "0.250s", "1 of 2 attempts valid"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in results view, got:\n%s", want, view)
		}
	}
}

func TestAppAllEarlyShowsNoValidAttempts(t *testing.T) {
	a, _ := newTestApp(t, 2)
	a, _ = update(t, a, key("enter"))
	a, _ = update(t, a, key(" "))
	a, _ = update(t, a, key(" "))

	if a.screen != screenResults {
		t.Fatalf("expected screenResults, got %d", a.screen)
	}
	if !strings.Contains(a.View(), "No valid attempts") {
		t.Errorf("expected no valid attempts message, got:\n%s", a.View())
	}
}

func TestAppRetryStartsFreshSession(t *testing.T) {
	a, _ := newTestApp(t, 1)
	a, _ = update(t, a, key("enter"))
	first := a.ctrl.Session().ID
	a, _ = update(t, a, key(" "))
	if a.screen != screenResults {
		t.Fatalf("expected screenResults, got %d", a.screen)
	}

	a, _ = update(t, a, key("r"))
	if a.screen != screenGame {
		t.Fatalf("expected screenGame after retry, got %d", a.screen)
	}
	if a.ctrl.Session().ID == first {
		t.Error("expected a new session on retry")
	}
	if a.ctrl.Session().CurrentAttempt != 0 {
		t.Errorf("expected attempt counter reset, got %d", a.ctrl.Session().CurrentAttempt)
	}
}

func TestAppTimeoutFlash(t *testing.T) {
	a, clock := newTestApp(t, 3)
	a, _ = update(t, a, key("enter"))
	a = deliverReady(t, a, clock)

	clock.Advance(9 * time.Second)
	select {
	case f := <-a.fired:
		a, _ = update(t, a, firedMsg(f))
	case <-time.After(2 * time.Second):
		t.Fatal("timeout timer never fired")
	}
	if a.flash != "Too slow! Try again." {
		t.Errorf("expected too slow flash, got %q", a.flash)
	}
	if len(a.ctrl.Session().Times) != 0 {
		t.Error("timeout must not record a time")
	}
}

func TestAppThemeToggle(t *testing.T) {
	a, _ := newTestApp(t, 5)
	if a.theme.name != "dark" {
		t.Fatalf("expected dark default, got %s", a.theme.name)
	}
	a, _ = update(t, a, key("t"))
	if a.theme.name != "light" {
		t.Errorf("expected light after toggle, got %s", a.theme.name)
	}
	a, _ = update(t, a, key("t"))
	if a.theme.name != "dark" {
		t.Errorf("expected dark after second toggle, got %s", a.theme.name)
	}
}

func TestAppThemeToggleDoesNotAffectRound(t *testing.T) {
	a, _ := newTestApp(t, 5)
	a, _ = update(t, a, key("enter"))
	a, _ = update(t, a, key("t"))
	if a.ctrl.Status() != domain.StatusWaiting || a.ctrl.Session().CurrentAttempt != 0 {
		t.Error("theme toggle changed the round")
	}
}

func TestAppHelpOverlayCapturesKeys(t *testing.T) {
	a, _ := newTestApp(t, 5)
	a, _ = update(t, a, key("enter"))
	a, _ = update(t, a, key("h"))
	if !a.helpOpen {
		t.Fatal("expected help overlay open")
	}
	if !strings.Contains(a.View(), "Keys") {
		t.Errorf("expected help content, got:\n%s", a.View())
	}

	a, _ = update(t, a, key(" "))
	if a.ctrl.Session().CurrentAttempt != 0 {
		t.Error("space reached the game while help was open")
	}

	a, _ = update(t, a, key("esc"))
	if a.helpOpen {
		t.Error("expected help overlay closed after esc")
	}
}

func TestAppEscAbandonsGame(t *testing.T) {
	a, _ := newTestApp(t, 5)
	a, _ = update(t, a, key("enter"))
	a, _ = update(t, a, key("esc"))
	if a.screen != screenStart {
		t.Errorf("expected screenStart after esc, got %d", a.screen)
	}
	if a.ctrl.Status() != domain.StatusIdle {
		t.Errorf("expected idle controller, got %s", a.ctrl.Status())
	}
}

func TestAppQuit(t *testing.T) {
	a, _ := newTestApp(t, 5)
	a, _ = update(t, a, key("enter"))
	a, cmd := update(t, a, key("q"))
	if cmd == nil {
		t.Fatal("expected quit command on 'q', got nil")
	}
	if a.ctrl.Status() != domain.StatusIdle {
		t.Errorf("expected timers cancelled on quit, got %s", a.ctrl.Status())
	}
}

func TestAppCopyResult(t *testing.T) {
	a, _ := newTestApp(t, 1)
	a, _ = update(t, a, key("enter"))
	a, _ = update(t, a, key(" "))

	_, cmd := update(t, a, key("c"))
	if cmd == nil {
		t.Fatal("expected copy command on 'c'")
	}

	a, _ = update(t, a, copyResultMsg{})
	if a.statusMsg != "copied to clipboard" {
		t.Errorf("expected copied status, got %q", a.statusMsg)
	}
	if !strings.Contains(a.View(), "copied to clipboard") {
		t.Errorf("expected copy status in view, got:\n%s", a.View())
	}
}

func TestAppShimmerTick(t *testing.T) {
	a, _ := newTestApp(t, 5)
	a, cmd := update(t, a, shimmerTickMsg(time.Now()))
	if a.frame != 1 {
		t.Errorf("expected frame=1, got %d", a.frame)
	}
	if cmd == nil {
		t.Error("expected next shimmer tick")
	}
}

func TestAppWindowSize(t *testing.T) {
	a, _ := newTestApp(t, 5)
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 100, Height: 40})
	if a.width != 100 || a.height != 40 {
		t.Errorf("expected 100x40, got %dx%d", a.width, a.height)
	}
}

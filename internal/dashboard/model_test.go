package dashboard

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/smileynet/swcatalog/internal/catalog"
	"github.com/smileynet/swcatalog/internal/swapi"
)

// loadedModel returns a sized model whose initial people load has settled.
func loadedModel(t *testing.T, f catalog.Fetcher) Model {
	t.Helper()
	m := newSizedModel(f, 100, 30)
	return drain(t, m, m.Init())
}

// openedModel returns a loaded model with Luke's dialog resolved and open.
func openedModel(t *testing.T) Model {
	t.Helper()
	m := loadedModel(t, galaxy())
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	return drain(t, m, cmd)
}

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel(context.Background(), newSections(galaxy()), swapi.KindPeople)

	if m.active.Kind() != swapi.KindPeople {
		t.Errorf("active = %s, want people", m.active.Kind())
	}
	if m.focus != PaneLeft {
		t.Errorf("focus = %d, want PaneLeft (%d)", m.focus, PaneLeft)
	}
	if m.phase != dialogClosed {
		t.Errorf("phase = %d, want closed", m.phase)
	}
}

func TestNewModel_InitialKind(t *testing.T) {
	m := NewModel(context.Background(), newSections(galaxy()), swapi.KindVehicles)
	if m.active.Kind() != swapi.KindVehicles {
		t.Errorf("active = %s, want vehicles", m.active.Kind())
	}
}

func TestModel_InitialView(t *testing.T) {
	m := NewModel(context.Background(), newSections(galaxy()), swapi.KindPeople)
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() before size = %q", got)
	}
}

func TestModel_InitLoadsActiveTab(t *testing.T) {
	// Given: a sized model
	m := newSizedModel(galaxy(), 100, 30)

	// When: the init command runs
	msgs := execBatch(t, m.Init())

	// Then: a LoadedMsg for people is produced
	var found bool
	for _, msg := range msgs {
		if lm, ok := msg.(LoadedMsg); ok && lm.Kind == swapi.KindPeople {
			found = true
		}
	}
	if !found {
		t.Fatalf("Init produced %v, want LoadedMsg{people}", msgs)
	}

	// And: after applying it the cards and the detail pane are rendered
	m = drain(t, m, m.Init())
	plain := stripANSI(m.View())
	for _, want := range []string{"Luke Skywalker", "Leia Organa", "Height: 172 cm", "View 2 films", "[1] Characters"} {
		if !strings.Contains(plain, want) {
			t.Errorf("view missing %q:\n%s", want, plain)
		}
	}
}

func TestModel_CursorMovesDetail(t *testing.T) {
	m := loadedModel(t, galaxy())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})

	if m.lists[m.active].cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.lists[m.active].cursor)
	}
	if !containsPlainText(m.detail.View(), "Leia Organa") {
		t.Errorf("detail pane should show Leia:\n%s", stripANSI(m.detail.View()))
	}
}

func TestModel_TabTogglesFocus(t *testing.T) {
	m := loadedModel(t, galaxy())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != PaneRight {
		t.Errorf("after first Tab: focus = %d, want PaneRight (%d)", m.focus, PaneRight)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != PaneLeft {
		t.Errorf("after second Tab: focus = %d, want PaneLeft (%d)", m.focus, PaneLeft)
	}
}

func TestModel_SwitchTabLoadsOnce(t *testing.T) {
	// Given: a loaded people tab
	m := loadedModel(t, galaxy())

	// When: the user moves right to starships
	m, cmd := send(t, m, keyRune('l'))
	if m.active.Kind() != swapi.KindStarships {
		t.Fatalf("active = %s, want starships", m.active.Kind())
	}
	if cmd == nil {
		t.Fatal("first visit should dispatch a load")
	}
	m = drain(t, m, cmd)

	// Then: the starship card is shown
	if !containsPlainText(m.View(), "X-wing") {
		t.Errorf("starships view missing X-wing:\n%s", stripANSI(m.View()))
	}

	// And: returning later does not reload
	m, _ = send(t, m, keyRune('h'))
	m, cmd = send(t, m, keyRune('2'))
	if m.active.Kind() != swapi.KindStarships {
		t.Errorf("active = %s, want starships", m.active.Kind())
	}
	if cmd != nil {
		t.Error("second visit should not reload")
	}
}

func TestModel_FailedLoadAndRetry(t *testing.T) {
	// Given: an upstream with no people collection
	f := galaxy()
	delete(f, testBase+"/people")
	m := loadedModel(t, f)

	// Then: the error and retry hint are shown
	plain := stripANSI(m.View())
	if !strings.Contains(plain, "HTTP error! status: 404") || !strings.Contains(plain, "Press r to retry") {
		t.Fatalf("failed view:\n%s", plain)
	}

	// When: the collection appears and the user retries
	f[testBase+"/people"] = `[{"name":"Han Solo","url":"u14"}]`
	m, cmd := send(t, m, keyRune('r'))
	m = drain(t, m, cmd)

	// Then: the new card is shown
	if !containsPlainText(m.View(), "Han Solo") {
		t.Errorf("retry view:\n%s", stripANSI(m.View()))
	}
}

func TestModel_EnterOpensDialog(t *testing.T) {
	// Given: Luke selected
	m := loadedModel(t, galaxy())

	// When: enter is pressed
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Then: the dialog shows a loading state until the resolve settles
	if m.phase != dialogLoading {
		t.Fatalf("phase = %d, want loading", m.phase)
	}
	if !containsPlainText(m.View(), "Loading film details...") {
		t.Errorf("loading dialog:\n%s", stripANSI(m.View()))
	}

	m = drain(t, m, cmd)
	if m.phase != dialogOpen {
		t.Fatalf("phase = %d, want open", m.phase)
	}
	plain := stripANSI(m.View())
	for _, want := range []string{"Films featuring Luke Skywalker", "Episode 4: A New Hope", "Episode 5: The Empire Strikes Back"} {
		if !strings.Contains(plain, want) {
			t.Errorf("dialog missing %q:\n%s", want, plain)
		}
	}
}

func TestModel_EscClosesDialog(t *testing.T) {
	m := openedModel(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.phase != dialogClosed {
		t.Errorf("phase = %d, want closed", m.phase)
	}
	sec, _ := m.current()
	if sec.View().Dialog.Open {
		t.Error("section dialog should be closed")
	}
	if containsPlainText(m.View(), "Films featuring") {
		t.Error("closed dialog still rendered")
	}
}

func TestModel_ClickOutsideClosesDialog(t *testing.T) {
	// Given: an open dialog on a 100×30 screen
	m := openedModel(t)

	// When: the user clicks inside it
	m, _ = send(t, m, tea.MouseMsg{X: 50, Y: 15, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	// Then: it stays open
	if m.phase != dialogOpen {
		t.Fatalf("click inside closed the dialog")
	}

	// When: the user clicks in the margin
	m, _ = send(t, m, tea.MouseMsg{X: 2, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	// Then: it closes
	if m.phase != dialogClosed {
		t.Errorf("phase = %d, want closed", m.phase)
	}
}

func TestModel_ResolveAfterCloseStaysClosed(t *testing.T) {
	// Given: enter pressed and esc pressed before the resolve ran
	m := loadedModel(t, galaxy())
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	// When: the resolve runs and reports back
	m = drain(t, m, cmd)

	// Then: neither the model nor the section shows the dialog
	if m.phase != dialogClosed {
		t.Errorf("phase = %d, want closed", m.phase)
	}
	sec, _ := m.current()
	if sec.View().Dialog.Open {
		t.Error("late resolve reopened the section dialog")
	}
}

func TestModel_DialogCapturesKeys(t *testing.T) {
	// Given: an open dialog
	m := openedModel(t)

	// When: a tab-switch key is pressed
	m, _ = send(t, m, keyRune('l'))

	// Then: the tab does not change
	if m.active.Kind() != swapi.KindPeople {
		t.Errorf("active = %s, want people", m.active.Kind())
	}
}

func TestModel_Quit(t *testing.T) {
	for name, msg := range map[string]tea.KeyMsg{
		"q":      keyRune('q'),
		"ctrl+c": {Type: tea.KeyCtrlC},
	} {
		t.Run(name, func(t *testing.T) {
			m := loadedModel(t, galaxy())
			_, cmd := m.Update(msg)
			if cmd == nil {
				t.Fatal("expected a quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("command produced %T, want tea.QuitMsg", cmd())
			}
		})
	}
}

func TestModel_WindowSizeMsg(t *testing.T) {
	m := newSizedModel(galaxy(), 120, 50)

	if m.width != 120 || m.height != 50 {
		t.Errorf("size = %d×%d, want 120×50", m.width, m.height)
	}
	_, right := PaneWidths(120)
	if m.detail.Width != right-borderChrome {
		t.Errorf("detail width = %d, want %d", m.detail.Width, right-borderChrome)
	}
	if m.detail.Height != 50-borderChrome-helpBarHeight-tabBarHeight {
		t.Errorf("detail height = %d", m.detail.Height)
	}
}

// TestModel_Teatest_BrowseAndOpen drives the full program: load, open
// Luke's films, close with esc, quit.
func TestModel_Teatest_BrowseAndOpen(t *testing.T) {
	m := NewModel(context.Background(), newSections(galaxy()), swapi.KindPeople)
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Luke Skywalker"))
	}, teatest.WithDuration(2*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Empire Strikes Back"))
	}, teatest.WithDuration(2*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	tm.Send(keyRune('q'))
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	if final.phase != dialogClosed {
		t.Errorf("final phase = %d, want closed", final.phase)
	}
	sec, _ := final.current()
	if sec.View().State != catalog.StateReady {
		t.Errorf("final state = %v, want ready", sec.View().State)
	}
}

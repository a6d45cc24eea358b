package dashboard

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/swcatalog/internal/catalog"
	"github.com/smileynet/swcatalog/internal/swapi"
)

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

// tabBarHeight is the number of lines reserved for the tab bar at the top.
const tabBarHeight = 1

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

// Model is the root Bubble Tea model for the catalog TUI.
// Sections own all catalog state; the model holds only cursors, focus,
// layout and the dialog's lifecycle on the update-loop side.
type Model struct {
	ctx      context.Context
	sections map[swapi.Kind]Section
	lists    []listState // indexed by Tab
	active   Tab
	focus    Focus

	width  int
	height int

	spinner  spinner.Model
	detail   viewport.Model // right pane: the selected card
	dialogVP viewport.Model
	help     help.Model

	phase dialogPhase
	seq   int // identifies the most recent resolve
}

// NewModel creates a Model showing the tab for initial. sections should
// cover every kind in swapi.Kinds; catalog.Catalog.Sections does.
func NewModel(ctx context.Context, sections []Section, initial swapi.Kind) Model {
	byKind := make(map[swapi.Kind]Section, len(sections))
	for _, s := range sections {
		byKind[s.Kind()] = s
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	active, _ := TabFromKind(initial)
	lists := make([]listState, tabCount)
	lists[active].loaded = true

	return Model{
		ctx:      ctx,
		sections: byKind,
		lists:    lists,
		active:   active,
		focus:    PaneLeft,
		spinner:  s,
		detail:   viewport.New(0, 0),
		dialogVP: viewport.New(0, 0),
		help:     help.New(),
	}
}

// Init starts the spinner and loads the initial tab.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if sec, ok := m.current(); ok {
		cmds = append(cmds, loadCmd(m.ctx, sec))
	}
	return tea.Batch(cmds...)
}

// current returns the section of the active tab.
func (m Model) current() (Section, bool) {
	sec, ok := m.sections[m.active.Kind()]
	return sec, ok
}

// currentView returns the active section's view, or an empty loading view
// when the kind has no section.
func (m Model) currentView() catalog.View {
	if sec, ok := m.current(); ok {
		return sec.View()
	}
	return catalog.View{Kind: m.active.Kind()}
}

// dialogShown reports whether the dialog overlay is visible.
func (m Model) dialogShown() bool {
	return m.phase != dialogClosed
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		_, rightWidth := PaneWidths(msg.Width)
		m.detail.Width = max(rightWidth-borderChrome, 0)
		m.detail.Height = m.contentHeight()
		w, h := DialogSize(msg.Width, msg.Height)
		m.dialogVP.Width = max(w-4, 1)
		m.dialogVP.Height = max(h-dialogChrome, 1)
		m = m.refreshDetail()
		m = m.refreshDialog()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.phase == dialogLoading {
			m = m.refreshDialog()
		}
		return m, cmd

	case LoadedMsg:
		if msg.Kind == m.active.Kind() {
			m.lists[m.active] = m.lists[m.active].clamp(len(m.currentView().Items))
			m = m.refreshDetail()
		}
		return m, nil

	case ResolvedMsg:
		return m.handleResolved(msg), nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleResolved moves the dialog from loading to open, or undoes a resolve
// that settled after the user closed the dialog.
func (m Model) handleResolved(msg ResolvedMsg) Model {
	sec, ok := m.sections[msg.Kind]
	if !ok {
		return m
	}
	switch {
	case m.phase == dialogClosed:
		sec.Close()
	case m.phase == dialogLoading && msg.Seq == m.seq:
		if msg.Err != nil {
			m.phase = dialogClosed
			return m
		}
		m.phase = dialogOpen
		m = m.refreshDialog()
		m.dialogVP.GotoTop()
	}
	return m
}

// handleMouse closes the dialog on a left click outside it and scrolls the
// dialog with the wheel.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.dialogShown() {
		return m, nil
	}
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft &&
		!insideDialog(msg.X, msg.Y, m.width, m.height) {
		return m.closeDialog(), nil
	}
	var cmd tea.Cmd
	m.dialogVP, cmd = m.dialogVP.Update(msg)
	return m, cmd
}

// handleKey processes key messages, routing to the dialog while it is shown.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	if m.dialogShown() {
		if msg.String() == "esc" {
			return m.closeDialog(), nil
		}
		var cmd tea.Cmd
		m.dialogVP, cmd = m.dialogVP.Update(msg)
		return m, cmd
	}

	sec, ok := m.current()
	if !ok {
		return m, nil
	}
	v := sec.View()

	switch msg.String() {
	case "tab":
		if m.focus == PaneLeft {
			m.focus = PaneRight
		} else {
			m.focus = PaneLeft
		}
		return m, nil

	case "right", "l":
		return m.switchTab(m.active.Next())

	case "left", "h":
		return m.switchTab(m.active.Prev())

	case "1", "2", "3", "4", "5":
		if t, ok := TabFromNumber(int(msg.Runes[0] - '0')); ok {
			return m.switchTab(t)
		}
		return m, nil

	case "r":
		return m, retryCmd(m.ctx, sec)

	case "enter":
		if v.State != catalog.StateReady || len(v.Items) == 0 {
			return m, nil
		}
		m.seq++
		m.phase = dialogLoading
		m = m.refreshDialog()
		return m, resolveCmd(m.ctx, sec, m.lists[m.active].cursor, m.seq)
	}

	if m.focus == PaneRight {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		m.lists[m.active] = m.lists[m.active].move(-1, len(v.Items))
		m = m.refreshDetail()
	case "down", "j":
		m.lists[m.active] = m.lists[m.active].move(1, len(v.Items))
		m = m.refreshDetail()
	}
	return m, nil
}

// switchTab activates t, loading its section on first visit.
func (m Model) switchTab(t Tab) (tea.Model, tea.Cmd) {
	m.active = t
	m = m.refreshDetail()
	if m.lists[t].loaded {
		return m, nil
	}
	m.lists[t].loaded = true
	sec, ok := m.current()
	if !ok {
		return m, nil
	}
	return m, loadCmd(m.ctx, sec)
}

// closeDialog closes the active section's dialog.
func (m Model) closeDialog() Model {
	if sec, ok := m.current(); ok {
		sec.Close()
	}
	m.phase = dialogClosed
	return m
}

// refreshDetail renders the selected card into the detail viewport.
func (m Model) refreshDetail() Model {
	v := m.currentView()
	cursor := m.lists[m.active].cursor
	if v.State != catalog.StateReady || cursor >= len(v.Items) {
		m.detail.SetContent("")
		return m
	}
	width := max(m.detail.Width, 1)
	m.detail.SetContent(lipgloss.NewStyle().Width(width).Render(renderCard(v.Items[cursor], width)))
	m.detail.GotoTop()
	return m
}

// refreshDialog renders the dialog body into the dialog viewport.
func (m Model) refreshDialog() Model {
	if !m.dialogShown() {
		return m
	}
	m.dialogVP.SetContent(dialogBody(m.currentView(), m.phase, m.dialogVP.Width, m.spinner.View()))
	return m
}

// contentHeight returns the usable height for pane content,
// accounting for border chrome, the tab bar and the help bar.
func (m Model) contentHeight() int {
	h := m.height - borderChrome - helpBarHeight - tabBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// View renders the tab bar, the two panes, the help bar and, when shown,
// the dialog overlay.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	leftWidth, rightWidth := PaneWidths(m.width)
	contentHeight := m.contentHeight()

	var leftStyle, rightStyle lipgloss.Style
	if m.focus == PaneLeft {
		leftStyle = FocusedBorder()
		rightStyle = UnfocusedBorder()
	} else {
		leftStyle = UnfocusedBorder()
		rightStyle = FocusedBorder()
	}

	leftStyle = leftStyle.
		Width(leftWidth - borderChrome).
		Height(contentHeight)
	rightStyle = rightStyle.
		Width(rightWidth - borderChrome).
		Height(contentHeight)

	v := m.currentView()
	tabs := TabBar{ActiveTab: m.active, Width: m.width}.View()
	leftPane := leftStyle.Render(m.lists[m.active].View(v, leftWidth-borderChrome, contentHeight, m.spinner.View()))
	rightPane := rightStyle.Render(m.detail.View())
	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
	helpView := m.help.View(HelpBindings(m.dialogShown()))

	base := lipgloss.JoinVertical(lipgloss.Left, tabs, panes, helpView)
	if !m.dialogShown() {
		return base
	}

	w, h := DialogSize(m.width, m.height)
	box := renderDialog(v.Dialog.Title, m.dialogVP, w, h)
	return placeOverlay(base, box, m.width, m.height)
}

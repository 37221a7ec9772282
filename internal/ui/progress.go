package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Event is one progress update from a running suite.
type Event struct {
	Suite  string
	Stage  string
	Failed int
	Done   bool
	OK     bool
}

// SuitePlan names a suite and the number of stages it is expected to run,
// used to size the progress bar.
type SuitePlan struct {
	Name   string
	Stages int
}

type progressModel struct {
	title   string
	events  <-chan Event
	spinner spinner.Model
	prog    progress.Model
	items   []suiteItem
	index   map[string]int
	width   int
	done    bool
}

type suiteItem struct {
	name     string
	status   string
	expected int
	finished int
	failed   int
}

type eventMsg Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders suite progress.
func NewProgressModel(title string, plans []SuitePlan, events <-chan Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76 // Default width

	items := make([]suiteItem, 0, len(plans))
	index := make(map[string]int, len(plans))
	for i, plan := range plans {
		expected := plan.Stages
		if expected < 1 {
			expected = 1
		}
		items = append(items, suiteItem{name: plan.Name, status: "queued", expected: expected})
		index[plan.Name] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.items {
		name := truncate(item.name, nameWidth)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		b.WriteString(fmt.Sprintf("  %s %s", statusStyled, name))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev Event) tea.Cmd {
	idx, ok := m.index[ev.Suite]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	switch {
	case ev.Done && ev.OK && item.failed == 0:
		item.status = "passed"
		item.finished = item.expected
	case ev.Done:
		item.status = "failed"
		item.finished = item.expected
	default:
		item.finished++
		item.failed += ev.Failed
		item.status = ev.Stage
		if ev.Failed > 0 {
			item.status = ev.Stage + "!"
		}
	}

	total := 0.0
	for _, it := range m.items {
		frac := float64(it.finished) / float64(it.expected)
		if frac > 1 {
			frac = 1
		}
		total += frac
	}
	return m.prog.SetPercent(total / float64(len(m.items)))
}

func styleStatus(status string) lipgloss.Style {
	switch {
	case status == "passed":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case status == "failed" || strings.HasSuffix(status, "!"):
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case status == "queued":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}

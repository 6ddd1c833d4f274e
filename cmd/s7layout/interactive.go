package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/wippyai/s7layout/report"
	"github.com/wippyai/s7layout/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const (
	pathWidth    = 40
	offsetWidth  = 10
	addressWidth = 12
	defaultRows  = 20
)

type modelState int

const (
	stateSelectBlock modelState = iota
	stateBrowse
)

type interactiveModel struct {
	filename string
	dbs      []*types.DataBlock
	entries  []report.Entry
	visible  []report.Entry
	filter   textinput.Model
	selected int
	cursor   int
	height   int
	state    modelState
}

func newInteractiveModel(filename string, dbs []*types.DataBlock) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "filter by path"
	ti.Prompt = "/ "
	ti.Width = pathWidth

	return &interactiveModel{
		filename: filename,
		dbs:      dbs,
		filter:   ti,
		state:    stateSelectBlock,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.state == stateSelectBlock {
				return m, tea.Quit
			}
		case "up":
			m.move(-1)
			return m, nil
		case "down":
			m.move(1)
			return m, nil
		case "enter":
			if m.state == stateSelectBlock && len(m.dbs) > 0 {
				m.open()
				return m, textinput.Blink
			}
			return m, nil
		case "esc":
			if m.state == stateBrowse {
				m.state = stateSelectBlock
				m.filter.Blur()
				m.filter.SetValue("")
			}
			return m, nil
		}
	}

	if m.state != stateBrowse {
		return m, nil
	}

	prev := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != prev {
		m.applyFilter()
	}
	return m, cmd
}

func (m *interactiveModel) move(delta int) {
	switch m.state {
	case stateSelectBlock:
		m.selected = clamp(m.selected+delta, len(m.dbs))
	case stateBrowse:
		m.cursor = clamp(m.cursor+delta, len(m.visible))
	}
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (m *interactiveModel) open() {
	m.entries = report.Entries(m.dbs[m.selected])
	m.state = stateBrowse
	m.filter.SetValue("")
	m.filter.Focus()
	m.applyFilter()
}

func (m *interactiveModel) applyFilter() {
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for _, e := range m.entries {
		if needle == "" || strings.Contains(strings.ToLower(e.Path), needle) {
			m.visible = append(m.visible, e)
		}
	}
	m.cursor = clamp(m.cursor, len(m.visible))
}

func (m *interactiveModel) rows() int {
	if m.height > 8 {
		return m.height - 8
	}
	return defaultRows
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("S7 Layout"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	if len(m.dbs) == 0 {
		b.WriteString("No data blocks found.\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	switch m.state {
	case stateSelectBlock:
		b.WriteString("Select a data block:\n\n")
		for i, db := range m.dbs {
			line := fmt.Sprintf("%s  %d fields, size %s", db.Name, len(db.Fields), report.FormatOffset(db.Size))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter browse • q quit"))

	case stateBrowse:
		db := m.dbs[m.selected]
		b.WriteString(fmt.Sprintf("DB NAME: %s\n", pathStyle.Render(db.Name)))
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		b.WriteString(headerStyle.Render(row("Path", "Offset", "Address", "Type")))
		b.WriteString("\n")

		start := 0
		if n := m.rows(); m.cursor >= n {
			start = m.cursor - n + 1
		}
		end := min(start+m.rows(), len(m.visible))
		for i := start; i < end; i++ {
			e := m.visible[i]
			indent := strings.Repeat("  ", e.Depth)
			path := pad(indent+e.Name, pathWidth)
			rest := cells(e.Location(), e.Address, e.Type)
			if i == m.cursor {
				b.WriteString(selectedStyle.Render(path + rest))
			} else {
				b.WriteString(pathStyle.Render(path) + typeStyle.Render(rest))
			}
			b.WriteString("\n")
		}
		if len(m.visible) == 0 {
			b.WriteString(helpStyle.Render("no matching fields"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("%d/%d fields • type to filter • ↑/↓ scroll • esc back", len(m.visible), len(m.entries))))
	}

	return b.String()
}

func row(path, offset, address, typ string) string {
	return pad(path, pathWidth) + cells(offset, address, typ)
}

func cells(offset, address, typ string) string {
	return pad(offset, offsetWidth) + pad(address, addressWidth) + typ
}

// pad fits s into width terminal cells, truncating at a character boundary
// and keeping at least one separating space.
func pad(s string, width int) string {
	if lipgloss.Width(s) >= width {
		s = ansi.Truncate(s, width-1, "")
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}

func runInteractive(filename string, dbs []*types.DataBlock) error {
	p := tea.NewProgram(newInteractiveModel(filename, dbs), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

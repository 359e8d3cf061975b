package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwaite/fieldview/internal/field"
	"github.com/mwaite/fieldview/internal/grid"
	"github.com/mwaite/fieldview/internal/section"
)

const (
	liveCols = 96
	liveRows = 28
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model animates extracted cross-sections over a sequence of output
// indices in the terminal.
type Model struct {
	res       *field.Resolver
	grid      *grid.Grid
	req       field.Request
	dimen     grid.Axis
	slice     float64
	steps     []int
	frameRate int

	idx     int
	playing bool
	frame   string
	err     error
}

func NewModel(res *field.Resolver, g *grid.Grid, fieldName string, dimen grid.Axis, slice float64, steps []int, fps int) Model {
	if fps <= 0 {
		fps = 10
	}
	return Model{
		res:       res,
		grid:      g,
		req:       field.Parse(fieldName),
		dimen:     dimen,
		slice:     slice,
		steps:     steps,
		frameRate: fps,
		playing:   true,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "[":
			m.idx = (m.idx + len(m.steps) - 1) % len(m.steps)
			m.render()
		case "]":
			m.idx = (m.idx + 1) % len(m.steps)
			m.render()
		case "r":
			m.idx = 0
			m.render()
		}
		return m, nil
	case TickMsg:
		if m.playing && len(m.steps) > 0 {
			m.render()
			m.idx = (m.idx + 1) % len(m.steps)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) render() {
	if len(m.steps) == 0 {
		return
	}
	step := m.steps[m.idx]
	frame, err := m.res.Resolve(m.req, step, m.dimen, m.slice)
	if err != nil {
		m.err = err
		return
	}
	sec, err := section.Extract(frame, m.dimen, m.slice, m.grid)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.frame = HeatString(sec, liveCols, liveRows)
}

func (m Model) View() string {
	header := headerStyle.Render(fmt.Sprintf("fieldview live: %s, %s = %g", m.req.Name, m.dimen, m.slice))
	status := statusStyle.Render(fmt.Sprintf("frame %d/%d", m.idx+1, len(m.steps)))
	if !m.playing {
		status += statusStyle.Render("  [paused]")
	}
	body := m.frame
	if m.err != nil {
		body = errStyle.Render(m.err.Error())
	}
	help := helpStyle.Render("space pause · [/] scrub · r restart · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, status, help)
}

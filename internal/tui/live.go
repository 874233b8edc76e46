// Package tui provides a live terminal view of a running exchange
// simulation: one trace per chain plus the pairwise swap acceptance rates.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/remc/internal/experiment"
	"github.com/san-kum/remc/internal/viz"
)

const historyLen = 160

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type Model struct {
	exp     *experiment.Experiment
	step    int
	history [][]float64
	paused  bool
	done    bool
	speed   int
	err     error
	width   int
}

func NewModel(exp *experiment.Experiment) *Model {
	return &Model{
		exp:     exp,
		history: make([][]float64, len(exp.Algorithm.Samplers())),
		speed:   10,
		width:   80,
	}
}

func (m *Model) Init() tea.Cmd { return tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "+", "=":
			m.speed *= 2
		case "-":
			if m.speed > 1 {
				m.speed /= 2
			}
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tickMsg:
		if m.done || m.err != nil {
			return m, nil
		}
		if !m.paused {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

// advance performs up to speed simulation steps, interleaving swap rounds
// exactly as the batch driving loop does.
func (m *Model) advance() {
	for i := 0; i < m.speed && m.step < m.exp.Samples; i++ {
		if m.step%m.exp.SwapInterval == 0 {
			if err := m.exp.Scheme.SwapAll(); err != nil {
				m.err = err
				return
			}
		}
		states := m.exp.Algorithm.Sample()
		for c, s := range states {
			m.history[c] = append(m.history[c], s.Position[0])
			if len(m.history[c]) > historyLen {
				m.history[c] = m.history[c][1:]
			}
		}
		m.step++
	}
	if m.step >= m.exp.Samples {
		m.done = true
	}
}

func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("remc live"))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  step %d/%d  speed %dx", m.step, m.exp.Samples, m.speed)))
	if m.paused {
		sb.WriteString(warnStyle.Render("  [paused]"))
	}
	if m.done {
		sb.WriteString(dimStyle.Render("  [finished]"))
	}
	sb.WriteString("\n\n")

	if m.err != nil {
		sb.WriteString(warnStyle.Render("error: " + m.err.Error()))
		sb.WriteString("\n")
		return sb.String()
	}

	width := m.width - 12
	if width < 20 {
		width = 20
	}
	for c, h := range m.history {
		if len(h) < 2 {
			continue
		}
		sb.WriteString(viz.Trace(h, fmt.Sprintf("chain %d", c), width, 5))
		sb.WriteString("\n\n")
	}

	sb.WriteString(viz.RateBar(m.exp.Algorithm.AcceptanceRates(), 30))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("space pause · +/- speed · q quit"))
	sb.WriteString("\n")
	return sb.String()
}

// RunLive runs the simulation under the live view until it finishes or the
// user quits.
func RunLive(exp *experiment.Experiment) error {
	p := tea.NewProgram(NewModel(exp))
	_, err := p.Run()
	return err
}

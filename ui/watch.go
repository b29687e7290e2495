// Package ui renders the live diagnostics view.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"netdoc/engine"
	"netdoc/model"
)

type tickMsg time.Time

type reportMsg struct {
	rep *model.DiagnosticReport
}

// Model is the bubbletea model for watch mode.
type Model struct {
	engine   *engine.Engine
	interval time.Duration

	fix             bool
	problemReported bool
	running         bool

	rep     *model.DiagnosticReport
	lastRun time.Time
	width   int
	height  int
}

// New creates the watch model.
func New(eng *engine.Engine, interval time.Duration, fix bool, problemReported bool) Model {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return Model{
		engine:          eng,
		interval:        interval,
		fix:             fix,
		problemReported: problemReported,
	}
}

// Run starts the watch TUI and blocks until the user quits.
func Run(eng *engine.Engine, interval time.Duration, fix bool, problemReported bool) error {
	p := tea.NewProgram(New(eng, interval, fix, problemReported), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.runDiagnostic(m.fix), tick(m.interval))
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// runDiagnostic executes one engine run off the UI goroutine.
func (m Model) runDiagnostic(fix bool) tea.Cmd {
	eng := m.engine
	problemReported := m.problemReported
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		rep := eng.Run(ctx, engine.RunOptions{Fix: fix, ProblemReported: problemReported})
		return reportMsg{rep: rep}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "f":
			m.fix = !m.fix
			return m, nil
		case "d":
			if m.running {
				return m, nil
			}
			m.running = true
			return m, m.runDiagnostic(m.fix)
		}
		return m, nil

	case tickMsg:
		if m.running {
			return m, tick(m.interval)
		}
		m.running = true
		return m, tea.Batch(m.runDiagnostic(m.fix), tick(m.interval))

	case reportMsg:
		m.running = false
		m.rep = msg.rep
		m.lastRun = time.Now()
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder

	fixLabel := dimStyle.Render("fix: off")
	if m.fix {
		fixLabel = okStyle.Render("fix: on")
	}
	state := ""
	if m.running {
		state = warnStyle.Render("  probing…")
	}
	sb.WriteString(titleStyle.Render(" netdoc watch "))
	sb.WriteString("  " + fixLabel + state + "\n\n")

	if m.rep == nil {
		sb.WriteString(dimStyle.Render("  collecting first probe…") + "\n")
		sb.WriteString(m.footer())
		return sb.String()
	}

	sb.WriteString(m.qualityPanel())
	sb.WriteString("\n")
	sb.WriteString(m.problemsPanel())
	sb.WriteString("\n")
	sb.WriteString(m.footer())
	return sb.String()
}

func (m Model) qualityPanel() string {
	rep := m.rep
	a := rep.Assessment

	var b strings.Builder
	score := statusStyle(rep.TotalScore).Render(fmt.Sprintf("%3d/100", rep.TotalScore))
	b.WriteString(fmt.Sprintf("%s  %s\n\n",
		score, statusStyle(rep.TotalScore).Render(strings.ToUpper(rep.OverallStatus.String()))))

	b.WriteString(dimensionLine("Signal", a.SignalScore, engine.SignalMax))
	b.WriteString(dimensionLine("Latency", a.LatencyScore, engine.LatencyMax))
	b.WriteString(dimensionLine("Reliability", a.ReliabilityScore, engine.ReliabilityMax))
	b.WriteString(dimensionLine("DNS", a.DNSScore, engine.DNSMax))

	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func dimensionLine(name string, score, max int) string {
	const cells = 12
	filled := 0
	if max > 0 {
		filled = score * cells / max
	}
	style := okStyle
	switch {
	case score*3 < max:
		style = critStyle
	case score*3 < max*2:
		style = warnStyle
	}
	bar := style.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", cells-filled))
	return fmt.Sprintf("%s %s %s\n",
		labelStyle.Render(fmt.Sprintf("%-12s", name)), bar,
		valueStyle.Render(fmt.Sprintf("%2d/%d", score, max)))
}

func (m Model) problemsPanel() string {
	rep := m.rep

	var b strings.Builder
	if len(rep.Problems) == 0 {
		b.WriteString(okStyle.Render("✓ no problems detected"))
		return panelStyle.Render(b.String())
	}

	for i, cat := range rep.Problems {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(critStyle.Render("✗ "+cat.String()) + "\n")
		for _, o := range rep.Remediations[cat] {
			mark := critStyle.Render("✗")
			if o.Succeeded {
				mark = okStyle.Render("✓")
			}
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				mark, valueStyle.Render(fmt.Sprintf("%-24s", o.Action)), dimStyle.Render(o.Detail)))
		}
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) footer() string {
	last := "never"
	if !m.lastRun.IsZero() {
		last = m.lastRun.Format("15:04:05")
	}
	return dimStyle.Render(fmt.Sprintf("\n last run %s · every %s · d run now · f toggle fix · q quit",
		last, m.interval))
}

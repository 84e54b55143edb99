package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leakscope/leakscope/internal/engine"
	"github.com/leakscope/leakscope/internal/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	riskHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	riskMedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	riskLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// riskText returns plain text for a risk level (ANSI codes break table cell
// truncation).
func riskText(r types.Risk) string {
	switch r {
	case types.RiskHigh:
		return "HIGH"
	case types.RiskMedium:
		return "MED"
	default:
		return "LOW"
	}
}

type progressMsg struct {
	path  string
	stats types.Stats
}

type doneMsg struct {
	res engine.Result
	err error
}

// Model drives the interactive scan view: a live progress phase while the
// pool runs, then a browsable table of match records.
type Model struct {
	total   int
	updates <-chan tea.Msg
	done    <-chan tea.Msg
	cancel  func()

	spinner  spinner.Model
	progress progress.Model
	results  table.Model

	stats    types.Stats
	lastPath string

	scanning bool
	quitting bool
	copied   bool

	res engine.Result
	err error
}

func NewModel(total int, updates, done <-chan tea.Msg, cancel func()) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		total:    total,
		updates:  updates,
		done:     done,
		cancel:   cancel,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient()),
		scanning: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForUpdate())
}

func (m Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.done:
			return msg
		case msg := <-m.updates:
			return msg
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.scanning {
				// Cancel the pool and stay up until the partial result
				// arrives, so the cancelled view can still be browsed.
				if m.cancel != nil {
					m.cancel()
				}
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		case "c":
			if !m.scanning {
				if row := m.results.SelectedRow(); row != nil {
					if err := clipboard.WriteAll(row[2] + " " + row[3]); err == nil {
						m.copied = true
					}
				}
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - 8
		if !m.scanning {
			m.results.SetHeight(max(4, msg.Height-8))
		}
		return m, nil
	case progressMsg:
		m.stats = msg.stats
		m.lastPath = msg.path
		return m, m.waitForUpdate()
	case doneMsg:
		m.scanning = false
		m.res = msg.res
		m.err = msg.err
		if m.err == nil {
			m.results = buildResultsTable(&m.res.Result)
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	if !m.scanning {
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}
	return m, nil
}

func buildResultsTable(res *types.Result) table.Model {
	cols := []table.Column{
		{Title: "Risk", Width: 6},
		{Title: "Rule", Width: 18},
		{Title: "Location", Width: 34},
		{Title: "Snippet", Width: 48},
	}
	var rows []table.Row
	for _, match := range res.AllMatches() {
		rows = append(rows, table.Row{
			riskText(match.Risk),
			match.Rule,
			fmt.Sprintf("%s:%d", match.Path, match.Line),
			match.Snippet,
		})
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	return t
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scanning {
		return m.scanView()
	}
	if m.err != nil {
		return titleStyle.Render("Leakscope") + "\n\n  scan failed: " + m.err.Error() + "\n"
	}
	return m.resultsView()
}

func (m Model) scanView() string {
	processed := m.stats.FilesScanned + m.stats.FilesSkipped
	var bar string
	if m.total > 0 {
		bar = m.progress.ViewAs(float64(processed) / float64(m.total))
	} else {
		bar = m.progress.ViewAs(0)
	}
	return fmt.Sprintf("%s\n\n  %s scanning… %d/%d files, %d matches\n  %s\n  %s\n",
		titleStyle.Render("Leakscope"),
		m.spinner.View(),
		processed, m.total,
		m.stats.TotalMatches,
		bar,
		pathStyle.Render(m.lastPath),
	)
}

func (m Model) resultsView() string {
	header := titleStyle.Render("Leakscope — scan results")
	status := fmt.Sprintf(" %d matches  (high %d / med %d / low %d)  scanned %d  skipped %d ",
		m.res.Stats.TotalMatches,
		m.res.Stats.ByRisk[types.RiskHigh],
		m.res.Stats.ByRisk[types.RiskMedium],
		m.res.Stats.ByRisk[types.RiskLow],
		m.res.Stats.FilesScanned,
		m.res.Stats.FilesSkipped,
	)
	if m.res.Status == types.StatusCancelled {
		status += "[cancelled] "
	}
	help := " ↑/↓ move · c copy · q quit "
	if m.copied {
		help = " copied to clipboard · q quit "
	}
	return header + "\n" +
		tableBorderStyle.Render(m.results.View()) + "\n" +
		statusStyle.Render(status) + "\n" +
		pathStyle.Render(help) + "\n"
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

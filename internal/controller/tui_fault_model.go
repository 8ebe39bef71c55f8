package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "gooze.dev/pkg/faultline/internal/model"
)

// recentTrials is how many batches the progress view keeps.
const recentTrials = 8

// Message types.
type runInfoMsg struct {
	info m.RunInfo
}

type trialMsg struct {
	trial m.Trial
}

type solutionsMsg struct {
	stats []m.SolutionStat
}

type faultsMsg struct {
	report m.Report
	faults []m.Fault
}

type finishedMsg struct{}

type keyMap struct {
	quit    key.Binding
	details key.Binding
}

var keys = keyMap{
	quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	details: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "toggle details"),
	),
}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Padding(1, 0, 0, 2)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 0, 1, 2)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("6")).Padding(0, 1)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 2)
	selectedRow  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true)
)

// faultItem is a ranked location in the fault list.
type faultItem struct {
	fault m.Fault
}

func (f faultItem) FilterValue() string {
	return string(f.fault.SourcePath) + " " + f.fault.Detail.Node
}

type faultDelegate struct{}

func (d faultDelegate) Height() int                             { return 1 }
func (d faultDelegate) Spacing() int                            { return 0 }
func (d faultDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d faultDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	fi, ok := item.(faultItem)
	if !ok {
		return
	}

	fault := fi.fault
	line := fmt.Sprintf("%4d  %-40s  %-14s  %8.3f",
		fault.Score,
		truncate(formatLocation(fault), 40),
		truncate(nodeKind(fault.Detail.Node), 14),
		fault.Detail.Suspiciousness,
	)

	if len(fault.Detail.SolutionBatches) > 0 {
		line += "  " + goodStyle.Render("fix")
	}

	if index == lm.Index() {
		line = selectedRow.Render(line)
	}

	_, _ = fmt.Fprint(w, line)
}

// faultModel follows a running search and then browses its fault list.
type faultModel struct {
	mode        StartMode
	width       int
	height      int
	info        m.RunInfo
	trials      []m.Trial
	batches     int
	crashes     int
	solutions   []m.SolutionStat
	report      *m.Report
	faults      list.Model
	details     bool
	finished    bool
	interrupted bool
}

func newFaultModel(mode StartMode) faultModel {
	faults := list.New([]list.Item{}, faultDelegate{}, 80, 20)
	faults.SetShowTitle(false)
	faults.SetShowHelp(false)
	faults.SetShowStatusBar(false)
	faults.SetShowPagination(true)
	faults.SetFilteringEnabled(true)

	return faultModel{mode: mode, faults: faults, width: 80, height: 24}
}

func (fm faultModel) resize(width, height int) faultModel {
	fm.width, fm.height = width, height
	fm.faults.SetSize(width, max(height-12, 3))

	return fm
}

func (fm faultModel) Init() tea.Cmd {
	return nil
}

func (fm faultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return fm.resize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		return fm.handleKey(msg)

	case runInfoMsg:
		fm.info = msg.info

	case trialMsg:
		fm.batches++
		if msg.trial.Crashed {
			fm.crashes++
		}

		fm.trials = append(fm.trials, msg.trial)
		if len(fm.trials) > recentTrials {
			fm.trials = fm.trials[len(fm.trials)-recentTrials:]
		}

	case solutionsMsg:
		fm.solutions = msg.stats

	case faultsMsg:
		report := msg.report
		fm.report = &report

		items := make([]list.Item, 0, len(msg.faults))
		for _, fault := range msg.faults {
			items = append(items, faultItem{fault: fault})
		}

		return fm, fm.faults.SetItems(items)

	case finishedMsg:
		fm.finished = true
	}

	return fm, nil
}

func (fm faultModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	filtering := fm.faults.FilterState() == list.Filtering

	switch {
	case !filtering && key.Matches(msg, keys.quit):
		if !fm.finished && fm.mode == ModeRun {
			fm.interrupted = true
		}

		return fm, tea.Quit

	case !filtering && fm.report != nil && key.Matches(msg, keys.details):
		fm.details = !fm.details
		return fm, nil
	}

	if fm.report == nil {
		return fm, nil
	}

	var cmd tea.Cmd

	fm.faults, cmd = fm.faults.Update(msg)

	return fm, cmd
}

func (fm faultModel) View() string {
	sections := []string{titleStyle.Render("faultline"), summaryStyle.Render(fm.summary())}

	if fm.report == nil {
		sections = append(sections, fm.viewTrials())
	} else {
		sections = append(sections, fm.viewFaults())
	}

	help := "q: quit"
	if fm.report != nil {
		help = "↑/k ↓/j: move  /: filter  enter: details  q: quit"
	}

	sections = append(sections, footerStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (fm faultModel) summary() string {
	if fm.report != nil {
		return fmt.Sprintf("Module %s  •  failing %s  •  mutations %s  •  solutions %s  •  locations %s",
			accentStyle.Render(string(fm.report.Module)),
			accentStyle.Render(fmt.Sprint(len(fm.report.Failing))),
			accentStyle.Render(fmt.Sprint(fm.report.Mutations)),
			accentStyle.Render(fmt.Sprint(fm.report.Solutions)),
			accentStyle.Render(fmt.Sprint(len(fm.report.Faults))),
		)
	}

	return fmt.Sprintf("Module %s  •  failing %s  •  statements %s  •  instructions %s  •  batches %s  •  crashes %s",
		accentStyle.Render(fm.info.Module),
		accentStyle.Render(fmt.Sprint(fm.info.Failing)),
		accentStyle.Render(fmt.Sprint(fm.info.Statements)),
		accentStyle.Render(fmt.Sprint(fm.info.Instructions)),
		accentStyle.Render(fmt.Sprint(fm.batches)),
		accentStyle.Render(fmt.Sprint(fm.crashes)),
	)
}

func (fm faultModel) viewTrials() string {
	if len(fm.trials) == 0 {
		return boxStyle.Width(max(fm.width-4, 20)).Render(mutedStyle.Render("collecting coverage…"))
	}

	lines := make([]string, 0, len(fm.trials))

	for _, trial := range fm.trials {
		outcome := trial.Evaluation
		switch {
		case trial.Solution:
			outcome = goodStyle.Render(outcome + " solution")
		case trial.Crashed:
			outcome = badStyle.Render(outcome)
		}

		first := ""
		if len(trial.Instructions) > 0 {
			first = trial.Instructions[0]
			if n := len(trial.Instructions) - 1; n > 0 {
				first += fmt.Sprintf(" (+%d)", n)
			}
		}

		lines = append(lines, fmt.Sprintf("%5d  %-24s  %s", trial.Batch, outcome, truncate(first, max(fm.width-40, 20))))
	}

	return boxStyle.Width(max(fm.width-4, 20)).Render(strings.Join(lines, "\n"))
}

func (fm faultModel) viewFaults() string {
	if len(fm.faults.Items()) == 0 {
		return boxStyle.Render(mutedStyle.Render("No fault locations found."))
	}

	view := fm.faults.View()

	if fm.details {
		if item, ok := fm.faults.SelectedItem().(faultItem); ok {
			view = lipgloss.JoinVertical(lipgloss.Left, view, boxStyle.Width(max(fm.width-4, 20)).Render(renderDetail(item.fault)))
		}
	}

	if len(fm.solutions) > 0 {
		var parts []string
		for _, stat := range fm.solutions {
			parts = append(parts, fmt.Sprintf("#%d %d file(s) +%d -%d", stat.Index, stat.Files, stat.Added, stat.Removed))
		}

		view = lipgloss.JoinVertical(lipgloss.Left, view, summaryStyle.Render("Solutions: "+strings.Join(parts, ", ")))
	}

	return view
}

func renderDetail(fault m.Fault) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", accentStyle.Render(formatLocation(fault)), fault.Detail.Node)
	fmt.Fprintf(&b, "suspiciousness %.3f  initial %.3f  instructions %d  attempts %d\n",
		fault.Detail.Suspiciousness, fault.Detail.InitialScore, fault.Detail.Instructions, fault.Detail.Attempts)

	if fault.Detail.BestMutation != "" {
		fmt.Fprintf(&b, "best %s [%s]\n", fault.Detail.BestMutation, fault.Detail.BestEvaluation)
	}

	writeList(&b, "covered by", fault.Detail.CoveringTests)
	writeList(&b, "improved", fault.Detail.ImprovedTests)
	writeList(&b, "worsened", fault.Detail.WorsenedTests)

	if len(fault.Detail.SolutionBatches) > 0 {
		fmt.Fprintf(&b, "solution batches %v\n", fault.Detail.SolutionBatches)
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}

	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(items, ", "))
}

func truncate(s string, width int) string {
	if width <= 1 || len(s) <= width {
		return s
	}

	return "…" + s[len(s)-width+1:]
}

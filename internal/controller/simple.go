package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "gooze.dev/pkg/faultline/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd  *cobra.Command
	mode StartMode
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mode = startConfig(options).mode

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayRunInfo prints the size of the search.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, info m.RunInfo) {
	if err := ctx.Err(); err != nil {
		return
	}

	if s.mode == ModeView {
		s.printf("Report %s for %s (%d failing test(s))\n", info.RunID, info.Module, info.Failing)
		return
	}

	s.printf("Localizing %d failing test(s) in %s: %d file(s), %d statement(s), %d instruction(s)\n",
		info.Failing, info.Module, info.Files, info.Statements, info.Instructions)
}

// DisplayTrial prints the outcome of one mutation batch.
func (s *SimpleUI) DisplayTrial(ctx context.Context, trial m.Trial) {
	if err := ctx.Err(); err != nil {
		return
	}

	marker := ""
	if trial.Solution {
		marker = " (solution)"
	}

	s.printf("Batch %d [%s]%s\n", trial.Batch, trial.Evaluation, marker)

	for _, instruction := range trial.Instructions {
		s.printf("  %s\n", instruction)
	}
}

// DisplaySolutions prints the patch size of every saved solution.
func (s *SimpleUI) DisplaySolutions(ctx context.Context, stats []m.SolutionStat) {
	if err := ctx.Err(); err != nil || len(stats) == 0 {
		return
	}

	s.printf("\n%s", renderSolutionTable(stats))
}

// DisplayFaults prints the ranked fault list.
func (s *SimpleUI) DisplayFaults(ctx context.Context, report m.Report, limit int) {
	if err := ctx.Err(); err != nil {
		return
	}

	if len(report.Faults) == 0 {
		s.printf("No fault locations found.\n")
		return
	}

	s.printf("\n%s", renderFaultTable(report, limit))
	s.printf("Mutations: %d, solutions: %d, duration: %s\n", report.Mutations, report.Solutions, report.Duration)
}

func renderSolutionTable(stats []m.SolutionStat) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Solution", "Files", "Added", "Removed"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	for _, stat := range stats {
		table.Append([]string{
			strconv.Itoa(stat.Index),
			strconv.Itoa(stat.Files),
			"+" + strconv.Itoa(stat.Added),
			"-" + strconv.Itoa(stat.Removed),
		})
	}

	table.Render()

	return tableBuffer.String()
}

func renderFaultTable(report m.Report, limit int) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Rank", "Location", "Node", "Suspiciousness", "Attempts"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_CENTER,
	})

	faults := report.Faults
	if limit > 0 && len(faults) > limit {
		faults = faults[:limit]
	}

	for _, fault := range faults {
		table.Append([]string{
			strconv.Itoa(fault.Score),
			formatLocation(fault),
			nodeKind(fault.Detail.Node),
			fmt.Sprintf("%.3f", fault.Detail.Suspiciousness),
			strconv.Itoa(fault.Detail.Attempts),
		})
	}

	table.SetFooter([]string{
		"", fmt.Sprintf("Total Locations %d", len(report.Faults)), "", "", "",
	})

	table.Render()

	return tableBuffer.String()
}

func formatLocation(fault m.Fault) string {
	return fmt.Sprintf("%s:%d:%d", fault.SourcePath, fault.Location.Start.Line, fault.Location.Start.Column)
}

// nodeKind keeps the node type of a "Kind path" detail.
func nodeKind(node string) string {
	kind, _, _ := strings.Cut(node, " ")
	return kind
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

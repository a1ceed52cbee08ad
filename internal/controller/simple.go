package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "covagg.dev/pkg/covagg/internal/model"
)

var (
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
)

// SimpleUI implements UI using cobra Command's output and a text table.
type SimpleUI struct {
	cmd    *cobra.Command
	colors bool
	config ReportConfig
	mode   StartMode
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, colors bool, config ReportConfig) *SimpleUI {
	return &SimpleUI{cmd: cmd, colors: colors, config: config}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := &StartConfig{}
	for _, opt := range options {
		opt(cfg)
	}

	s.mode = cfg.mode

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayCollectInfo shows the collection settings.
func (s *SimpleUI) DisplayCollectInfo(ctx context.Context, profiles int, threads int, shardIndex int, shardCount int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Collecting %d profile(s) with %d worker(s) (Shard %d/%d)\n", profiles, threads, shardIndex, max(shardCount, 1))
}

// DisplayCollectedTest shows the outcome of one test contribution.
func (s *SimpleUI) DisplayCollectedTest(ctx context.Context, test m.TestRecord, err error) {
	if ctx.Err() != nil || s.mode != ModeCollect {
		return
	}

	if err != nil {
		s.printf("Discarded %s: %v\n", test.ID, err)
		return
	}

	s.printf("Collected %s (%s)\n", test.ID, test.Size)
}

// DisplayMergeInfo shows the number of shards being merged.
func (s *SimpleUI) DisplayMergeInfo(ctx context.Context, shards int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Merging %d shard(s)\n", shards)
}

// DisplayReport prints the summary and, unless configured otherwise, the
// per-file table.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.ReportSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	totals := report.Totals
	rows := []struct {
		label  string
		tested int
		total  int
	}{
		{"Classes:", totals.TestedClasses + totals.TestedTraits, totals.Classes + totals.Traits},
		{"Methods:", totals.TestedMethods, totals.Methods},
		{"Functions:", totals.TestedFunctions, totals.Functions},
		{"Lines:", totals.ExecutedLines, totals.ExecutableLines},
		{"Branches:", totals.TestedBranches, totals.Branches},
		{"Paths:", totals.TestedPaths, totals.Paths},
	}

	title := "Code Coverage Report:"
	if s.config.OnlySummary {
		title = "Code Coverage Report Summary:"
	}

	s.printf("\n%s\n", s.style(headerStyle, title))
	s.printf("  %d test(s), %d file(s)\n\n", report.Tests, len(report.Files))

	for _, row := range rows {
		pct := m.Percent(row.tested, row.total)
		line := fmt.Sprintf("  %-10s %7s (%d/%d)", row.label, formatPercent(pct), row.tested, row.total)
		s.printf("%s\n", s.style(s.coverageStyle(pct), line))
	}

	if s.config.OnlySummary {
		return nil
	}

	s.printf("\n%s", s.renderFiles(report.Files))

	return nil
}

func (s *SimpleUI) renderFiles(files []m.FileSummary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Lines", "Methods", "Functions", "CRAP"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	shown := 0

	for _, file := range files {
		t := file.Totals
		if t.ExecutedLines == 0 && !s.config.ShowUncoveredFiles {
			continue
		}

		table.Append([]string{
			file.Name,
			fmt.Sprintf("%s (%d/%d)", formatPercent(t.LineCoverage()), t.ExecutedLines, t.ExecutableLines),
			fmt.Sprintf("%d/%d", t.TestedMethods, t.Methods),
			fmt.Sprintf("%d/%d", t.TestedFunctions, t.Functions),
			worstCRAP(file.Units),
		})

		shown++
	}

	table.SetFooter([]string{fmt.Sprintf("Total Files %d", shown), "", "", "", ""})
	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) coverageStyle(pct float64) lipgloss.Style {
	switch {
	case pct >= s.config.HighLowerBound:
		return highStyle
	case pct > s.config.LowUpperBound:
		return mediumStyle
	default:
		return lowStyle
	}
}

func (s *SimpleUI) style(style lipgloss.Style, text string) string {
	if !s.colors {
		return text
	}

	return style.Render(text)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func formatPercent(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}

// worstCRAP returns the unit with the highest CRAP score as "name=score".
func worstCRAP(units []m.UnitStat) string {
	worst := ""
	score := -1.0

	for _, u := range units {
		if u.Kind != m.UnitMethod && u.Kind != m.UnitFunction {
			continue
		}

		value, err := strconv.ParseFloat(u.CRAP, 64)
		if err != nil || value <= score {
			continue
		}

		name := u.Name
		if u.Parent != "" {
			name = u.Parent + "." + u.Name
		}

		score = value
		worst = fmt.Sprintf("%s=%s", name, u.CRAP)
	}

	return worst
}

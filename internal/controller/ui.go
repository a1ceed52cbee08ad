// Package controller provides output adapters for displaying coverage results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "covagg.dev/pkg/covagg/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeReport StartMode = iota
	ModeCollect
	ModeMerge
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithCollectMode sets the UI to collection mode.
func WithCollectMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCollect
	}
}

// WithMergeMode sets the UI to merge mode.
func WithMergeMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeMerge
	}
}

// WithReportMode sets the UI to report mode.
func WithReportMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeReport
	}
}

// ReportConfig controls how a coverage report is rendered.
type ReportConfig struct {
	// LowUpperBound is the highest percentage still rendered as low.
	LowUpperBound float64
	// HighLowerBound is the lowest percentage rendered as high.
	HighLowerBound float64
	// ShowUncoveredFiles lists files without any executed line.
	ShowUncoveredFiles bool
	// OnlySummary skips the per-file table.
	OnlySummary bool
}

// DefaultReportConfig returns the 50/90 bounds without uncovered files.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{LowUpperBound: 50, HighLowerBound: 90}
}

// Available output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// UI defines the interface for displaying collection progress and reports.
// Implementations can use different output methods (text table, YAML, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	DisplayCollectInfo(ctx context.Context, profiles int, threads int, shardIndex int, shardCount int)
	DisplayCollectedTest(ctx context.Context, test m.TestRecord, err error)
	DisplayMergeInfo(ctx context.Context, shards int)
	DisplayReport(ctx context.Context, report m.ReportSummary) error
}

// NewUI returns the UI for format writing to cmd's output.
func NewUI(cmd *cobra.Command, format string, colors bool, config ReportConfig) UI {
	if format == FormatYAML {
		return NewYAMLUI(cmd)
	}

	return NewSimpleUI(cmd, colors, config)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

package controller

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "covagg.dev/pkg/covagg/internal/model"
)

// YAMLUI renders reports as YAML documents. Progress output is suppressed so
// the output stays machine readable.
type YAMLUI struct {
	cmd *cobra.Command
}

// NewYAMLUI creates a new YAMLUI.
func NewYAMLUI(cmd *cobra.Command) *YAMLUI {
	return &YAMLUI{cmd: cmd}
}

// Start implements UI.
func (y *YAMLUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close implements UI.
func (y *YAMLUI) Close(context.Context) {}

// DisplayCollectInfo implements UI.
func (y *YAMLUI) DisplayCollectInfo(context.Context, int, int, int, int) {}

// DisplayCollectedTest implements UI.
func (y *YAMLUI) DisplayCollectedTest(context.Context, m.TestRecord, error) {}

// DisplayMergeInfo implements UI.
func (y *YAMLUI) DisplayMergeInfo(context.Context, int) {}

// DisplayReport writes report as a YAML document.
func (y *YAMLUI) DisplayReport(ctx context.Context, report m.ReportSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	encoder := yaml.NewEncoder(y.cmd.OutOrStdout())
	encoder.SetIndent(2)

	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return encoder.Close()
}

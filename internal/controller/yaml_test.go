package controller

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	m "covagg.dev/pkg/covagg/internal/model"
)

func TestYAMLUI_DisplayReport(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	ctx := context.Background()
	ui := NewUI(cmd, FormatYAML, false, DefaultReportConfig())
	require.IsType(t, &YAMLUI{}, ui)

	require.NoError(t, ui.Start(ctx))
	ui.DisplayCollectInfo(ctx, 1, 1, 0, 1)
	ui.DisplayCollectedTest(ctx, m.NewTestRecord("TestAdd"), nil)
	require.NoError(t, ui.DisplayReport(ctx, sampleSummary()))
	ui.Close(ctx)

	var decoded m.ReportSummary
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, m.Path("/src/calc"), decoded.Root)
	require.Equal(t, 2, decoded.Tests)
	require.Equal(t, 12, decoded.Totals.ExecutedLines)
	require.Len(t, decoded.Files, 3)
	require.Equal(t, "util/strings.go", decoded.Files[1].Name)
	require.Equal(t, "30", decoded.Files[1].Units[0].CRAP)
}

func TestNewUI_DefaultsToText(t *testing.T) {
	ui := NewUI(&cobra.Command{}, FormatText, false, DefaultReportConfig())
	require.IsType(t, &SimpleUI{}, ui)
}

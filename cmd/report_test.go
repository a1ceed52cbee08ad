package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"covagg.dev/pkg/covagg/internal/domain"
	domainmocks "covagg.dev/pkg/covagg/internal/domain/mocks"
	m "covagg.dev/pkg/covagg/internal/model"
)

func TestReportCmd_UsesRootOutputFlagByDefault(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newReportCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Report", mock.Anything, mock.MatchedBy(func(args domain.ReportArgs) bool {
		return args.Reports == m.Path(".covagg")
	})).Return(nil)

	cmd.SetArgs([]string{"report"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestReportCmd_RootOutputFlagIsPassedThrough(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newReportCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Report", mock.Anything, mock.MatchedBy(func(args domain.ReportArgs) bool {
		return args.Reports == m.Path("./reports-dir")
	})).Return(nil)

	cmd.SetArgs([]string{"report", "--output", "./reports-dir"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestReportCmd_FlagsFeedConfig(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newReportCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Report", mock.Anything, mock.Anything).Return(nil)

	cmd.SetArgs([]string{"report", "--format", "yaml", "--only-summary", "--show-uncovered"})
	err := cmd.Execute()
	require.NoError(t, err)

	assert.Equal(t, "yaml", viper.GetString(reportFormatKey))
	assert.True(t, reportConfig().OnlySummary)
	assert.True(t, reportConfig().ShowUncoveredFiles)
}

func TestReportCmd_PositionalArgsAreRejected(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newReportCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	cmd.SetArgs([]string{"report", "./custom-reports"})
	err := cmd.Execute()
	require.Error(t, err)
}

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"covagg.dev/pkg/covagg/internal/domain"
	domainmocks "covagg.dev/pkg/covagg/internal/domain/mocks"
	m "covagg.dev/pkg/covagg/internal/model"
)

func writeProfiles(t *testing.T, dir string, names ...string) {
	t.Helper()

	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("mode: set\n"), 0o644))
	}
}

func TestCollectCmd_ParallelFlag(t *testing.T) {
	dir := t.TempDir()
	writeProfiles(t, dir, "unit.out", "integration.out")

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newCollectCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Collect", mock.Anything, mock.MatchedBy(func(args domain.CollectArgs) bool {
		return args.Threads == 2 &&
			args.ShardIndex == 0 &&
			args.TotalShardCount == 1 &&
			args.Reports == m.Path(".covagg") &&
			len(args.Profiles) == 2
	})).Return(nil)

	cmd.SetArgs([]string{"collect", "--parallel", "2", dir})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestCollectCmd_WithSharding(t *testing.T) {
	dir := t.TempDir()
	writeProfiles(t, dir, "unit.out")

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newCollectCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Collect", mock.Anything, mock.MatchedBy(func(args domain.CollectArgs) bool {
		return args.ShardIndex == 1 && args.TotalShardCount == 3
	})).Return(nil)

	cmd.SetArgs([]string{"collect", "--shard", "1/3", dir})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestCollectCmd_ExpectationsFlag(t *testing.T) {
	dir := t.TempDir()
	writeProfiles(t, dir, "unit.out")

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newCollectCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Collect", mock.Anything, mock.MatchedBy(func(args domain.CollectArgs) bool {
		return args.Expectations == m.Path("tests.yaml")
	})).Return(nil)

	cmd.SetArgs([]string{"collect", "-e", "tests.yaml", dir})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestCollectCmd_ProfilesAndDirectories(t *testing.T) {
	dir := t.TempDir()
	writeProfiles(t, dir, "a.out", "nested/b.out", "notes.txt")
	single := filepath.Join(t.TempDir(), "single.cov")
	require.NoError(t, os.WriteFile(single, []byte("mode: set\n"), 0o644))

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newCollectCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	var got []m.Path

	mockWorkflow.On("Collect", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			got = args.Get(1).(domain.CollectArgs).Profiles
		}).
		Return(nil)

	cmd.SetArgs([]string{"collect", dir, single})
	err := cmd.Execute()
	require.NoError(t, err)

	assert.ElementsMatch(t, []m.Path{
		m.Path(filepath.Join(dir, "a.out")),
		m.Path(filepath.Join(dir, "nested", "b.out")),
		m.Path(single),
	}, got)
}

func TestCollectCmd_MissingProfile(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newCollectCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	cmd.SetArgs([]string{"collect", filepath.Join(t.TempDir(), "missing.out")})
	err := cmd.Execute()
	require.Error(t, err)
}

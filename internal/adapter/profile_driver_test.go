package adapter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "covagg.dev/pkg/covagg/internal/model"
)

const calcProfile = `mode: set
example.com/calc/calc.go:3.24,5.2 1 1
example.com/calc/calc.go:7.24,8.14 1 0
example.com/calc/calc.go:8.14,10.3 1 1
example.com/calc/ops.go:1.1,2.2 1 0
`

func newCalcDriver(t *testing.T, opts ...ProfileDriverOption) (*ProfileDriver, string) {
	t.Helper()

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "go.mod"), "module example.com/calc\n")
	writeTestFile(t, filepath.Join(root, "cover.out"), calcProfile)

	fs := NewLocalSourceFSAdapter()
	resolver, err := NewModuleResolver(fs, m.Path(root))
	require.NoError(t, err)

	opts = append([]ProfileDriverOption{WithModuleResolver(resolver)}, opts...)

	return NewProfileDriver(fs, opts...), root
}

func TestProfileDriver_StopConsumesQueuedProfile(t *testing.T) {
	driver, root := newCalcDriver(t)
	driver.Queue(m.Path(filepath.Join(root, "cover.out")))
	require.Equal(t, 1, driver.Pending())

	require.NoError(t, driver.Start(false))
	raw, err := driver.Stop()
	require.NoError(t, err)
	assert.Zero(t, driver.Pending())

	calc := raw[m.Path(filepath.Join(root, "calc.go"))]
	require.NotNil(t, calc)
	assert.Equal(t, map[int]m.LineStatus{
		3:  m.LineExecuted,
		4:  m.LineExecuted,
		5:  m.LineExecuted,
		7:  m.LineNotExecuted,
		8:  m.LineExecuted,
		9:  m.LineExecuted,
		10: m.LineExecuted,
	}, calc.Lines)

	ops := raw[m.Path(filepath.Join(root, "ops.go"))]
	require.NotNil(t, ops)
	assert.Equal(t, m.LineNotExecuted, ops.Lines[1])
}

func TestProfileDriver_DeadAndUnused(t *testing.T) {
	driver, root := newCalcDriver(t)
	driver.Queue(m.Path(filepath.Join(root, "cover.out")))

	require.NoError(t, driver.Start(true))
	raw, err := driver.Stop()
	require.NoError(t, err)

	calc := raw[m.Path(filepath.Join(root, "calc.go"))]
	assert.Equal(t, m.LineNotExecutable, calc.Lines[6])
	assert.NotContains(t, calc.Lines, 2)
	assert.NotContains(t, calc.Lines, 11)
}

func TestProfileDriver_EmptyQueue(t *testing.T) {
	driver, _ := newCalcDriver(t)

	require.NoError(t, driver.Start(false))
	raw, err := driver.Stop()
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestProfileDriver_BracketOrder(t *testing.T) {
	driver, _ := newCalcDriver(t)

	_, err := driver.Stop()
	require.ErrorIs(t, err, ErrDriverState)

	require.NoError(t, driver.Start(false))
	require.ErrorIs(t, driver.Start(false), ErrDriverState)
}

func TestProfileDriver_BranchCoverage(t *testing.T) {
	driver := NewProfileDriver(NewLocalSourceFSAdapter())

	require.NoError(t, driver.SetDetermineBranchCoverage(false))
	require.ErrorIs(t, driver.SetDetermineBranchCoverage(true), ErrBranchCoverageUnsupported)
}

func TestProfileDriver_Load(t *testing.T) {
	t.Run("baseline profile restricted to requested files", func(t *testing.T) {
		driver, root := newCalcDriver(t)
		driver.baseline = m.Path(filepath.Join(root, "cover.out"))

		ops := m.Path(filepath.Join(root, "ops.go"))

		require.NoError(t, driver.Start(false))
		require.NoError(t, driver.Load([]m.Path{ops}))

		raw, err := driver.Stop()
		require.NoError(t, err)
		require.Len(t, raw, 1)
		assert.Contains(t, raw, ops)
	})

	t.Run("without baseline", func(t *testing.T) {
		driver, _ := newCalcDriver(t)

		require.NoError(t, driver.Load([]m.Path{"x.go"}))
		require.NoError(t, driver.Start(false))

		raw, err := driver.Stop()
		require.NoError(t, err)
		assert.Empty(t, raw)
	})

	t.Run("missing baseline file", func(t *testing.T) {
		driver := NewProfileDriver(NewLocalSourceFSAdapter(), WithBaselineProfile(m.Path(filepath.Join(t.TempDir(), "none.out"))))
		require.Error(t, driver.Load([]m.Path{"x.go"}))
	})
}

func TestProfileDriver_MalformedProfile(t *testing.T) {
	root := t.TempDir()
	profile := filepath.Join(root, "bad.out")
	writeTestFile(t, profile, "mode: set\nnot a block\n")

	driver := NewProfileDriver(NewLocalSourceFSAdapter())
	driver.Queue(m.Path(profile))

	require.NoError(t, driver.Start(false))
	_, err := driver.Stop()
	require.Error(t, err)
}

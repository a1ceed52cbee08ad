package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "covagg.dev/pkg/covagg/internal/model"
)

func sampleSnapshot() *m.Snapshot {
	file := m.NewFileCoverage()
	file.Lines[3] = &m.LineRecord{Kind: m.LineKindRecorded, PathCovered: true, Tests: []string{"TestAdd"}}
	file.Lines[4] = m.NotExecutableLine()
	file.Lines[5] = m.RecordedLine()
	file.Branch("Add", 0).Hit = 1
	file.Path("Add", 0).Hit = 2

	return &m.Snapshot{
		Version:   m.SnapshotVersion,
		Whitelist: []m.Path{"/src/calc.go"},
		Data:      m.CoverageData{"/src/calc.go": file},
		Tests:     m.TestData{"TestAdd": {ID: "TestAdd", Size: m.SizeSmall, Status: 0}},
	}
}

func TestAFSReportStore_RoundTrip(t *testing.T) {
	store := NewAFSReportStore()
	dir := m.Path(t.TempDir())
	ctx := context.Background()

	want := sampleSnapshot()
	require.NoError(t, store.SaveSnapshot(ctx, dir, want))

	got, err := store.LoadSnapshot(ctx, dir)
	require.NoError(t, err)

	assert.Equal(t, want.Version, got.Version)
	assert.Equal(t, want.Whitelist, got.Whitelist)
	assert.Equal(t, want.Tests, got.Tests)

	file := got.Data["/src/calc.go"]
	require.NotNil(t, file)
	assert.Equal(t, []string{"TestAdd"}, file.Lines[3].Tests)
	assert.True(t, file.Lines[3].PathCovered)
	assert.False(t, file.Lines[4].Executable())
	assert.True(t, file.Lines[5].Executable())
	assert.Equal(t, 1, file.Branches["Add"][0].Hit)
	assert.Equal(t, 2, file.Paths["Add"][0].Hit)
}

func TestAFSReportStore_LoadErrors(t *testing.T) {
	store := NewAFSReportStore()
	ctx := context.Background()

	t.Run("missing snapshot", func(t *testing.T) {
		_, err := store.LoadSnapshot(ctx, m.Path(t.TempDir()))
		require.ErrorIs(t, err, ErrSnapshotNotFound)
	})

	t.Run("tampered payload", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, store.SaveSnapshot(ctx, m.Path(dir), sampleSnapshot()))

		target := filepath.Join(dir, SnapshotFileName)
		content, err := os.ReadFile(target)
		require.NoError(t, err)

		content[len(content)-1] ^= 0xff
		require.NoError(t, os.WriteFile(target, content, 0o644))

		_, err = store.LoadSnapshot(ctx, m.Path(dir))
		require.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("garbage", func(t *testing.T) {
		dir := t.TempDir()
		writeTestFile(t, filepath.Join(dir, SnapshotFileName), "not msgpack")

		_, err := store.LoadSnapshot(ctx, m.Path(dir))
		require.ErrorIs(t, err, ErrCorruptSnapshot)
	})
}

func TestAFSReportStore_ListShards(t *testing.T) {
	store := NewAFSReportStore()
	ctx := context.Background()
	dir := t.TempDir()

	for _, name := range []string{"shard_10", "shard_2", "shard_0", "shard_x", "other"} {
		mustMkdir(t, filepath.Join(dir, name))
	}
	writeTestFile(t, filepath.Join(dir, "shard_3"), "a file, not a shard")

	shards, err := store.ListShards(ctx, m.Path(dir))
	require.NoError(t, err)

	assert.Equal(t, []m.Path{
		ShardDir(m.Path(dir), 0),
		ShardDir(m.Path(dir), 2),
		ShardDir(m.Path(dir), 10),
	}, shards)
}

func TestShardDir(t *testing.T) {
	assert.Equal(t, m.Path("/out/shard_1"), ShardDir("/out/", 1))
	assert.Equal(t, m.Path("/out/shard_2"), ShardDir("/out", 2))
}

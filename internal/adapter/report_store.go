package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/minio/highwayhash"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/vmihailenco/msgpack/v5"

	m "covagg.dev/pkg/covagg/internal/model"
)

const (
	// SnapshotFileName is the name of the snapshot file inside an output directory.
	SnapshotFileName = "coverage.covagg"
	// ShardDirPrefix prefixes the per-shard output directories.
	ShardDirPrefix = "shard_"
)

var (
	// ErrCorruptSnapshot is returned when a snapshot fails its integrity check.
	ErrCorruptSnapshot = errors.New("corrupt coverage snapshot")
	// ErrSnapshotNotFound is returned when a directory holds no snapshot.
	ErrSnapshotNotFound = errors.New("coverage snapshot not found")
)

var checksumKey = []byte("covagg-snapshot-checksum-key-256")

// ReportStore persists coverage snapshots for cross-process merges.
type ReportStore interface {
	SaveSnapshot(ctx context.Context, dir m.Path, snapshot *m.Snapshot) error
	LoadSnapshot(ctx context.Context, dir m.Path) (*m.Snapshot, error)
	ListShards(ctx context.Context, dir m.Path) ([]m.Path, error)
}

type snapshotEnvelope struct {
	Checksum uint64 `msgpack:"checksum"`
	Payload  []byte `msgpack:"payload"`
}

// AFSReportStore is a ReportStore backed by github.com/viant/afs, so output
// directories may be local paths or any URL scheme afs supports.
type AFSReportStore struct {
	fs afs.Service
}

// NewAFSReportStore constructs an AFSReportStore.
func NewAFSReportStore() *AFSReportStore {
	return &AFSReportStore{fs: afs.New()}
}

// ShardDir returns the output directory of shard index below dir.
func ShardDir(dir m.Path, index int) m.Path {
	return m.Path(strings.TrimSuffix(string(dir), "/") + "/" + ShardDirPrefix + strconv.Itoa(index))
}

// SaveSnapshot encodes snapshot and writes it to dir.
func (s *AFSReportStore) SaveSnapshot(ctx context.Context, dir m.Path, snapshot *m.Snapshot) error {
	payload, err := msgpack.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	sum, err := checksum(payload)
	if err != nil {
		return err
	}

	content, err := msgpack.Marshal(&snapshotEnvelope{Checksum: sum, Payload: payload})
	if err != nil {
		return fmt.Errorf("encode snapshot envelope: %w", err)
	}

	target := url.Join(string(dir), SnapshotFileName)
	if err := s.fs.Upload(ctx, target, 0o644, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("write snapshot %s: %w", target, err)
	}

	return nil
}

// LoadSnapshot reads and verifies the snapshot stored in dir.
func (s *AFSReportStore) LoadSnapshot(ctx context.Context, dir m.Path) (*m.Snapshot, error) {
	source := url.Join(string(dir), SnapshotFileName)

	exists, err := s.fs.Exists(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("check snapshot %s: %w", source, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: %w", source, ErrSnapshotNotFound)
	}

	content, err := s.fs.DownloadWithURL(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", source, err)
	}

	return decodeSnapshot(content)
}

// ListShards returns the shard directories below dir ordered by shard index.
func (s *AFSReportStore) ListShards(ctx context.Context, dir m.Path) ([]m.Path, error) {
	objects, err := s.fs.List(ctx, string(dir))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	type shard struct {
		index int
		dir   m.Path
	}

	var shards []shard

	self := path.Base(strings.TrimSuffix(string(dir), "/"))

	for _, obj := range objects {
		if !obj.IsDir() || obj.Name() == self {
			continue
		}

		suffix, ok := strings.CutPrefix(obj.Name(), ShardDirPrefix)
		if !ok {
			continue
		}

		index, err := strconv.Atoi(suffix)
		if err != nil || index < 0 {
			continue
		}

		shards = append(shards, shard{index: index, dir: ShardDir(dir, index)})
	}

	sort.Slice(shards, func(i, j int) bool { return shards[i].index < shards[j].index })

	out := make([]m.Path, 0, len(shards))
	for _, sh := range shards {
		out = append(out, sh.dir)
	}

	return out, nil
}

func decodeSnapshot(content []byte) (*m.Snapshot, error) {
	var envelope snapshotEnvelope
	if err := msgpack.Unmarshal(content, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	sum, err := checksum(envelope.Payload)
	if err != nil {
		return nil, err
	}

	if sum != envelope.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptSnapshot)
	}

	var snapshot m.Snapshot
	if err := msgpack.Unmarshal(envelope.Payload, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	if snapshot.Version != m.SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, snapshot.Version)
	}

	return &snapshot, nil
}

func checksum(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(checksumKey)
	if err != nil {
		return 0, fmt.Errorf("snapshot checksum: %w", err)
	}

	if _, err := hash.Write(data); err != nil {
		return 0, fmt.Errorf("snapshot checksum: %w", err)
	}

	return hash.Sum64(), nil
}

package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"covagg.dev/pkg/covagg/internal/adapter"
	"covagg.dev/pkg/covagg/internal/controller"
	m "covagg.dev/pkg/covagg/internal/model"
)

// CollectArgs contains the arguments for collecting coverage from profiles.
type CollectArgs struct {
	Profiles        []m.Path
	Reports         m.Path
	Expectations    m.Path
	Threads         int
	ShardIndex      int
	TotalShardCount int
}

// MergeArgs contains the arguments for merging sharded snapshots.
type MergeArgs struct {
	Reports m.Path
}

// ReportArgs contains the arguments for rendering a snapshot.
type ReportArgs struct {
	Reports m.Path
}

// Workflow drives collection, merging and reporting.
type Workflow interface {
	Collect(ctx context.Context, args CollectArgs) error
	Merge(ctx context.Context, args MergeArgs) error
	Report(ctx context.Context, args ReportArgs) error
}

// DriverFactory creates the driver owned by one collection worker.
type DriverFactory func() (adapter.QueueDriver, error)

// StoreFactory creates a store around driver, which is nil for stores that
// only merge and report.
type StoreFactory func(driver adapter.Driver) (*CoverageStore, error)

type workflow struct {
	adapter.ReportStore
	adapter.SourceFSAdapter
	controller.UI
	newDriver DriverFactory
	newStore  StoreFactory
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	newDriver DriverFactory,
	newStore StoreFactory,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		newDriver:       newDriver,
		newStore:        newStore,
	}
}

// Collect folds every profile of this shard into a snapshot. Each profile is
// one test named after the profile file. Workers own their store; the worker
// stores are merged once all of them finished.
func (w *workflow) Collect(ctx context.Context, args CollectArgs) error {
	profiles := shardProfiles(args.Profiles, args.ShardIndex, args.TotalShardCount)
	threads := max(1, min(args.Threads, len(profiles)))

	if err := w.Start(ctx, controller.WithCollectMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	w.DisplayCollectInfo(ctx, len(profiles), threads, args.ShardIndex, args.TotalShardCount)

	stores := make([]*CoverageStore, threads)
	group, groupCtx := errgroup.WithContext(ctx)

	for worker := range threads {
		group.Go(func() error {
			store, err := w.collectWorker(groupCtx, args, profiles, worker, threads)
			if err != nil {
				return err
			}

			stores[worker] = store

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		slog.Error("Failed to collect coverage", "error", err)
		return fmt.Errorf("collect: %w", err)
	}

	merged := stores[0]
	for _, store := range stores[1:] {
		merged.Merge(store)
	}

	if _, err := merged.Data(ctx); err != nil {
		return fmt.Errorf("add uncovered files: %w", err)
	}

	dir := args.Reports
	if args.TotalShardCount > 1 {
		dir = adapter.ShardDir(dir, args.ShardIndex)
	}

	if err := w.SaveSnapshot(ctx, dir, merged.Snapshot()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	slog.Info("Collected coverage", "profiles", len(profiles), "files", len(merged.RawData()), "dir", dir)

	return nil
}

func (w *workflow) collectWorker(ctx context.Context, args CollectArgs, profiles []m.Path, worker, threads int) (*CoverageStore, error) {
	driver, err := w.newDriver()
	if err != nil {
		return nil, fmt.Errorf("create driver: %w", err)
	}

	store, err := w.newStore(driver)
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	var plan map[string]PlannedTest
	if args.Expectations != "" {
		plan, err = LoadExpectations(ctx, w.SourceFSAdapter, store.lookup, args.Expectations)
		if err != nil {
			return nil, err
		}
	}

	for i := worker; i < len(profiles); i += threads {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		profile := profiles[i]
		test, opts := plannedTest(plan, profile)

		if err := store.Start(ctx, test, false); err != nil {
			return nil, err
		}

		driver.Queue(profile)

		_, err := store.Stop(ctx, opts)
		w.DisplayCollectedTest(ctx, test, err)

		if err != nil {
			if !isExpectationFailure(err) {
				return nil, err
			}

			slog.Warn("Discarded test contribution", "test", test.ID, "error", err)
		}
	}

	return store, nil
}

// Merge combines every shard snapshot below args.Reports into one snapshot
// at args.Reports. Shards are loaded concurrently and merged in shard order.
func (w *workflow) Merge(ctx context.Context, args MergeArgs) error {
	shards, err := w.ListShards(ctx, args.Reports)
	if err != nil {
		return fmt.Errorf("list shards: %w", err)
	}

	if len(shards) == 0 {
		return fmt.Errorf("no shards in %s: %w", args.Reports, ErrNotFound)
	}

	if err := w.Start(ctx, controller.WithMergeMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	w.DisplayMergeInfo(ctx, len(shards))

	snapshots := make([]*m.Snapshot, len(shards))
	group, groupCtx := errgroup.WithContext(ctx)

	for i, shard := range shards {
		group.Go(func() error {
			snapshot, err := w.LoadSnapshot(groupCtx, shard)
			if err != nil {
				return fmt.Errorf("load %s: %w", shard, err)
			}

			snapshots[i] = snapshot

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	merged, err := w.newStore(nil)
	if err != nil {
		return err
	}

	for _, snapshot := range snapshots {
		shard, err := w.newStore(nil)
		if err != nil {
			return err
		}

		shard.Restore(snapshot)
		merged.Merge(shard)
	}

	if err := w.SaveSnapshot(ctx, args.Reports, merged.Snapshot()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	slog.Info("Merged shards", "shards", len(shards), "files", len(merged.RawData()))

	return nil
}

// Report renders the snapshot stored at args.Reports.
func (w *workflow) Report(ctx context.Context, args ReportArgs) error {
	snapshot, err := w.LoadSnapshot(ctx, args.Reports)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	store, err := w.newStore(nil)
	if err != nil {
		return err
	}

	store.Restore(snapshot)

	tree, err := store.Report(ctx)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	if err := w.Start(ctx, controller.WithReportMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	return w.DisplayReport(ctx, tree.Summary())
}

func shardProfiles(profiles []m.Path, shardIndex, totalShardCount int) []m.Path {
	if totalShardCount <= 1 {
		return profiles
	}

	var shard []m.Path

	for i, profile := range profiles {
		if i%totalShardCount == shardIndex {
			shard = append(shard, profile)
		}
	}

	return shard
}

// plannedTest returns the test record and append options of profile. The
// test id is the profile file name without extension.
func plannedTest(plan map[string]PlannedTest, profile m.Path) (m.TestRecord, AppendOptions) {
	base := filepath.Base(string(profile))
	id := strings.TrimSuffix(base, filepath.Ext(base))

	if planned, ok := plan[id]; ok {
		return planned.Test, AppendOptions{Expectation: planned.Expectation}
	}

	return m.NewTestRecord(id), AppendOptions{}
}

func isExpectationFailure(err error) bool {
	return errors.Is(err, ErrMissingExpectation) ||
		errors.Is(err, ErrExpectationNotMet) ||
		errors.Is(err, ErrUnintentionallyCovered)
}

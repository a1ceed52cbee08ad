package domain

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"covagg.dev/pkg/covagg/internal/adapter"
	m "covagg.dev/pkg/covagg/internal/model"
)

// AppendOptions controls how a raw observation is folded into the store.
type AppendOptions struct {
	// PrimeOnly registers first-seen files without recording any test.
	PrimeOnly bool
	// Expectation declares the code the test is meant to exercise.
	Expectation *Expectation
	// IgnoreForceCovers exempts this contribution from WithForceCovers.
	IgnoreForceCovers bool
}

// CoverageStore accumulates line, branch and path coverage across test runs.
// A store is owned by one goroutine; parallel collection uses one store per
// worker combined afterwards with Merge.
type CoverageStore struct {
	driver   adapter.Driver
	filter   *Filter
	resolver *IgnoredLinesResolver
	lookup   *UnitLookup
	builder  *ReportBuilder

	data  m.CoverageData
	tests m.TestData

	current     *m.TestRecord
	bracketOpen bool
	initialized bool

	forceCovers             bool
	checkMissingCovers      bool
	checkUnintentional      bool
	checkUnexecuted         bool
	addUncoveredFiles       bool
	processUncoveredFiles   bool
	determineBranchCoverage bool
	checkDeadAndUnused      bool
	ancestors               map[string][]string
	allowedAncestors        map[string]bool

	report *Directory
}

// StoreOption configures a CoverageStore.
type StoreOption func(*CoverageStore)

// WithForceCovers requires every test to declare the code it covers.
func WithForceCovers(enabled bool) StoreOption {
	return func(s *CoverageStore) {
		s.forceCovers = enabled
	}
}

// WithCheckMissingCovers turns a missing expectation into ErrMissingExpectation
// instead of silently discarding the contribution.
func WithCheckMissingCovers(enabled bool) StoreOption {
	return func(s *CoverageStore) {
		s.checkMissingCovers = enabled
	}
}

// WithCheckUnintentionallyCovered rejects small tests that execute code
// outside their expectation.
func WithCheckUnintentionallyCovered(enabled bool) StoreOption {
	return func(s *CoverageStore) {
		s.checkUnintentional = enabled
	}
}

// WithCheckUnexecuted rejects tests whose declared code never ran.
func WithCheckUnexecuted(enabled bool) StoreOption {
	return func(s *CoverageStore) {
		s.checkUnexecuted = enabled
	}
}

// WithAddUncoveredFiles reports whitelisted files no test touched at 0% when
// data is read. Enabled by default.
func WithAddUncoveredFiles(enabled bool) StoreOption {
	return func(s *CoverageStore) {
		s.addUncoveredFiles = enabled
	}
}

// WithProcessUncoveredFiles primes the driver with the whitelisted files on
// the first Start.
func WithProcessUncoveredFiles(enabled bool) StoreOption {
	return func(s *CoverageStore) {
		s.processUncoveredFiles = enabled
	}
}

// WithBranchCoverage requests branch and path coverage from the driver.
func WithBranchCoverage(enabled bool) StoreOption {
	return func(s *CoverageStore) {
		s.determineBranchCoverage = enabled
	}
}

// WithAllowedAncestors exempts methods of types whose ancestor chain
// contains one of allowed from the unintentional coverage check. chains maps
// a type name to its ancestors.
func WithAllowedAncestors(chains map[string][]string, allowed ...string) StoreOption {
	return func(s *CoverageStore) {
		s.ancestors = chains
		for _, name := range allowed {
			s.allowedAncestors[name] = true
		}
	}
}

// NewCoverageStore constructs a store. driver may be nil for stores that
// only merge and report.
func NewCoverageStore(
	driver adapter.Driver,
	filter *Filter,
	resolver *IgnoredLinesResolver,
	lookup *UnitLookup,
	opts ...StoreOption,
) (*CoverageStore, error) {
	s := &CoverageStore{
		driver:             driver,
		filter:             filter,
		resolver:           resolver,
		lookup:             lookup,
		builder:            NewReportBuilder(resolver.sources),
		data:               m.CoverageData{},
		tests:              m.TestData{},
		addUncoveredFiles:  true,
		checkDeadAndUnused: true,
		allowedAncestors:   map[string]bool{},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.determineBranchCoverage {
		if s.driver == nil {
			return nil, fmt.Errorf("%w: branch coverage requires a driver", ErrConfiguration)
		}

		if err := s.driver.SetDetermineBranchCoverage(true); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
	}

	return s, nil
}

// Filter returns the filter owned by the store.
func (s *CoverageStore) Filter() *Filter {
	return s.filter
}

// Start opens a bracket for test. The first call primes the store with the
// uncovered whitelisted files when WithProcessUncoveredFiles is set.
func (s *CoverageStore) Start(ctx context.Context, test m.TestRecord, clear bool) error {
	if s.driver == nil {
		return fmt.Errorf("%w: no coverage driver available", ErrConfiguration)
	}

	if s.bracketOpen {
		return ErrBracketOpen
	}

	if clear {
		s.Clear()
	}

	if !s.initialized {
		if err := s.initialize(ctx); err != nil {
			return fmt.Errorf("process uncovered files: %w", err)
		}
	}

	s.current = &test

	if err := s.driver.SetDetermineBranchCoverage(s.determineBranchCoverage); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if err := s.driver.Start(s.checkDeadAndUnused); err != nil {
		return fmt.Errorf("start driver: %w", err)
	}

	s.bracketOpen = true

	return nil
}

// Stop closes the bracket, folds the observation into the store under the
// test given to Start and returns the raw observation.
func (s *CoverageStore) Stop(ctx context.Context, opts AppendOptions) (m.RawData, error) {
	if !s.bracketOpen {
		return nil, ErrNoBracket
	}

	s.bracketOpen = false

	raw, err := s.driver.Stop()
	if err != nil {
		return nil, fmt.Errorf("stop driver: %w", err)
	}

	if err := s.Append(ctx, raw, *s.current, opts); err != nil {
		return raw, err
	}

	return raw, nil
}

// Append folds raw into the store under test. On error the store is left
// exactly as it was.
func (s *CoverageStore) Append(ctx context.Context, raw m.RawData, test m.TestRecord, opts AppendOptions) error {
	if test.ID == "" {
		return fmt.Errorf("%w: empty test id", ErrInvalidInput)
	}

	data := s.applyFilter(raw)
	s.applyIgnoredLines(ctx, data)

	work := s.seedFirstSeen(data)

	if opts.PrimeOnly {
		s.commit(work, nil)
		return nil
	}

	if test.ID != m.UncoveredFilesTestID {
		var err error

		data, err = s.applyExpectation(ctx, data, test, opts)
		if err != nil {
			return fmt.Errorf("append %s: %w", test.ID, err)
		}
	}

	if len(data) == 0 {
		s.commit(work, nil)
		return nil
	}

	for path, file := range data {
		if !s.filter.IsFile(path) {
			continue
		}

		record := work[path]

		for line, status := range file.Lines {
			if status != m.LineExecuted {
				continue
			}

			rec := record.Lines[line]
			if !rec.Executable() {
				rec = m.RecordedLine()
				record.Lines[line] = rec
			}

			rec.PathCovered = true
			rec.AddTest(test.ID)
		}

		for fn, function := range file.Functions {
			for id, branch := range function.Branches {
				if branch.Hit == 1 {
					b := record.Branch(fn, id)
					b.Hit = max(b.Hit, branch.Hit)
					b.AddTest(test.ID)
				}
			}

			for id, observed := range function.Paths {
				p := record.Path(fn, id)
				p.Hit = max(p.Hit, observed.Hit)
			}
		}
	}

	s.commit(work, &test)

	return nil
}

// applyFilter returns a copy of raw without the filtered files.
func (s *CoverageStore) applyFilter(raw m.RawData) m.RawData {
	data := make(m.RawData, len(raw))

	for path, file := range raw {
		if s.filter.IsFiltered(path) {
			continue
		}

		data[path] = file
	}

	return data.Clone()
}

func (s *CoverageStore) applyIgnoredLines(ctx context.Context, data m.RawData) {
	for path, file := range data {
		if !s.filter.IsFile(path) {
			continue
		}

		ignored, err := s.resolver.IgnoredLines(ctx, path)
		if err != nil {
			slog.Warn("Failed to resolve ignored lines", "path", path, "error", err)
			continue
		}

		for _, line := range ignored {
			delete(file.Lines, line)
		}
	}
}

// seedFirstSeen returns the working copies of every file touched by data:
// clones of known files and freshly seeded records for new ones.
func (s *CoverageStore) seedFirstSeen(data m.RawData) map[m.Path]*m.FileCoverage {
	work := make(map[m.Path]*m.FileCoverage, len(data))

	for path, file := range data {
		if existing, ok := s.data[path]; ok {
			work[path] = existing.Clone()
			continue
		}

		if !s.filter.IsFile(path) {
			continue
		}

		record := m.NewFileCoverage()

		for line, status := range file.Lines {
			if status == m.LineNotExecutable {
				record.Lines[line] = m.NotExecutableLine()
			} else {
				record.Lines[line] = m.RecordedLine()
			}
		}

		for fn, function := range file.Functions {
			for id, p := range function.Paths {
				record.Path(fn, id).Hit = p.Hit
			}

			for id, branch := range function.Branches {
				b := record.Branch(fn, id)
				b.Hit = max(b.Hit, branch.Hit)
				b.LineStart = branch.LineStart
				b.LineEnd = branch.LineEnd

				if branch.Hit == 0 {
					continue
				}

				for line := branch.LineStart; line < branch.LineEnd; line++ {
					if rec := record.Lines[line]; rec.Executable() {
						rec.PathCovered = true
					}
				}
			}
		}

		work[path] = record
	}

	return work
}

func (s *CoverageStore) commit(work map[m.Path]*m.FileCoverage, test *m.TestRecord) {
	maps.Copy(s.data, work)

	if test != nil {
		s.tests[test.ID] = *test
	}

	s.report = nil
}

// Data returns the accumulated coverage. When WithAddUncoveredFiles is on,
// whitelisted files that were never observed are first added at 0%.
// The returned map is owned by the store and must not be modified; use
// SetData to replace it.
func (s *CoverageStore) Data(ctx context.Context) (m.CoverageData, error) {
	if s.addUncoveredFiles {
		if err := s.addUncoveredFilesFromWhitelist(ctx); err != nil {
			return nil, err
		}
	}

	return s.data, nil
}

// RawData returns the accumulated coverage without the uncovered files
// baseline. Like Data, the returned map must not be modified.
func (s *CoverageStore) RawData() m.CoverageData {
	return s.data
}

// SetData replaces the accumulated coverage.
func (s *CoverageStore) SetData(data m.CoverageData) {
	s.data = data
	s.report = nil
}

// Tests returns the tests that contributed coverage.
func (s *CoverageStore) Tests() m.TestData {
	return s.tests
}

// SetTests replaces the recorded tests.
func (s *CoverageStore) SetTests(tests m.TestData) {
	s.tests = tests
	s.report = nil
}

// Clear drops all accumulated state.
func (s *CoverageStore) Clear() {
	s.current = nil
	s.data = m.CoverageData{}
	s.tests = m.TestData{}
	s.report = nil
}

// Snapshot returns a deep copy of the store state in its persisted form.
func (s *CoverageStore) Snapshot() *m.Snapshot {
	return &m.Snapshot{
		Version:   m.SnapshotVersion,
		Whitelist: s.filter.Whitelist(),
		Data:      s.data.Clone(),
		Tests:     maps.Clone(s.tests),
	}
}

// Restore replaces the store state with snapshot. The snapshot whitelist is
// added to the filter.
func (s *CoverageStore) Restore(snapshot *m.Snapshot) {
	s.filter.AddFilesToWhitelist(snapshot.Whitelist)

	s.data = snapshot.Data.Clone()
	if s.data == nil {
		s.data = m.CoverageData{}
	}

	s.tests = maps.Clone(snapshot.Tests)
	if s.tests == nil {
		s.tests = m.TestData{}
	}

	s.report = nil
}

// Report returns the report tree of the accumulated data. The tree is cached
// until the store changes.
func (s *CoverageStore) Report(ctx context.Context) (*Directory, error) {
	if s.report != nil {
		return s.report, nil
	}

	data, err := s.Data(ctx)
	if err != nil {
		return nil, err
	}

	report, err := s.builder.Build(ctx, data, s.tests)
	if err != nil {
		return nil, err
	}

	s.report = report

	return report, nil
}

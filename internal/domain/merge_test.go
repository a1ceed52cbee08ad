package domain_test

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"covagg.dev/pkg/covagg/internal/domain"
	m "covagg.dev/pkg/covagg/internal/model"
)

func storeWith(t *testing.T, f *fixture, data m.CoverageData, tests ...string) *domain.CoverageStore {
	t.Helper()

	store := f.store(t, nil, nil)

	testData := m.TestData{}
	for _, id := range tests {
		testData[id] = m.NewTestRecord(id)
	}

	store.Restore(&m.Snapshot{Version: m.SnapshotVersion, Data: data, Tests: testData})

	return store
}

func recorded(pathCovered bool, tests ...string) *m.LineRecord {
	rec := m.RecordedLine()
	rec.PathCovered = pathCovered
	rec.Tests = append(rec.Tests, tests...)

	return rec
}

func TestCoverageStore_Merge(t *testing.T) {
	const path = m.Path("/src/a.go")

	tests := []struct {
		name   string
		mine   *m.LineRecord
		theirs *m.LineRecord
		want   *m.LineRecord
	}{
		{"absent takes theirs", nil, recorded(true, "T2"), recorded(true, "T2")},
		{"theirs absent keeps mine", recorded(true, "T1"), nil, recorded(true, "T1")},
		{"not executable beats empty", recorded(false), m.NotExecutableLine(), m.NotExecutableLine()},
		{"covered beats not executable", m.NotExecutableLine(), recorded(true, "T2"), recorded(true, "T2")},
		{"covered beats empty", recorded(false), recorded(true, "T2"), recorded(true, "T2")},
		{"equal covered unions tests", recorded(false, "T1"), recorded(true, "T1", "T2"), recorded(true, "T1", "T2")},
		{"equal empty ors path coverage", recorded(false), recorded(true), recorded(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			mine := m.NewFileCoverage()
			if tt.mine != nil {
				mine.Lines[1] = tt.mine
			}

			theirs := m.NewFileCoverage()
			if tt.theirs != nil {
				theirs.Lines[1] = tt.theirs
			}

			store := storeWith(t, f, m.CoverageData{path: mine})
			other := storeWith(t, f, m.CoverageData{path: theirs})

			store.Merge(other)

			assert.Equal(t, tt.want, store.RawData()[path].Lines[1])
		})
	}
}

func TestCoverageStore_MergeFiles(t *testing.T) {
	f := newFixture(t)
	a := f.file(t, "a.go", 3)
	b := f.file(t, "b.go", 3)
	excluded := f.file(t, "excluded.go", 3)

	theirs := m.CoverageData{
		b:        {Lines: map[int]*m.LineRecord{1: recorded(true, "T2")}},
		excluded: {Lines: map[int]*m.LineRecord{1: recorded(true, "T2")}},
	}

	store := storeWith(t, f, m.CoverageData{a: {Lines: map[int]*m.LineRecord{1: recorded(true, "T1")}}}, "T1")
	require.NoError(t, store.Filter().AddFileToBlacklist(excluded))

	other := f.store(t, nil, []m.Path{b})
	other.Restore(&m.Snapshot{Data: theirs, Tests: m.TestData{"T2": m.NewTestRecord("T2")}})

	store.Merge(other)

	assert.Contains(t, store.RawData(), a)
	assert.Contains(t, store.RawData(), b)
	assert.NotContains(t, store.RawData(), excluded)
	assert.Contains(t, store.Tests(), "T1")
	assert.Contains(t, store.Tests(), "T2")
	assert.Contains(t, store.Filter().Whitelist(), b)

	theirs[b].Lines[1].Tests[0] = "changed"
	assert.Equal(t, []string{"T2"}, store.RawData()[b].Lines[1].Tests)
}

func TestCoverageStore_MergeBranches(t *testing.T) {
	const path = m.Path("/src/a.go")

	f := newFixture(t)

	mine := m.NewFileCoverage()
	*mine.Branch("Calc.Add", 0) = m.BranchRecord{Hit: 0, Tests: []string{}}
	mine.Path("Calc.Add", 0).Hit = 1

	theirs := m.NewFileCoverage()
	*theirs.Branch("Calc.Add", 0) = m.BranchRecord{Hit: 1, LineStart: 3, LineEnd: 5, Tests: []string{"T2"}}
	*theirs.Branch("Calc.Add", 1) = m.BranchRecord{Hit: 0, LineStart: 6, LineEnd: 7, Tests: []string{}}
	theirs.Path("Calc.Add", 0).Hit = 0

	store := storeWith(t, f, m.CoverageData{path: mine})
	store.Merge(storeWith(t, f, m.CoverageData{path: theirs}))

	merged := store.RawData()[path]
	assert.Equal(t, &m.BranchRecord{Hit: 1, LineStart: 3, LineEnd: 5, Tests: []string{"T2"}}, merged.Branches["Calc.Add"][0])
	assert.Equal(t, 0, merged.Branches["Calc.Add"][1].Hit)
	assert.Equal(t, 1, merged.Paths["Calc.Add"][0].Hit)
}

var mergeTestIDs = []string{"T1", "T2", "T3"}

// lineGen draws an absent, not executable or recorded line.
func lineGen() *rapid.Generator[*m.LineRecord] {
	return rapid.Custom(func(t *rapid.T) *m.LineRecord {
		switch rapid.IntRange(0, 2).Draw(t, "kind") {
		case 0:
			return nil
		case 1:
			return m.NotExecutableLine()
		default:
			tests := rapid.SliceOfDistinct(rapid.SampledFrom(mergeTestIDs), rapid.ID[string]).Draw(t, "tests")
			return recorded(rapid.Bool().Draw(t, "covered"), tests...)
		}
	})
}

func coverageGen() *rapid.Generator[m.CoverageData] {
	return rapid.Custom(func(t *rapid.T) m.CoverageData {
		file := m.NewFileCoverage()

		for line := 1; line <= 4; line++ {
			if rec := lineGen().Draw(t, "line"); rec != nil {
				file.Lines[line] = rec
			}
		}

		return m.CoverageData{"/src/a.go": file}
	})
}

// normalized returns data with sorted test lists so that merges in different
// orders compare equal.
func normalized(data m.CoverageData) m.CoverageData {
	out := data.Clone()

	for _, file := range out {
		for _, rec := range file.Lines {
			slices.Sort(rec.Tests)
		}
	}

	return out
}

func TestCoverageStore_MergeProperties(t *testing.T) {
	f := newFixture(t)

	t.Run("idempotent", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			data := coverageGen().Draw(rt, "data")

			store := storeWith(t, f, data)
			store.Merge(storeWith(t, f, data))

			if !assert.ObjectsAreEqual(normalized(data), normalized(store.RawData())) {
				rt.Fatalf("merge with itself changed data: %v", store.RawData())
			}
		})
	})

	t.Run("associative", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			a := coverageGen().Draw(rt, "a")
			b := coverageGen().Draw(rt, "b")
			c := coverageGen().Draw(rt, "c")

			left := storeWith(t, f, a)
			left.Merge(storeWith(t, f, b))
			left.Merge(storeWith(t, f, c))

			bc := storeWith(t, f, b)
			bc.Merge(storeWith(t, f, c))

			right := storeWith(t, f, a)
			right.Merge(bc)

			if !assert.ObjectsAreEqual(normalized(left.RawData()), normalized(right.RawData())) {
				rt.Fatalf("(a+b)+c = %v, a+(b+c) = %v", left.RawData(), right.RawData())
			}
		})
	})

	t.Run("other is not modified", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			a := coverageGen().Draw(rt, "a")
			b := coverageGen().Draw(rt, "b")

			other := storeWith(t, f, b)
			want := other.RawData().Clone()

			storeWith(t, f, a).Merge(other)

			if !assert.ObjectsAreEqual(want, other.RawData()) {
				rt.Fatalf("other changed to %v", other.RawData())
			}
		})
	})
}

func TestCoverageStore_MergeReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.file(t, "a.go", 4)

	first := f.store(t, nil, []m.Path{a})
	require.NoError(t, first.Append(ctx, m.RawData{a: rawFile(map[int]m.LineStatus{
		1: m.LineExecuted, 2: m.LineNotExecuted, 3: m.LineNotExecuted, 4: m.LineNotExecuted,
	})}, m.NewTestRecord("T1"), domain.AppendOptions{}))

	second := f.store(t, nil, []m.Path{a})
	require.NoError(t, second.Append(ctx, m.RawData{a: rawFile(map[int]m.LineStatus{
		1: m.LineNotExecuted, 2: m.LineExecuted, 3: m.LineNotExecuted, 4: m.LineNotExecuted,
	})}, m.NewTestRecord("T2"), domain.AppendOptions{}))

	first.Merge(second)

	report, err := first.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Totals.ExecutableLines)
	assert.Equal(t, 2, report.Totals.ExecutedLines)
	assert.Len(t, report.Tests(), 2)
}

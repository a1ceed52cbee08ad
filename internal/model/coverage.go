package model

import "slices"

// LineKind tags a line held in a FileCoverage record. Lines that are absent
// from the record are excluded from accounting.
type LineKind uint8

const (
	// LineKindNotExecutable is the null marker for lines that can never run.
	LineKindNotExecutable LineKind = iota + 1
	// LineKindRecorded is an executable line with its covering tests.
	LineKindRecorded
)

// LineRecord is the accumulated state of one line.
type LineRecord struct {
	Kind        LineKind `msgpack:"k"`
	PathCovered bool     `msgpack:"c"`
	Tests       []string `msgpack:"t"`
}

// NotExecutableLine returns the null marker record.
func NotExecutableLine() *LineRecord {
	return &LineRecord{Kind: LineKindNotExecutable}
}

// RecordedLine returns an executable line with no covering tests yet.
func RecordedLine() *LineRecord {
	return &LineRecord{Kind: LineKindRecorded, Tests: []string{}}
}

// Executable reports whether the line counts towards the executable total.
func (l *LineRecord) Executable() bool {
	return l != nil && l.Kind == LineKindRecorded
}

// AddTest appends id unless it is already present.
func (l *LineRecord) AddTest(id string) {
	if !slices.Contains(l.Tests, id) {
		l.Tests = append(l.Tests, id)
	}
}

// Clone returns a deep copy of the record.
func (l *LineRecord) Clone() *LineRecord {
	if l == nil {
		return nil
	}

	cp := *l
	if l.Tests != nil {
		cp.Tests = slices.Clone(l.Tests)
	}

	return &cp
}

// BranchRecord is the accumulated state of one branch.
type BranchRecord struct {
	Hit       int      `msgpack:"h"`
	LineStart int      `msgpack:"s"`
	LineEnd   int      `msgpack:"e"`
	Tests     []string `msgpack:"t"`
}

// AddTest appends id unless it is already present.
func (b *BranchRecord) AddTest(id string) {
	if !slices.Contains(b.Tests, id) {
		b.Tests = append(b.Tests, id)
	}
}

// PathRecord is the accumulated state of one execution path.
type PathRecord struct {
	Hit int `msgpack:"h"`
}

// FileCoverage holds everything accumulated for a single file.
type FileCoverage struct {
	Lines    map[int]*LineRecord              `msgpack:"lines"`
	Branches map[string]map[int]*BranchRecord `msgpack:"branches"`
	Paths    map[string]map[int]*PathRecord   `msgpack:"paths"`
}

// NewFileCoverage returns an empty record.
func NewFileCoverage() *FileCoverage {
	return &FileCoverage{
		Lines:    map[int]*LineRecord{},
		Branches: map[string]map[int]*BranchRecord{},
		Paths:    map[string]map[int]*PathRecord{},
	}
}

// Branch returns the branch record, creating it when missing.
func (f *FileCoverage) Branch(function string, id int) *BranchRecord {
	branches, ok := f.Branches[function]
	if !ok {
		branches = map[int]*BranchRecord{}
		f.Branches[function] = branches
	}

	b, ok := branches[id]
	if !ok {
		b = &BranchRecord{Tests: []string{}}
		branches[id] = b
	}

	return b
}

// Path returns the path record, creating it when missing.
func (f *FileCoverage) Path(function string, id int) *PathRecord {
	paths, ok := f.Paths[function]
	if !ok {
		paths = map[int]*PathRecord{}
		f.Paths[function] = paths
	}

	p, ok := paths[id]
	if !ok {
		p = &PathRecord{}
		paths[id] = p
	}

	return p
}

// Clone returns a deep copy of the record.
func (f *FileCoverage) Clone() *FileCoverage {
	cp := NewFileCoverage()

	for line, rec := range f.Lines {
		cp.Lines[line] = rec.Clone()
	}

	for fn, branches := range f.Branches {
		cpBranches := make(map[int]*BranchRecord, len(branches))
		for id, b := range branches {
			cb := *b
			cb.Tests = slices.Clone(b.Tests)
			cpBranches[id] = &cb
		}

		cp.Branches[fn] = cpBranches
	}

	for fn, paths := range f.Paths {
		cpPaths := make(map[int]*PathRecord, len(paths))
		for id, p := range paths {
			cpPath := *p
			cpPaths[id] = &cpPath
		}

		cp.Paths[fn] = cpPaths
	}

	return cp
}

// CoverageData maps file paths to their accumulated records.
type CoverageData map[Path]*FileCoverage

// Clone returns a deep copy of the data.
func (d CoverageData) Clone() CoverageData {
	out := make(CoverageData, len(d))
	for path, file := range d {
		out[path] = file.Clone()
	}

	return out
}

// LineSet maps files to line numbers. It carries the covers/uses
// expectations of a test.
type LineSet map[Path][]int

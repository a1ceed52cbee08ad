package model

// UnitStat holds the computed statistics of one class, trait, method or function.
type UnitStat struct {
	Kind               UnitKind `yaml:"kind"`
	Name               string   `yaml:"name"`
	Parent             string   `yaml:"parent,omitempty"`
	StartLine          int      `yaml:"start_line"`
	EndLine            int      `yaml:"end_line"`
	ExecutableLines    int      `yaml:"executable_lines"`
	ExecutedLines      int      `yaml:"executed_lines"`
	ExecutablePaths    int      `yaml:"executable_paths"`
	ExecutedPaths      int      `yaml:"executed_paths"`
	ExecutableBranches int      `yaml:"executable_branches"`
	ExecutedBranches   int      `yaml:"executed_branches"`
	CCN                int      `yaml:"ccn"`
	Coverage           float64  `yaml:"coverage"`
	CRAP               string   `yaml:"crap"`
}

// FullyCovered reports whether the unit has executable lines and all of them ran.
func (u UnitStat) FullyCovered() bool {
	return u.ExecutableLines > 0 && u.ExecutedLines == u.ExecutableLines
}

// SnapshotVersion is the current persisted snapshot format.
const SnapshotVersion = 1

// Snapshot is the persisted state of a coverage store used for
// cross-process merges.
type Snapshot struct {
	Version   int          `msgpack:"version"`
	Whitelist []Path       `msgpack:"whitelist"`
	Data      CoverageData `msgpack:"data"`
	Tests     TestData     `msgpack:"tests"`
}

// Percent returns a as a percentage of b. An empty denominator counts as
// fully covered.
func Percent(a, b int) float64 {
	if b == 0 {
		return 100.0
	}

	return float64(a) / float64(b) * 100
}

// Totals are the summed counters of a report node. Percentages are always
// derived from the counts.
type Totals struct {
	ExecutableLines int         `yaml:"executable_lines"`
	ExecutedLines   int         `yaml:"executed_lines"`
	Classes         int         `yaml:"classes"`
	TestedClasses   int         `yaml:"tested_classes"`
	Traits          int         `yaml:"traits"`
	TestedTraits    int         `yaml:"tested_traits"`
	Methods         int         `yaml:"methods"`
	TestedMethods   int         `yaml:"tested_methods"`
	Functions       int         `yaml:"functions"`
	TestedFunctions int         `yaml:"tested_functions"`
	Branches        int         `yaml:"branches"`
	TestedBranches  int         `yaml:"tested_branches"`
	Paths           int         `yaml:"paths"`
	TestedPaths     int         `yaml:"tested_paths"`
	LinesOfCode     LinesOfCode `yaml:"lines_of_code"`
}

// Add sums o into t.
func (t *Totals) Add(o Totals) {
	t.ExecutableLines += o.ExecutableLines
	t.ExecutedLines += o.ExecutedLines
	t.Classes += o.Classes
	t.TestedClasses += o.TestedClasses
	t.Traits += o.Traits
	t.TestedTraits += o.TestedTraits
	t.Methods += o.Methods
	t.TestedMethods += o.TestedMethods
	t.Functions += o.Functions
	t.TestedFunctions += o.TestedFunctions
	t.Branches += o.Branches
	t.TestedBranches += o.TestedBranches
	t.Paths += o.Paths
	t.TestedPaths += o.TestedPaths
	t.LinesOfCode.LOC += o.LinesOfCode.LOC
	t.LinesOfCode.CLOC += o.LinesOfCode.CLOC
	t.LinesOfCode.NCLOC += o.LinesOfCode.NCLOC
}

// LineCoverage returns the executed share of executable lines.
func (t Totals) LineCoverage() float64 {
	return Percent(t.ExecutedLines, t.ExecutableLines)
}

// BranchCoverage returns the hit share of branches.
func (t Totals) BranchCoverage() float64 {
	return Percent(t.TestedBranches, t.Branches)
}

// PathCoverage returns the hit share of paths.
func (t Totals) PathCoverage() float64 {
	return Percent(t.TestedPaths, t.Paths)
}

// ClassCoverage returns the share of fully tested classes and traits.
func (t Totals) ClassCoverage() float64 {
	return Percent(t.TestedClasses+t.TestedTraits, t.Classes+t.Traits)
}

// MethodCoverage returns the share of fully tested methods.
func (t Totals) MethodCoverage() float64 {
	return Percent(t.TestedMethods, t.Methods)
}

// FunctionCoverage returns the share of tested functions.
func (t Totals) FunctionCoverage() float64 {
	return Percent(t.TestedFunctions, t.Functions)
}

// FileSummary is the flattened view of one report file handed to renderers.
type FileSummary struct {
	Name   string     `yaml:"name"`
	Path   Path       `yaml:"path"`
	Totals Totals     `yaml:"totals"`
	Units  []UnitStat `yaml:"units,omitempty"`
}

// ReportSummary is the flattened report tree handed to renderers. Files are
// in tree order and named relative to Root.
type ReportSummary struct {
	Root   Path          `yaml:"root"`
	Tests  int           `yaml:"tests"`
	Totals Totals        `yaml:"totals"`
	Files  []FileSummary `yaml:"files"`
}

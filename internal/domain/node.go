package domain

import (
	"cmp"
	"slices"

	m "covagg.dev/pkg/covagg/internal/model"
)

// File is a leaf of the report tree.
type File struct {
	Name   string
	Path   m.Path
	Totals m.Totals

	coverage *m.FileCoverage
	tests    m.TestData

	// units is the arena of unit statistics; classes, traits and functions
	// index into it. Methods follow their class or trait contiguously.
	units     []m.UnitStat
	classes   []uint32
	traits    []uint32
	functions []uint32
	// lineUnits maps a line number to the units containing it. Built once.
	lineUnits [][]uint32
}

// Coverage returns the accumulated record of the file.
func (f *File) Coverage() *m.FileCoverage {
	return f.coverage
}

// Tests returns the tests known to the report.
func (f *File) Tests() m.TestData {
	return f.tests
}

// Classes returns the class statistics of the file.
func (f *File) Classes() []m.UnitStat {
	return f.pick(f.classes)
}

// Traits returns the trait statistics of the file.
func (f *File) Traits() []m.UnitStat {
	return f.pick(f.traits)
}

// Functions returns the function statistics of the file.
func (f *File) Functions() []m.UnitStat {
	return f.pick(f.functions)
}

// Methods returns the method statistics of the named class or trait.
func (f *File) Methods(parent string) []m.UnitStat {
	var methods []m.UnitStat

	for _, u := range f.units {
		if u.Kind == m.UnitMethod && u.Parent == parent {
			methods = append(methods, u)
		}
	}

	return methods
}

// UnitsAt returns the statistics of every unit containing line.
func (f *File) UnitsAt(line int) []m.UnitStat {
	if line <= 0 || line >= len(f.lineUnits) {
		return nil
	}

	return f.pick(f.lineUnits[line])
}

func (f *File) pick(indices []uint32) []m.UnitStat {
	out := make([]m.UnitStat, 0, len(indices))
	for _, i := range indices {
		out = append(out, f.units[i])
	}

	return out
}

// Directory is an inner node of the report tree.
type Directory struct {
	Name        string
	Path        m.Path
	Totals      m.Totals
	Directories []*Directory
	Files       []*File

	tests m.TestData
}

// Tests returns the tests known to the report.
func (d *Directory) Tests() m.TestData {
	return d.tests
}

// AllFiles returns every file below d, depth first in tree order.
func (d *Directory) AllFiles() []*File {
	files := slices.Clone(d.Files)

	for _, child := range d.Directories {
		files = append(files, child.AllFiles()...)
	}

	return files
}

// summarize sorts the children and sums their totals recursively.
func (d *Directory) summarize() {
	slices.SortFunc(d.Directories, func(a, b *Directory) int {
		return cmp.Compare(a.Name, b.Name)
	})
	slices.SortFunc(d.Files, func(a, b *File) int {
		return cmp.Compare(a.Name, b.Name)
	})

	d.Totals = m.Totals{}

	for _, child := range d.Directories {
		child.summarize()
		d.Totals.Add(child.Totals)
	}

	for _, file := range d.Files {
		d.Totals.Add(file.Totals)
	}
}

// Summary flattens the tree for renderers. File names are relative to d.
func (d *Directory) Summary() m.ReportSummary {
	summary := m.ReportSummary{Root: d.Path, Tests: len(d.tests), Totals: d.Totals}
	d.collect("", &summary)

	return summary
}

func (d *Directory) collect(prefix string, summary *m.ReportSummary) {
	for _, child := range d.Directories {
		child.collect(prefix+child.Name+"/", summary)
	}

	for _, file := range d.Files {
		summary.Files = append(summary.Files, m.FileSummary{
			Name:   prefix + file.Name,
			Path:   file.Path,
			Totals: file.Totals,
			Units:  slices.Clone(file.units),
		})
	}
}

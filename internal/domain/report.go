package domain

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"fortio.org/safecast"

	m "covagg.dev/pkg/covagg/internal/model"
)

// ReportBuilder turns accumulated coverage into a report tree annotated with
// per-unit statistics.
type ReportBuilder struct {
	sources *SourceIndex
}

// NewReportBuilder constructs a ReportBuilder reading sources through the index.
func NewReportBuilder(sources *SourceIndex) *ReportBuilder {
	return &ReportBuilder{sources: sources}
}

// Build returns the report tree of data. The common directory of all files
// becomes the root; children are listed directories first, then files, each
// sorted by name.
func (b *ReportBuilder) Build(ctx context.Context, data m.CoverageData, tests m.TestData) (*Directory, error) {
	paths := slices.Sorted(maps.Keys(data))
	prefix := commonDir(paths)

	root := &Directory{Name: filepath.Base(string(prefix)), Path: prefix, tests: tests}
	dirs := map[string]*Directory{"": root}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file, err := b.file(ctx, path, data[path], tests)
		if err != nil {
			return nil, err
		}

		rel, err := filepath.Rel(string(prefix), string(path))
		if err != nil || prefix == "" {
			rel = string(path)
		}

		parts := strings.Split(filepath.ToSlash(rel), "/")
		file.Name = parts[len(parts)-1]

		parent := root
		key := ""

		for _, part := range parts[:len(parts)-1] {
			key += "/" + part

			dir, ok := dirs[key]
			if !ok {
				dir = &Directory{Name: part, Path: m.Path(filepath.Join(string(parent.Path), part))}
				dirs[key] = dir
				parent.Directories = append(parent.Directories, dir)
			}

			parent = dir
		}

		parent.Files = append(parent.Files, file)
	}

	root.summarize()

	slog.Debug("Built coverage report", "files", len(paths), "root", root.Path)

	return root, nil
}

func (b *ReportBuilder) file(ctx context.Context, path m.Path, record *m.FileCoverage, tests m.TestData) (*File, error) {
	structure, err := b.sources.Structure(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		slog.Warn("Source unavailable, reporting lines only", "path", path, "error", err)

		structure = &m.FileStructure{}
	}

	loc := structure.LinesOfCode
	if loc.LOC == 0 {
		for line := range record.Lines {
			loc.LOC = max(loc.LOC, line)
		}

		loc.NCLOC = loc.LOC
	}

	f := &File{
		Path:      path,
		coverage:  record,
		tests:     tests,
		lineUnits: make([][]uint32, loc.LOC+1),
	}
	f.Totals.LinesOfCode = loc

	members := map[uint32][]uint32{}

	for _, group := range []struct {
		units []m.CodeUnit
		kind  m.UnitKind
		into  *[]uint32
	}{
		{structure.Classes, m.UnitClass, &f.classes},
		{structure.Traits, m.UnitTrait, &f.traits},
	} {
		for _, class := range group.units {
			idx, err := f.addUnit(m.UnitStat{Kind: group.kind, Name: class.Name, StartLine: class.StartLine, EndLine: class.EndLine})
			if err != nil {
				return nil, err
			}

			*group.into = append(*group.into, idx)

			for _, method := range class.Methods {
				if method.Synthetic {
					continue
				}

				midx, err := f.addUnit(m.UnitStat{
					Kind:      m.UnitMethod,
					Name:      method.Name,
					Parent:    class.Name,
					StartLine: method.StartLine,
					EndLine:   method.EndLine,
					CCN:       method.CCN,
				})
				if err != nil {
					return nil, err
				}

				members[idx] = append(members[idx], midx)
				f.attribute(method.StartLine, method.EndLine, idx, midx)
			}
		}
	}

	for _, fn := range structure.Functions {
		if fn.Synthetic {
			continue
		}

		idx, err := f.addUnit(m.UnitStat{Kind: m.UnitFunction, Name: fn.Name, StartLine: fn.StartLine, EndLine: fn.EndLine, CCN: fn.CCN})
		if err != nil {
			return nil, err
		}

		f.functions = append(f.functions, idx)
		f.attribute(fn.StartLine, fn.EndLine, idx)
	}

	f.countLines()
	f.aggregate(members)

	return f, nil
}

func (f *File) addUnit(stat m.UnitStat) (uint32, error) {
	idx, err := safecast.Conv[uint32](len(f.units))
	if err != nil {
		return 0, fmt.Errorf("unit index of %s: %w", f.Path, err)
	}

	f.units = append(f.units, stat)

	return idx, nil
}

// attribute assigns every line of [start, end] to units. A later unit
// replaces an earlier one on the same line.
func (f *File) attribute(start, end int, units ...uint32) {
	for line := max(start, 1); line <= end && line < len(f.lineUnits); line++ {
		f.lineUnits[line] = units
	}
}

func (f *File) countLines() {
	for line := 1; line < len(f.lineUnits); line++ {
		rec := f.coverage.Lines[line]
		if !rec.Executable() {
			continue
		}

		f.Totals.ExecutableLines++
		for _, idx := range f.lineUnits[line] {
			f.units[idx].ExecutableLines++
		}

		if rec.PathCovered {
			f.Totals.ExecutedLines++
			for _, idx := range f.lineUnits[line] {
				f.units[idx].ExecutedLines++
			}
		}
	}
}

func (f *File) aggregate(members map[uint32][]uint32) {
	for _, classes := range [][]uint32{f.classes, f.traits} {
		for _, idx := range classes {
			class := &f.units[idx]
			counted := false

			for _, midx := range members[idx] {
				method := &f.units[midx]
				f.applyBranches(method, class.Name+"."+method.Name)
				finish(method)

				class.CCN += method.CCN
				class.ExecutablePaths += method.ExecutablePaths
				class.ExecutedPaths += method.ExecutedPaths
				class.ExecutableBranches += method.ExecutableBranches
				class.ExecutedBranches += method.ExecutedBranches

				if method.ExecutableLines > 0 {
					f.Totals.Methods++
					counted = true
				}

				if method.FullyCovered() {
					f.Totals.TestedMethods++
				}
			}

			finish(class)

			switch {
			case class.Kind == m.UnitTrait && counted:
				f.Totals.Traits++
			case counted:
				f.Totals.Classes++
			}

			if class.FullyCovered() {
				if class.Kind == m.UnitTrait {
					f.Totals.TestedTraits++
				} else {
					f.Totals.TestedClasses++
				}
			}
		}
	}

	for _, idx := range f.functions {
		fn := &f.units[idx]
		f.applyBranches(fn, fn.Name)
		finish(fn)

		// A function without executable lines is at 100% and counts as tested.
		f.Totals.Functions++
		if fn.ExecutedLines == fn.ExecutableLines {
			f.Totals.TestedFunctions++
		}
	}

	for _, branches := range f.coverage.Branches {
		for _, branch := range branches {
			f.Totals.Branches++
			if branch.Hit > 0 {
				f.Totals.TestedBranches++
			}
		}
	}

	for _, paths := range f.coverage.Paths {
		for _, path := range paths {
			f.Totals.Paths++
			if path.Hit > 0 {
				f.Totals.TestedPaths++
			}
		}
	}
}

// applyBranches copies the branch and path counts recorded for function key.
func (f *File) applyBranches(unit *m.UnitStat, key string) {
	for _, branch := range f.coverage.Branches[key] {
		unit.ExecutableBranches++
		if branch.Hit > 0 {
			unit.ExecutedBranches++
		}
	}

	for _, path := range f.coverage.Paths[key] {
		unit.ExecutablePaths++
		if path.Hit > 0 {
			unit.ExecutedPaths++
		}
	}
}

func finish(unit *m.UnitStat) {
	unit.Coverage = m.Percent(unit.ExecutedLines, unit.ExecutableLines)
	unit.CRAP = CRAP(unit.CCN, unit.Coverage)
}

// commonDir returns the deepest directory shared by every path.
func commonDir(paths []m.Path) m.Path {
	if len(paths) == 0 {
		return ""
	}

	sep := string(filepath.Separator)
	common := strings.Split(filepath.Dir(string(paths[0])), sep)

	for _, path := range paths[1:] {
		parts := strings.Split(filepath.Dir(string(path)), sep)

		n := 0
		for n < len(common) && n < len(parts) && common[n] == parts[n] {
			n++
		}

		common = common[:n]
	}

	dir := strings.Join(common, sep)
	if dir == "" && filepath.IsAbs(string(paths[0])) {
		dir = sep
	}

	return m.Path(dir)
}

package domain

import (
	"context"
	"fmt"
	"slices"

	m "covagg.dev/pkg/covagg/internal/model"
)

// UnitLookup resolves source lines to the names of the code units that
// contain them: "Type.Method" for methods, the function name for functions
// and "path:line" for anything else.
type UnitLookup struct {
	sources *SourceIndex
}

// NewUnitLookup constructs a UnitLookup over sources.
func NewUnitLookup(sources *SourceIndex) *UnitLookup {
	return &UnitLookup{sources: sources}
}

// Lookup returns the name of the unit containing line.
func (l *UnitLookup) Lookup(ctx context.Context, path m.Path, line int) string {
	structure, err := l.sources.Structure(ctx, path)
	if err == nil {
		for _, class := range slices.Concat(structure.Classes, structure.Traits) {
			for _, method := range class.Methods {
				if !method.Synthetic && line >= method.StartLine && line <= method.EndLine {
					return class.Name + "." + method.Name
				}
			}
		}

		for _, fn := range structure.Functions {
			if !fn.Synthetic && line >= fn.StartLine && line <= fn.EndLine {
				return fn.Name
			}
		}
	}

	return fmt.Sprintf("%s:%d", path, line)
}

// LinesToUnits returns the sorted, duplicate-free unit names of every line in set.
func (l *UnitLookup) LinesToUnits(ctx context.Context, set m.LineSet) []string {
	var units []string

	for path, lines := range set {
		for _, line := range lines {
			units = append(units, l.Lookup(ctx, path, line))
		}
	}

	slices.Sort(units)

	return slices.Compact(units)
}

// UnitLines returns the lines of the named unit in path. A type name selects
// its declaration and every method declared on it in that file.
func (l *UnitLookup) UnitLines(ctx context.Context, path m.Path, unit string) ([]int, error) {
	structure, err := l.sources.Structure(ctx, path)
	if err != nil {
		return nil, err
	}

	var lines []int

	addRange := func(u m.CodeUnit) {
		for line := u.StartLine; line <= u.EndLine; line++ {
			lines = append(lines, line)
		}
	}

	for _, class := range slices.Concat(structure.Classes, structure.Traits) {
		if class.Name == unit {
			addRange(class)

			for _, method := range class.Methods {
				addRange(method)
			}

			continue
		}

		for _, method := range class.Methods {
			if class.Name+"."+method.Name == unit {
				addRange(method)
			}
		}
	}

	for _, unitList := range [][]m.CodeUnit{structure.Functions, structure.Interfaces} {
		for _, u := range unitList {
			if u.Name == unit {
				addRange(u)
			}
		}
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("unit %s in %s: %w", unit, path, ErrNotFound)
	}

	return normalizeLines(lines), nil
}

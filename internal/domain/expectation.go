package domain

import (
	"context"
	"fmt"
	"slices"
	"strings"

	m "covagg.dev/pkg/covagg/internal/model"
)

// Expectation declares which code a test is meant to exercise. Covers lists
// the lines under test, Uses the lines the test may run without covering
// them. Skip marks a test that explicitly declares no covered code.
type Expectation struct {
	Skip   bool
	Covers m.LineSet
	Uses   m.LineSet
}

// Validate checks that every line number is positive.
func (e *Expectation) Validate() error {
	for _, set := range []m.LineSet{e.Covers, e.Uses} {
		for path, lines := range set {
			for _, line := range lines {
				if line <= 0 {
					return fmt.Errorf("%w: line %d of %s", ErrInvalidInput, line, path)
				}
			}
		}
	}

	return nil
}

// applyExpectation enforces the expectation of opts on data and returns the
// contribution restricted to the covered lines.
func (s *CoverageStore) applyExpectation(ctx context.Context, data m.RawData, test m.TestRecord, opts AppendOptions) (m.RawData, error) {
	exp := opts.Expectation
	if exp != nil {
		if err := exp.Validate(); err != nil {
			return nil, err
		}
	}

	noCovers := exp == nil || len(exp.Covers) == 0

	if (exp != nil && exp.Skip) || (s.forceCovers && noCovers && !opts.IgnoreForceCovers) {
		if s.checkMissingCovers {
			return nil, ErrMissingExpectation
		}

		return m.RawData{}, nil
	}

	if noCovers {
		return data, nil
	}

	if s.checkUnintentional && test.IsSmallOrUnknown() {
		if err := s.checkUnintentionallyCovered(ctx, data, exp); err != nil {
			return nil, err
		}
	}

	if s.checkUnexecuted {
		if err := s.checkUnexecutedCovered(ctx, data, exp); err != nil {
			return nil, err
		}
	}

	restricted := m.RawData{}

	for path, lines := range exp.Covers {
		file, ok := data[path]
		if !ok {
			continue
		}

		kept := m.NewRawFile()
		kept.Functions = file.Functions

		for _, line := range lines {
			if status, ok := file.Lines[line]; ok {
				kept.Lines[line] = status
			}
		}

		restricted[path] = kept
	}

	return restricted, nil
}

func (s *CoverageStore) checkUnintentionallyCovered(ctx context.Context, data m.RawData, exp *Expectation) error {
	allowed := map[m.Path]map[int]bool{}

	for _, set := range []m.LineSet{exp.Covers, exp.Uses} {
		for path, lines := range set {
			if allowed[path] == nil {
				allowed[path] = map[int]bool{}
			}

			for _, line := range lines {
				allowed[path][line] = true
			}
		}
	}

	var units []string

	for path, file := range data {
		for line, status := range file.Lines {
			if status == m.LineExecuted && !allowed[path][line] {
				units = append(units, s.lookup.Lookup(ctx, path, line))
			}
		}
	}

	slices.Sort(units)
	units = slices.Compact(units)
	units = slices.DeleteFunc(units, s.hasAllowedAncestor)

	if len(units) > 0 {
		return &UnintentionallyCoveredError{Units: units}
	}

	return nil
}

// hasAllowedAncestor reports whether unit is a method of a type with an
// allowed ancestor.
func (s *CoverageStore) hasAllowedAncestor(unit string) bool {
	typeName, _, ok := strings.Cut(unit, ".")
	if !ok || strings.Contains(unit, ":") {
		return false
	}

	for _, ancestor := range s.ancestors[typeName] {
		if s.allowedAncestors[ancestor] {
			return true
		}
	}

	return false
}

func (s *CoverageStore) checkUnexecutedCovered(ctx context.Context, data m.RawData, exp *Expectation) error {
	executed := map[string]bool{}

	for path, file := range data {
		for line, status := range file.Lines {
			if status == m.LineExecuted {
				executed[s.lookup.Lookup(ctx, path, line)] = true
			}
		}
	}

	var missing []string

	for _, unit := range s.lookup.LinesToUnits(ctx, exp.Covers) {
		if !executed[unit] {
			missing = append(missing, unit+" (covers)")
		}
	}

	for _, unit := range s.lookup.LinesToUnits(ctx, exp.Uses) {
		if !executed[unit] {
			missing = append(missing, unit+" (uses)")
		}
	}

	if len(missing) > 0 {
		return &ExpectationNotMetError{Missing: missing}
	}

	return nil
}

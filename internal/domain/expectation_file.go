package domain

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"covagg.dev/pkg/covagg/internal/adapter"
	m "covagg.dev/pkg/covagg/internal/model"
)

// UnitRef selects code in one file, by unit name or by line number.
type UnitRef struct {
	File  string   `yaml:"file"`
	Units []string `yaml:"units,omitempty"`
	Lines []int    `yaml:"lines,omitempty"`
}

type expectationEntry struct {
	Size   m.TestSize `yaml:"size"`
	Status *int       `yaml:"status"`
	Skip   bool       `yaml:"skip"`
	Covers []UnitRef  `yaml:"covers"`
	Uses   []UnitRef  `yaml:"uses"`
}

type expectationDocument struct {
	Tests map[string]expectationEntry `yaml:"tests"`
}

// PlannedTest is a test id resolved from an expectations file.
type PlannedTest struct {
	Test        m.TestRecord
	Expectation *Expectation
}

// LoadExpectations reads a YAML expectations file. Relative file names are
// resolved against the directory of the expectations file; unit names are
// resolved to lines through lookup.
func LoadExpectations(ctx context.Context, fs adapter.SourceFSAdapter, lookup *UnitLookup, path m.Path) (map[string]PlannedTest, error) {
	content, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read expectations: %w", err)
	}

	var doc expectationDocument
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse expectations %s: %w", ErrInvalidInput, path, err)
	}

	base := filepath.Dir(string(path))
	plan := make(map[string]PlannedTest, len(doc.Tests))

	for id, entry := range doc.Tests {
		test := m.NewTestRecord(id)
		if entry.Size != "" {
			test.Size = entry.Size
		}

		if entry.Status != nil {
			test.Status = *entry.Status
		}

		covers, err := resolveRefs(ctx, fs, lookup, base, entry.Covers)
		if err != nil {
			return nil, fmt.Errorf("covers of %s: %w", id, err)
		}

		uses, err := resolveRefs(ctx, fs, lookup, base, entry.Uses)
		if err != nil {
			return nil, fmt.Errorf("uses of %s: %w", id, err)
		}

		plan[id] = PlannedTest{
			Test:        test,
			Expectation: &Expectation{Skip: entry.Skip, Covers: covers, Uses: uses},
		}
	}

	return plan, nil
}

func resolveRefs(ctx context.Context, fs adapter.SourceFSAdapter, lookup *UnitLookup, base string, refs []UnitRef) (m.LineSet, error) {
	set := m.LineSet{}

	for _, ref := range refs {
		name := ref.File
		if !filepath.IsAbs(name) {
			name = filepath.Join(base, name)
		}

		path, err := fs.Abs(m.Path(name))
		if err != nil {
			return nil, err
		}

		if len(ref.Units) == 0 && len(ref.Lines) == 0 {
			return nil, fmt.Errorf("%w: %s selects no units or lines", ErrInvalidInput, ref.File)
		}

		lines := slices.Concat(set[path], ref.Lines)

		for _, unit := range ref.Units {
			unitLines, err := lookup.UnitLines(ctx, path, unit)
			if err != nil {
				return nil, err
			}

			lines = append(lines, unitLines...)
		}

		set[path] = normalizeLines(lines)
	}

	return set, nil
}

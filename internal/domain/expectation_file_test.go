package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covagg.dev/pkg/covagg/internal/domain"
	m "covagg.dev/pkg/covagg/internal/model"
)

func TestLoadExpectations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	calc := f.file(t, "src/calc.go", 12)
	f.structure(calc, &m.FileStructure{
		Classes: []m.CodeUnit{{
			Kind: m.UnitClass, Name: "Calc", StartLine: 1, EndLine: 1,
			Methods: []m.CodeUnit{{Kind: m.UnitMethod, Name: "Add", StartLine: 3, EndLine: 5}},
		}},
		Functions: []m.CodeUnit{{Kind: m.UnitFunction, Name: "Helper", StartLine: 8, EndLine: 10}},
	})

	path := f.write(t, "expectations.yaml", `tests:
  unit:
    size: small
    status: 0
    covers:
      - file: src/calc.go
        units: [Calc.Add]
        lines: [11]
    uses:
      - file: src/calc.go
        units: [Helper]
  smoke:
    skip: true
`)

	plan, err := domain.LoadExpectations(ctx, f.fs, f.lookup, path)
	require.NoError(t, err)
	require.Len(t, plan, 2)

	unit := plan["unit"]
	assert.Equal(t, m.TestRecord{ID: "unit", Size: m.SizeSmall, Status: 0}, unit.Test)
	assert.Equal(t, m.LineSet{calc: {3, 4, 5, 11}}, unit.Expectation.Covers)
	assert.Equal(t, m.LineSet{calc: {8, 9, 10}}, unit.Expectation.Uses)
	assert.False(t, unit.Expectation.Skip)

	smoke := plan["smoke"]
	assert.Equal(t, m.NewTestRecord("smoke"), smoke.Test)
	assert.True(t, smoke.Expectation.Skip)
	assert.Empty(t, smoke.Expectation.Covers)
}

func TestLoadExpectations_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "malformed yaml",
			content: "tests: [unit\n",
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "reference without units or lines",
			content: `tests:
  unit:
    covers:
      - file: calc.go
`,
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "unknown unit",
			content: `tests:
  unit:
    covers:
      - file: calc.go
        units: [Calc.Missing]
`,
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.file(t, "calc.go", 3)
			path := f.write(t, "expectations.yaml", tt.content)

			_, err := domain.LoadExpectations(ctx, f.fs, f.lookup, path)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		f := newFixture(t)

		_, err := domain.LoadExpectations(ctx, f.fs, f.lookup, m.Path(f.root+"/missing.yaml"))
		require.Error(t, err)
	})
}

func TestExpectation_Validate(t *testing.T) {
	assert.NoError(t, (&domain.Expectation{Covers: m.LineSet{"a.go": {1, 2}}}).Validate())
	assert.ErrorIs(t, (&domain.Expectation{Uses: m.LineSet{"a.go": {-1}}}).Validate(), domain.ErrInvalidInput)
}

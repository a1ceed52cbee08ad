package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covagg.dev/pkg/covagg/internal/domain"
	m "covagg.dev/pkg/covagg/internal/model"
)

func TestIgnoredLinesResolver(t *testing.T) {
	ctx := context.Background()

	const source = "package calc\n" +
		"\n" +
		"// coverage:ignore\n" +
		"var debug = true\n" +
		"\n" +
		"func Add(a, b int) int {\n" +
		"\treturn a + b // sum\n" +
		"}\n"

	tokens := []m.Token{
		{Kind: m.TokenNamespace, Line: 1, EndLine: 8, Text: "package"},
		{Kind: m.TokenComment, Line: 3, Text: "// coverage:ignore"},
		{Kind: m.TokenCode, Line: 4, Text: "var"},
		{Kind: m.TokenFunction, Line: 6, EndLine: 8, Text: "func"},
		{Kind: m.TokenCode, Line: 7, Text: "return"},
		{Kind: m.TokenComment, Line: 7, Text: "// sum"},
	}

	tests := []struct {
		name string
		opts []domain.ResolverOption
		want []int
	}{
		{"directives and structure", nil, []int{1, 2, 3, 4, 5, 6, 8, 9}},
		{"comments and directives disabled", []domain.ResolverOption{domain.WithDisableIgnoredLines(true)}, []int{2, 5}},
		{"blank lines only", []domain.ResolverOption{domain.WithCacheDisabled(true)}, []int{2, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.opts...)
			path := f.write(t, "calc.go", source)
			f.structure(path, &m.FileStructure{Tokens: tokens})

			got, err := f.resolver.IgnoredLines(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIgnoredLinesResolver_Blocks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	path := f.file(t, "calc.go", 8)
	f.structure(path, &m.FileStructure{Tokens: []m.Token{
		{Kind: m.TokenCode, Line: 1},
		{Kind: m.TokenComment, Line: 2, Text: "// coverage:ignore-start"},
		{Kind: m.TokenCode, Line: 3},
		{Kind: m.TokenCode, Line: 4},
		{Kind: m.TokenComment, Line: 5, Text: "// coverage:ignore-end"},
		{Kind: m.TokenCode, Line: 6},
	}})

	got, err := f.resolver.IgnoredLines(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4, 5, 9}, got)
}

func TestIgnoredLinesResolver_Comments(t *testing.T) {
	ctx := context.Background()

	const source = "package calc\n" +
		"/* block\n" +
		"   comment */\n" +
		"x := 1 /* trailing\n" +
		"   still */ y := 2\n" +
		"/** doc\n" +
		" * body\n" +
		" */\n" +
		"z := 3 // tail\n" +
		"/* open\n" +
		"end */ w := 4\n" +
		"// note\n"

	tests := []struct {
		name  string
		token m.Token
		want  []int
	}{
		{"block comment with terminator line", m.Token{Kind: m.TokenComment, Line: 2, Text: "/* block\n   comment */"}, []int{2, 3, 13}},
		{"block comment after code", m.Token{Kind: m.TokenComment, Line: 4, Text: "/* trailing\n   still */"}, []int{13}},
		{"doc comment", m.Token{Kind: m.TokenDocComment, Line: 6, Text: "/** doc\n * body\n */"}, []int{6, 7, 8, 13}},
		{"line comment after code", m.Token{Kind: m.TokenComment, Line: 9, Text: "// tail"}, []int{13}},
		{"code after terminator", m.Token{Kind: m.TokenComment, Line: 10, Text: "/* open\nend */"}, []int{10, 13}},
		{"line comment", m.Token{Kind: m.TokenComment, Line: 12, Text: "// note"}, []int{12, 13}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			path := f.write(t, "calc.go", source)
			f.structure(path, &m.FileStructure{Tokens: []m.Token{tt.token}})

			got, err := f.resolver.IgnoredLines(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIgnoredLinesResolver_TrailingClosures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		lines int
		class m.CodeUnit
		want  []int
	}{
		{
			name:  "closure after the last method",
			lines: 10,
			class: m.CodeUnit{
				Kind: m.UnitClass, Name: "Box", StartLine: 1, EndLine: 10,
				Methods: []m.CodeUnit{
					{Kind: m.UnitMethod, Name: "Open", StartLine: 3, EndLine: 5},
					{Kind: m.UnitMethod, Name: "Close", StartLine: 6, EndLine: 7},
					{Kind: m.UnitFunction, Name: "func@8", StartLine: 8, EndLine: 9, Synthetic: true},
				},
			},
			want: []int{1, 2, 3, 8, 9, 10, 11},
		},
		{
			name:  "only closures after the first method",
			lines: 8,
			class: m.CodeUnit{
				Kind: m.UnitClass, Name: "Pair", StartLine: 1, EndLine: 8,
				Methods: []m.CodeUnit{
					{Kind: m.UnitMethod, Name: "Get", StartLine: 2, EndLine: 4},
					{Kind: m.UnitFunction, Name: "func@5", StartLine: 5, EndLine: 6, Synthetic: true},
				},
			},
			want: []int{1, 2, 5, 6, 7, 8, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			path := f.file(t, "box.go", tt.lines)
			f.structure(path, &m.FileStructure{Classes: []m.CodeUnit{tt.class}})

			got, err := f.resolver.IgnoredLines(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIgnoredLinesResolver_Declarations(t *testing.T) {
	ctx := context.Background()

	structure := &m.FileStructure{
		Interfaces: []m.CodeUnit{{Kind: m.UnitInterface, Name: "Shape", StartLine: 1, EndLine: 3}},
		Classes: []m.CodeUnit{{
			Kind: m.UnitClass, Name: "Box", StartLine: 4, EndLine: 12,
			Methods: []m.CodeUnit{
				{Kind: m.UnitMethod, Name: "Open", StartLine: 6, EndLine: 8},
				{Kind: m.UnitMethod, Name: "Close", StartLine: 9, EndLine: 10},
			},
		}},
		Tokens: []m.Token{
			{Kind: m.TokenFunction, Line: 13, EndLine: 15, DocBlock: "// Old is gone.\n//\n// Deprecated: use New."},
		},
	}

	t.Run("type bodies outside methods", func(t *testing.T) {
		f := newFixture(t)
		path := f.file(t, "box.go", 15)
		f.structure(path, structure)

		got, err := f.resolver.IgnoredLines(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 11, 12, 13, 16}, got)
	})

	t.Run("deprecated declarations", func(t *testing.T) {
		f := newFixture(t, domain.WithIgnoreDeprecated(true))
		path := f.file(t, "box.go", 15)
		f.structure(path, structure)

		got, err := f.resolver.IgnoredLines(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 11, 12, 13, 14, 15, 16}, got)
	})
}

func TestIgnoredLinesResolver_MissingFile(t *testing.T) {
	f := newFixture(t)

	_, err := f.resolver.IgnoredLines(context.Background(), m.Path(f.root+"/missing.go"))
	require.Error(t, err)
}

func TestUnitLookup(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	path := f.file(t, "calc.go", 20)
	f.structure(path, &m.FileStructure{
		Interfaces: []m.CodeUnit{{Kind: m.UnitInterface, Name: "Adder", StartLine: 18, EndLine: 20}},
		Classes: []m.CodeUnit{{
			Kind: m.UnitClass, Name: "Calc", StartLine: 1, EndLine: 1,
			Methods: []m.CodeUnit{
				{Kind: m.UnitMethod, Name: "Add", StartLine: 3, EndLine: 5},
				{Kind: m.UnitFunction, Name: "func@4", StartLine: 4, EndLine: 4, Synthetic: true},
			},
		}},
		Functions: []m.CodeUnit{{Kind: m.UnitFunction, Name: "Helper", StartLine: 7, EndLine: 9}},
	})

	lookup := f.lookup

	t.Run("lookup", func(t *testing.T) {
		assert.Equal(t, "Calc.Add", lookup.Lookup(ctx, path, 4))
		assert.Equal(t, "Helper", lookup.Lookup(ctx, path, 8))
		assert.Equal(t, string(path)+":12", lookup.Lookup(ctx, path, 12))
		assert.Equal(t, "/nowhere.go:1", lookup.Lookup(ctx, "/nowhere.go", 1))
	})

	t.Run("lines to units", func(t *testing.T) {
		units := lookup.LinesToUnits(ctx, m.LineSet{path: {3, 4, 8}})
		assert.Equal(t, []string{"Calc.Add", "Helper"}, units)
	})

	t.Run("unit lines", func(t *testing.T) {
		lines, err := lookup.UnitLines(ctx, path, "Calc.Add")
		require.NoError(t, err)
		assert.Equal(t, []int{3, 4, 5}, lines)

		lines, err = lookup.UnitLines(ctx, path, "Calc")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3, 4, 5}, lines)

		lines, err = lookup.UnitLines(ctx, path, "Adder")
		require.NoError(t, err)
		assert.Equal(t, []int{18, 19, 20}, lines)

		_, err = lookup.UnitLines(ctx, path, "Calc.Missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

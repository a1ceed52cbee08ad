package domain

import (
	"context"
	"slices"
	"strings"
	"sync"

	m "covagg.dev/pkg/covagg/internal/model"
)

const (
	directiveIgnore      = "coverage:ignore"
	directiveIgnoreStart = "coverage:ignore-start"
	directiveIgnoreEnd   = "coverage:ignore-end"
	deprecatedMarker     = "Deprecated:"
)

// IgnoredLinesResolver computes the lines of a file that are excluded from
// coverage accounting. Results are cached per path for the lifetime of the
// resolver; the cache is safe for concurrent use.
type IgnoredLinesResolver struct {
	sources             *SourceIndex
	ignoreDeprecated    bool
	disableIgnoredLines bool
	cacheDisabled       bool

	mu    sync.RWMutex
	cache map[m.Path][]int
}

// ResolverOption configures an IgnoredLinesResolver.
type ResolverOption func(*IgnoredLinesResolver)

// WithIgnoreDeprecated excludes elements whose doc comment carries a
// "Deprecated:" paragraph.
func WithIgnoreDeprecated(enabled bool) ResolverOption {
	return func(r *IgnoredLinesResolver) {
		r.ignoreDeprecated = enabled
	}
}

// WithDisableIgnoredLines limits the resolver to the structural rules and
// ignores comments and directives.
func WithDisableIgnoredLines(disabled bool) ResolverOption {
	return func(r *IgnoredLinesResolver) {
		r.disableIgnoredLines = disabled
	}
}

// WithCacheDisabled bypasses the structure cache; only blank lines are
// excluded.
func WithCacheDisabled(disabled bool) ResolverOption {
	return func(r *IgnoredLinesResolver) {
		r.cacheDisabled = disabled
	}
}

// NewIgnoredLinesResolver constructs a resolver reading sources through index.
func NewIgnoredLinesResolver(sources *SourceIndex, opts ...ResolverOption) *IgnoredLinesResolver {
	r := &IgnoredLinesResolver{
		sources: sources,
		cache:   map[m.Path][]int{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// IgnoredLines returns the sorted, duplicate-free excluded lines of path.
func (r *IgnoredLinesResolver) IgnoredLines(ctx context.Context, path m.Path) ([]int, error) {
	if r.cacheDisabled {
		lines, err := r.sources.Lines(ctx, path)
		if err != nil {
			return nil, err
		}

		return blankLines(lines), nil
	}

	r.mu.RLock()
	cached, ok := r.cache[path]
	r.mu.RUnlock()

	if ok {
		return cached, nil
	}

	lines, err := r.sources.Lines(ctx, path)
	if err != nil {
		return nil, err
	}

	structure, err := r.sources.Structure(ctx, path)
	if err != nil {
		return nil, err
	}

	ignored := r.compute(lines, structure)

	r.mu.Lock()
	r.cache[path] = ignored
	r.mu.Unlock()

	return ignored, nil
}

func (r *IgnoredLinesResolver) compute(lines []string, structure *m.FileStructure) []int {
	ignored := blankLines(lines)

	addRange := func(from, to int) {
		for line := from; line <= to; line++ {
			ignored = append(ignored, line)
		}
	}

	for _, iface := range structure.Interfaces {
		addRange(iface.StartLine, iface.EndLine)
	}

	for _, class := range slices.Concat(structure.Classes, structure.Traits) {
		methods := methodsInBody(class)
		if len(methods) == 0 {
			addRange(class.StartLine, class.EndLine)
			continue
		}

		first := methods[0]
		lastEnd := first.EndLine

		for i := len(methods) - 1; i > 0; i-- {
			if !methods[i].Synthetic {
				lastEnd = methods[i].EndLine
				break
			}
		}

		addRange(class.StartLine, first.StartLine)
		addRange(lastEnd+1, class.EndLine)
	}

	if r.disableIgnoredLines {
		return normalizeLines(ignored)
	}

	var (
		ignore bool
		stop   bool
		armed  bool
	)

	for _, tok := range structure.Tokens {
		switch {
		case tok.Kind == m.TokenComment || tok.Kind == m.TokenDocComment:
			text := strings.TrimSpace(tok.Text)
			lineText := ""

			if tok.Line >= 1 && tok.Line <= len(lines) {
				lineText = strings.TrimSpace(lines[tok.Line-1])
			}

			codeBefore := !strings.HasPrefix(text, lineText)

			switch directive(text) {
			case directiveIgnore:
				ignore, stop = true, true

				if !codeBefore {
					// A directive on its own line covers the next token.
					ignored = append(ignored, tok.Line)
					armed = true
				}
			case directiveIgnoreStart:
				ignore = true
			case directiveIgnoreEnd:
				stop = true
			}

			if !ignore {
				ignored = append(ignored, commentSpan(text, tok.Line, codeBefore, lines)...)
			}
		case tok.Kind.IsDeclaration():
			ignored = append(ignored, tok.Line)

			if strings.Contains(tok.DocBlock, directiveIgnore) ||
				(r.ignoreDeprecated && strings.Contains(tok.DocBlock, deprecatedMarker)) {
				addRange(tok.Line, tok.EndLine)
			}
		case tok.Kind == m.TokenNamespace:
			ignored = append(ignored, tok.EndLine, tok.Line)
		case tok.Kind == m.TokenDeclare, tok.Kind == m.TokenOpenTag, tok.Kind == m.TokenCloseTag, tok.Kind == m.TokenUse:
			ignored = append(ignored, tok.Line)
		}

		if armed {
			armed = false
			continue
		}

		if ignore {
			ignored = append(ignored, tok.Line)

			if stop {
				ignore, stop = false, false
			}
		}
	}

	ignored = append(ignored, len(lines)+1)

	return normalizeLines(ignored)
}

// commentSpan returns the lines a comment occupies. A comment preceded by
// code on its first line leaves that line alone.
func commentSpan(text string, line int, codeBefore bool, lines []string) []int {
	start := line
	end := start + strings.Count(text, "\n")

	if strings.HasPrefix(text, "//") {
		end++
	}

	if codeBefore {
		start++
	}

	var span []int

	i := start
	for ; i < end; i++ {
		span = append(span, i)
	}

	if strings.HasPrefix(text, "/*") && i >= 1 && i <= len(lines) &&
		strings.HasSuffix(strings.TrimSpace(lines[i-1]), "*/") {
		span = append(span, i)
	}

	return span
}

func directive(text string) string {
	body, ok := strings.CutPrefix(text, "//")
	if !ok {
		return ""
	}

	switch body = strings.TrimPrefix(body, " "); body {
	case directiveIgnore, directiveIgnoreStart, directiveIgnoreEnd:
		return body
	default:
		return ""
	}
}

func methodsInBody(class m.CodeUnit) []m.CodeUnit {
	var methods []m.CodeUnit

	for _, method := range class.Methods {
		if method.StartLine >= class.StartLine && method.EndLine <= class.EndLine {
			methods = append(methods, method)
		}
	}

	return methods
}

func blankLines(lines []string) []int {
	blank := []int{}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			blank = append(blank, i+1)
		}
	}

	return blank
}

func normalizeLines(lines []int) []int {
	slices.Sort(lines)
	return slices.Compact(lines)
}

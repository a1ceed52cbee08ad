package domain_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"covagg.dev/pkg/covagg/internal/adapter"
	"covagg.dev/pkg/covagg/internal/domain"
	m "covagg.dev/pkg/covagg/internal/model"
)

// stubParser returns a preset structure per path and an empty one otherwise.
type stubParser struct {
	structures map[m.Path]*m.FileStructure
}

func (p *stubParser) Parse(_ context.Context, path m.Path, _ []byte) (*m.FileStructure, error) {
	if structure, ok := p.structures[path]; ok {
		return structure, nil
	}

	return &m.FileStructure{}, nil
}

// fixture is a directory of source files read through a shared index.
type fixture struct {
	root     string
	fs       adapter.SourceFSAdapter
	parser   *stubParser
	sources  *domain.SourceIndex
	resolver *domain.IgnoredLinesResolver
	lookup   *domain.UnitLookup
}

func newFixture(t *testing.T, opts ...domain.ResolverOption) *fixture {
	t.Helper()

	fs := adapter.NewLocalSourceFSAdapter()
	parser := &stubParser{structures: map[m.Path]*m.FileStructure{}}
	sources := domain.NewSourceIndex(fs, parser)

	return &fixture{
		root:     t.TempDir(),
		fs:       fs,
		parser:   parser,
		sources:  sources,
		resolver: domain.NewIgnoredLinesResolver(sources, opts...),
		lookup:   domain.NewUnitLookup(sources),
	}
}

// file writes a source file of n non-blank lines and returns its path.
func (f *fixture) file(t *testing.T, name string, n int) m.Path {
	t.Helper()

	lines := make([]string, n)
	for i := range lines {
		lines[i] = "x"
	}

	return f.write(t, name, strings.Join(lines, "\n")+"\n")
}

func (f *fixture) write(t *testing.T, name, content string) m.Path {
	t.Helper()

	path := filepath.Join(f.root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return m.Path(path)
}

func (f *fixture) structure(path m.Path, structure *m.FileStructure) {
	f.parser.structures[path] = structure
}

// store returns a store whose whitelist holds files.
func (f *fixture) store(t *testing.T, driver adapter.Driver, files []m.Path, opts ...domain.StoreOption) *domain.CoverageStore {
	t.Helper()

	filter := domain.NewFilter(f.fs)
	for _, file := range files {
		require.NoError(t, filter.AddFileToWhitelist(file))
	}

	store, err := domain.NewCoverageStore(driver, filter, f.resolver, f.lookup, opts...)
	require.NoError(t, err)

	return store
}

func rawFile(lines map[int]m.LineStatus) *m.RawFile {
	file := m.NewRawFile()
	for line, status := range lines {
		file.Lines[line] = status
	}

	return file
}

func testIDs(rec *m.LineRecord) []string {
	if rec == nil {
		return nil
	}

	return rec.Tests
}

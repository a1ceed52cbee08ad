package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"covagg.dev/pkg/covagg/internal/adapter"
	m "covagg.dev/pkg/covagg/internal/model"
)

// SourceIndex caches the physical lines and parsed structure of source
// files. It is shared by the ignored-lines resolver, the unit lookup and
// the report builder, and is safe for concurrent use. Entries are never
// evicted.
type SourceIndex struct {
	fs     adapter.SourceFSAdapter
	parser adapter.StructureParser

	mu      sync.RWMutex
	entries map[m.Path]*sourceEntry
}

type sourceEntry struct {
	lines     []string
	structure *m.FileStructure
}

// NewSourceIndex constructs an empty index.
func NewSourceIndex(fs adapter.SourceFSAdapter, parser adapter.StructureParser) *SourceIndex {
	return &SourceIndex{
		fs:      fs,
		parser:  parser,
		entries: map[m.Path]*sourceEntry{},
	}
}

// Lines returns the physical lines of path.
func (s *SourceIndex) Lines(ctx context.Context, path m.Path) ([]string, error) {
	entry, err := s.entry(ctx, path)
	if err != nil {
		return nil, err
	}

	return entry.lines, nil
}

// Structure returns the parsed structure of path. Files that fail to parse
// yield a structure without units.
func (s *SourceIndex) Structure(ctx context.Context, path m.Path) (*m.FileStructure, error) {
	entry, err := s.entry(ctx, path)
	if err != nil {
		return nil, err
	}

	return entry.structure, nil
}

func (s *SourceIndex) entry(ctx context.Context, path m.Path) (*sourceEntry, error) {
	s.mu.RLock()
	entry, ok := s.entries[path]
	s.mu.RUnlock()

	if ok {
		return entry, nil
	}

	content, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", path, err)
	}

	structure, err := s.parser.Parse(ctx, path, content)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		slog.Warn("Failed to parse source, continuing without structure", "path", path, "error", err)

		if structure == nil {
			structure = &m.FileStructure{}
		}

		structure = &m.FileStructure{LinesOfCode: structure.LinesOfCode}
	}

	entry = &sourceEntry{lines: adapter.SplitLines(content), structure: structure}

	s.mu.Lock()
	if existing, ok := s.entries[path]; ok {
		entry = existing
	} else {
		s.entries[path] = entry
	}
	s.mu.Unlock()

	return entry, nil
}

package domain

import (
	"context"
	"fmt"
	"log/slog"

	"covagg.dev/pkg/covagg/internal/adapter"
	m "covagg.dev/pkg/covagg/internal/model"
)

// addUncoveredFilesFromWhitelist appends every whitelisted file that was
// never observed with all of its lines reported as not executed.
func (s *CoverageStore) addUncoveredFilesFromWhitelist(ctx context.Context) error {
	raw := m.RawData{}

	for _, path := range s.uncoveredFiles() {
		if _, err := s.filter.fs.FileInfo(path); err != nil {
			continue
		}

		lines, err := s.resolver.sources.Lines(ctx, path)
		if err != nil {
			return fmt.Errorf("count lines of %s: %w", path, err)
		}

		file := m.NewRawFile()
		for line := 1; line <= len(lines); line++ {
			file.Lines[line] = m.LineNotExecuted
		}

		raw[path] = file
	}

	if len(raw) == 0 {
		return nil
	}

	slog.Debug("Adding uncovered files from whitelist", "files", len(raw))

	return s.Append(ctx, raw, m.NewTestRecord(m.UncoveredFilesTestID), AppendOptions{})
}

// initialize runs once before the first bracket. With WithProcessUncoveredFiles
// the driver observes the uncovered whitelisted files without any test; what
// it reports as executed is downgraded to not executed.
func (s *CoverageStore) initialize(ctx context.Context) error {
	s.initialized = true

	if !s.processUncoveredFiles {
		return nil
	}

	s.checkDeadAndUnused = false

	if err := s.driver.Start(false); err != nil {
		return err
	}

	if loader, ok := s.driver.(adapter.FileLoader); ok {
		var files []m.Path

		for _, path := range s.uncoveredFiles() {
			if s.filter.IsFile(path) {
				files = append(files, path)
			}
		}

		if err := loader.Load(files); err != nil {
			_, _ = s.driver.Stop()
			return err
		}
	}

	raw, err := s.driver.Stop()
	if err != nil {
		return err
	}

	data := m.RawData{}

	for path, file := range raw {
		if s.filter.IsFiltered(path) {
			continue
		}

		for line, status := range file.Lines {
			if status == m.LineExecuted {
				file.Lines[line] = m.LineNotExecuted
			}
		}

		data[path] = file
	}

	slog.Debug("Processed uncovered files from whitelist", "files", len(data))

	return s.Append(ctx, data, m.NewTestRecord(m.UncoveredFilesTestID), AppendOptions{})
}

func (s *CoverageStore) uncoveredFiles() []m.Path {
	var files []m.Path

	for _, path := range s.filter.Whitelist() {
		if _, ok := s.data[path]; !ok {
			files = append(files, path)
		}
	}

	return files
}

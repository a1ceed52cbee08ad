package domain

import (
	"maps"

	m "covagg.dev/pkg/covagg/internal/model"
)

// Line priorities used when merging two records of the same file.
const (
	priorityAbsent = iota + 1
	priorityEmpty
	priorityNotExecutable
	priorityCovered
)

// Merge folds other into s. Whitelists are unioned; files only known to other
// are copied unless s filters them; for shared files every line takes the
// record of higher priority, and equal executable records union their tests.
// other is not modified.
func (s *CoverageStore) Merge(other *CoverageStore) {
	whitelist := s.filter.WhitelistedFiles()
	maps.Copy(whitelist, other.filter.WhitelistedFiles())
	s.filter.SetWhitelistedFiles(whitelist)

	for path, theirs := range other.data {
		mine, ok := s.data[path]
		if !ok {
			if !s.filter.IsFiltered(path) {
				s.data[path] = theirs.Clone()
			}

			continue
		}

		mergeLines(mine, theirs)
		mergeBranches(mine, theirs)
	}

	maps.Copy(s.tests, other.tests)
	s.report = nil
}

func mergeLines(mine, theirs *m.FileCoverage) {
	lines := make(map[int]struct{}, len(mine.Lines)+len(theirs.Lines))
	for line := range mine.Lines {
		lines[line] = struct{}{}
	}

	for line := range theirs.Lines {
		lines[line] = struct{}{}
	}

	for line := range lines {
		theirPriority := linePriority(theirs.Lines, line)
		myPriority := linePriority(mine.Lines, line)

		switch {
		case theirPriority > myPriority:
			mine.Lines[line] = theirs.Lines[line].Clone()
		case theirPriority == myPriority && mine.Lines[line].Executable():
			rec := mine.Lines[line]
			for _, id := range theirs.Lines[line].Tests {
				rec.AddTest(id)
			}

			rec.PathCovered = rec.PathCovered || theirs.Lines[line].PathCovered
		}
	}
}

func mergeBranches(mine, theirs *m.FileCoverage) {
	for fn, branches := range theirs.Branches {
		for id, branch := range branches {
			b := mine.Branch(fn, id)
			b.Hit = max(b.Hit, branch.Hit)

			if b.LineStart == 0 && b.LineEnd == 0 {
				b.LineStart, b.LineEnd = branch.LineStart, branch.LineEnd
			}

			for _, test := range branch.Tests {
				b.AddTest(test)
			}
		}
	}

	for fn, paths := range theirs.Paths {
		for id, path := range paths {
			p := mine.Path(fn, id)
			p.Hit = max(p.Hit, path.Hit)
		}
	}
}

func linePriority(lines map[int]*m.LineRecord, line int) int {
	rec, ok := lines[line]

	switch {
	case !ok || rec == nil:
		return priorityAbsent
	case !rec.Executable():
		return priorityNotExecutable
	case len(rec.Tests) == 0:
		return priorityEmpty
	default:
		return priorityCovered
	}
}

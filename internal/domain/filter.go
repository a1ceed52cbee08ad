package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"covagg.dev/pkg/covagg/internal/adapter"
	m "covagg.dev/pkg/covagg/internal/model"
)

const (
	// DefaultGroup is the blacklist group used when none is given.
	DefaultGroup = "DEFAULT"
	// DefaultSuffix selects the files enumerated from a directory.
	DefaultSuffix = ".go"
)

// syntheticUnits are identifiers reported by drivers for code that has no
// backing file.
var syntheticUnits = map[string]bool{
	"eval()'d code":            true,
	"runtime-created function": true,
	"assert code":              true,
	"regexp code":              true,
}

const debugEvalPrefix = "xdebug://debug-eval"

// Filter decides which files participate in coverage accounting. It is owned
// by a single CoverageStore and is not safe for concurrent use.
type Filter struct {
	fs        adapter.SourceFSAdapter
	whitelist map[m.Path]bool
	blacklist map[string]map[m.Path]bool
}

// NewFilter returns an empty filter.
func NewFilter(fs adapter.SourceFSAdapter) *Filter {
	return &Filter{
		fs:        fs,
		whitelist: map[m.Path]bool{},
		blacklist: map[string]map[m.Path]bool{DefaultGroup: {}},
	}
}

// AddFileToWhitelist includes a single file.
func (f *Filter) AddFileToWhitelist(path m.Path) error {
	abs, err := f.existing(path)
	if err != nil {
		return err
	}

	f.whitelist[abs] = true

	return nil
}

// RemoveFileFromWhitelist drops a single file from the include set.
func (f *Filter) RemoveFileFromWhitelist(path m.Path) {
	delete(f.whitelist, f.abs(path))
}

// AddDirectoryToWhitelist includes every file below dir whose name ends with
// suffix and starts with prefix.
func (f *Filter) AddDirectoryToWhitelist(dir m.Path, suffix, prefix string) error {
	files, err := f.enumerate(dir, suffix, prefix)
	if err != nil {
		return err
	}

	f.AddFilesToWhitelist(files)

	return nil
}

// RemoveDirectoryFromWhitelist is the inverse of AddDirectoryToWhitelist.
func (f *Filter) RemoveDirectoryFromWhitelist(dir m.Path, suffix, prefix string) error {
	files, err := f.enumerate(dir, suffix, prefix)
	if err != nil {
		return err
	}

	for _, file := range files {
		delete(f.whitelist, file)
	}

	return nil
}

// AddFilesToWhitelist includes a batch of files without checking existence.
func (f *Filter) AddFilesToWhitelist(paths []m.Path) {
	for _, path := range paths {
		f.whitelist[f.abs(path)] = true
	}
}

// Whitelist returns the included files in sorted order.
func (f *Filter) Whitelist() []m.Path {
	return sortedPaths(f.whitelist)
}

// WhitelistedFiles returns a copy of the include set.
func (f *Filter) WhitelistedFiles() map[m.Path]bool {
	out := make(map[m.Path]bool, len(f.whitelist))
	for path := range f.whitelist {
		out[path] = true
	}

	return out
}

// SetWhitelistedFiles replaces the include set.
func (f *Filter) SetWhitelistedFiles(files map[m.Path]bool) {
	f.whitelist = make(map[m.Path]bool, len(files))
	for path, included := range files {
		if included {
			f.whitelist[path] = true
		}
	}
}

// HasWhitelist reports whether the include set is non-empty.
func (f *Filter) HasWhitelist() bool {
	return len(f.whitelist) > 0
}

// AddFileToBlacklist excludes a single file. The group defaults to DefaultGroup.
func (f *Filter) AddFileToBlacklist(path m.Path, group ...string) error {
	abs, err := f.existing(path)
	if err != nil {
		return err
	}

	f.group(group)[abs] = true

	return nil
}

// RemoveFileFromBlacklist drops a single file from a blacklist group.
func (f *Filter) RemoveFileFromBlacklist(path m.Path, group ...string) {
	delete(f.group(group), f.abs(path))
}

// AddDirectoryToBlacklist excludes every matching file below dir.
func (f *Filter) AddDirectoryToBlacklist(dir m.Path, suffix, prefix string, group ...string) error {
	files, err := f.enumerate(dir, suffix, prefix)
	if err != nil {
		return err
	}

	f.AddFilesToBlacklist(files, group...)

	return nil
}

// RemoveDirectoryFromBlacklist is the inverse of AddDirectoryToBlacklist.
func (f *Filter) RemoveDirectoryFromBlacklist(dir m.Path, suffix, prefix string, group ...string) error {
	files, err := f.enumerate(dir, suffix, prefix)
	if err != nil {
		return err
	}

	set := f.group(group)
	for _, file := range files {
		delete(set, file)
	}

	return nil
}

// AddFilesToBlacklist excludes a batch of files without checking existence.
func (f *Filter) AddFilesToBlacklist(paths []m.Path, group ...string) {
	set := f.group(group)
	for _, path := range paths {
		set[f.abs(path)] = true
	}
}

// Blacklist returns every group with its files in sorted order.
func (f *Filter) Blacklist() map[string][]m.Path {
	out := make(map[string][]m.Path, len(f.blacklist))
	for group, files := range f.blacklist {
		out[group] = sortedPaths(files)
	}

	return out
}

// IsFile reports whether path names real source rather than a synthetic
// code unit.
func (f *Filter) IsFile(path m.Path) bool {
	name := string(path)

	return !syntheticUnits[name] && !strings.HasPrefix(name, debugEvalPrefix)
}

// IsFiltered reports whether path is excluded from accounting.
func (f *Filter) IsFiltered(path m.Path) bool {
	if len(f.whitelist) > 0 && !f.whitelist[path] {
		return true
	}

	for _, files := range f.blacklist {
		if files[path] {
			return true
		}
	}

	return false
}

func (f *Filter) group(group []string) map[m.Path]bool {
	name := DefaultGroup
	if len(group) > 0 && group[0] != "" {
		name = group[0]
	}

	set, ok := f.blacklist[name]
	if !ok {
		set = map[m.Path]bool{}
		f.blacklist[name] = set
	}

	return set
}

func (f *Filter) abs(path m.Path) m.Path {
	abs, err := f.fs.Abs(path)
	if err != nil {
		return m.Path(filepath.Clean(string(path)))
	}

	return abs
}

func (f *Filter) existing(path m.Path) (m.Path, error) {
	abs := f.abs(path)

	if _, err := f.fs.FileInfo(abs); err != nil {
		return "", fmt.Errorf("%s: %w", path, ErrNotFound)
	}

	return abs, nil
}

func (f *Filter) enumerate(dir m.Path, suffix, prefix string) ([]m.Path, error) {
	if suffix == "" {
		suffix = DefaultSuffix
	}

	root := f.abs(dir)

	info, err := f.fs.FileInfo(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotFound)
	}

	var files []m.Path

	err = f.fs.Walk(root, true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		name := info.Name()
		if strings.HasSuffix(name, suffix) && strings.HasPrefix(name, prefix) {
			files = append(files, m.Path(path))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", dir, err)
	}

	return files, nil
}

func sortedPaths(set map[m.Path]bool) []m.Path {
	out := make([]m.Path, 0, len(set))
	for path := range set {
		out = append(out, path)
	}

	slices.Sort(out)

	return out
}

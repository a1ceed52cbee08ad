package adapter

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	m "covagg.dev/pkg/covagg/internal/model"
)

// ModuleResolver maps the import-path file names found in Go cover profiles
// (example.com/mod/pkg/file.go) to paths on disk.
type ModuleResolver struct {
	root       m.Path
	modulePath string
}

// NewModuleResolver reads root/go.mod and returns a resolver for that module.
func NewModuleResolver(fs SourceFSAdapter, root m.Path) (*ModuleResolver, error) {
	goModPath := fs.JoinPath(string(root), "go.mod")

	content, err := fs.ReadFile(goModPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", goModPath, err)
	}

	mod, err := modfile.Parse(string(goModPath), content, nil)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", goModPath, err)
	}

	if mod.Module == nil {
		return nil, fmt.Errorf("%s has no module directive", goModPath)
	}

	return &ModuleResolver{root: root, modulePath: mod.Module.Mod.Path}, nil
}

// ModulePath returns the module path declared in go.mod.
func (r *ModuleResolver) ModulePath() string {
	return r.modulePath
}

// Resolve converts a profile file name to a disk path. Names outside the
// module and names that are already file system paths are returned as-is.
func (r *ModuleResolver) Resolve(name string) m.Path {
	if filepath.IsAbs(name) {
		return m.Path(filepath.Clean(name))
	}

	if name == r.modulePath {
		return r.root
	}

	rest, ok := strings.CutPrefix(name, r.modulePath+"/")
	if !ok {
		return m.Path(name)
	}

	return m.Path(filepath.Join(string(r.root), filepath.FromSlash(rest)))
}

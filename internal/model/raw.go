package model

// LineStatus is the per-line flag reported by a coverage driver.
type LineStatus int

const (
	// LineExecuted marks a line that ran during the observed window.
	LineExecuted LineStatus = 1
	// LineNotExecuted marks an executable line that did not run.
	LineNotExecuted LineStatus = -1
	// LineNotExecutable marks dead or non-executable code.
	LineNotExecutable LineStatus = -2
)

// RawBranch is a branch observation as reported by a driver.
type RawBranch struct {
	Hit       int
	LineStart int
	LineEnd   int
}

// RawPath is a path observation as reported by a driver.
type RawPath struct {
	Hit int
}

// RawFunction groups the branch and path observations of one function.
type RawFunction struct {
	Branches map[int]RawBranch
	Paths    map[int]RawPath
}

// RawFile is the driver output for a single file.
type RawFile struct {
	Lines     map[int]LineStatus
	Functions map[string]RawFunction
}

// RawData maps file paths to the driver output for that file.
type RawData map[Path]*RawFile

// NewRawFile returns an empty RawFile with initialized maps.
func NewRawFile() *RawFile {
	return &RawFile{
		Lines:     map[int]LineStatus{},
		Functions: map[string]RawFunction{},
	}
}

// Clone returns a deep copy of the raw data.
func (d RawData) Clone() RawData {
	out := make(RawData, len(d))

	for path, file := range d {
		if file == nil {
			out[path] = NewRawFile()
			continue
		}

		cp := NewRawFile()
		for line, status := range file.Lines {
			cp.Lines[line] = status
		}

		for name, fn := range file.Functions {
			cpFn := RawFunction{
				Branches: make(map[int]RawBranch, len(fn.Branches)),
				Paths:    make(map[int]RawPath, len(fn.Paths)),
			}
			for id, b := range fn.Branches {
				cpFn.Branches[id] = b
			}

			for id, p := range fn.Paths {
				cpFn.Paths[id] = p
			}

			cp.Functions[name] = cpFn
		}

		out[path] = cp
	}

	return out
}

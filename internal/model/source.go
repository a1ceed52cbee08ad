// Package model defines the data structures shared by coverage collection,
// aggregation and reporting.
package model

// Path represents a file system path.
type Path string

// File represents a source code file.
type File struct {
	Path Path
	Hash string
}

// LinesOfCode holds the physical line statistics of a source file.
type LinesOfCode struct {
	LOC   int `yaml:"loc"`   // physical lines
	CLOC  int `yaml:"cloc"`  // comment lines
	NCLOC int `yaml:"ncloc"` // non-comment lines
}

package model

import "fmt"

// Location is a source position: a file relative to its package root plus a
// 1-based line/column as produced by the tree-sitter node's start point.
type Location struct {
	Package string
	File    string
	Line    int
	Column  int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Less orders locations for the deterministic report sort in the concurrency
// design: file path, then line, then column.
func (l Location) Less(o Location) bool {
	if l.File != o.File {
		return l.File < o.File
	}
	if l.Line != o.Line {
		return l.Line < o.Line
	}
	return l.Column < o.Column
}

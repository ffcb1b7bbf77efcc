package domain

import "fmt"

// Violation represents a single lint finding.
type Violation struct {
	ErrorCode     string
	Path          string
	LineStart     int
	LineEnd       int
	ColumnStart   int
	ColumnEnd     int
	Message       string
	LinterName    string
	IsAutofixable bool
	FixSuggestion string // empty when the linter offers no fix
}

// SortKey orders violations by path, then start line, then error code.
func (v Violation) SortKey() string {
	return fmt.Sprintf("%s|%08d|%s", v.Path, v.LineStart, v.ErrorCode)
}

func (v Violation) String() string {
	return fmt.Sprintf("%s:%d:%d %s %s", v.Path, v.LineStart, v.ColumnStart, v.ErrorCode, v.Message)
}

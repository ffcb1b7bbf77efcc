// Package annotation renders violations as GitHub Actions workflow
// commands, which GitHub turns into inline annotations on pull requests.
package annotation

import (
	"fmt"
	"io"

	"github.com/bkyoung/riff/internal/domain"
)

// Writer emits one annotation line per violation.
type Writer struct {
	out io.Writer
}

// NewWriter constructs a Writer targeting the given stream.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Write prints an ::error annotation for every violation.
func (w *Writer) Write(violations []domain.Violation) error {
	for _, v := range violations {
		if _, err := fmt.Fprintln(w.out, Format(v)); err != nil {
			return fmt.Errorf("write annotation: %w", err)
		}
	}
	return nil
}

// Format renders a single violation as a workflow error command.
func Format(v domain.Violation) string {
	return fmt.Sprintf("::error title=%s (%s),file=%s,line=%d,endLine=%d,col=%d,endColumn=%d::%s",
		v.LinterName, v.ErrorCode, v.Path, v.LineStart, v.LineEnd, v.ColumnStart, v.ColumnEnd, v.Message)
}

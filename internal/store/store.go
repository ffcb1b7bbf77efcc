// Package store defines the run-history records and the persistence
// interface implemented by the storage adapters.
package store

import (
	"context"
	"time"
)

// Run captures the summary of one filtering run.
type Run struct {
	RunID           string
	Timestamp       time.Time
	Mode            string
	Target          string
	Repository      string
	TotalViolations int
	KeptViolations  int
}

// RunViolation is one surviving violation recorded for a run.
type RunViolation struct {
	RunID     string
	ErrorCode string
	Path      string
	LineStart int
	LineEnd   int
	Message   string
}

// Store persists run history.
type Store interface {
	CreateRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, runID string) (Run, error)
	RecordViolations(ctx context.Context, violations []RunViolation) error
	ListViolations(ctx context.Context, runID string) ([]RunViolation, error)
	Close() error
}

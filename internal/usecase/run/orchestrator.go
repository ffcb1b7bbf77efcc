package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bkyoung/riff/internal/domain"
	"github.com/bkyoung/riff/internal/ruff"
	"github.com/bkyoung/riff/internal/store"
	"github.com/bkyoung/riff/internal/usecase/filter"
)

// ErrViolationsFound signals that violations survived filtering.
// The CLI boundary maps it to a non-zero exit status.
var ErrViolationsFound = errors.New("linter errors found in changed lines")

// Linter runs the lint tool over paths and returns its decoded violations.
type Linter interface {
	Check(ctx context.Context, paths []string, extraArgs []string) ([]domain.Violation, error)
}

// LineResolver computes the changed-lines map for a diff scope.
type LineResolver interface {
	ChangedLines(ctx context.Context, scope domain.DiffScope) (domain.ChangedLines, error)
}

// RepoLocator resolves the enclosing repository's working-tree root.
type RepoLocator interface {
	Root() (string, error)
}

// AnnotationWriter renders violations for GitHub Actions.
type AnnotationWriter interface {
	Write(violations []domain.Violation) error
}

// History records run summaries. Optional; a nil History disables it.
type History interface {
	CreateRun(ctx context.Context, run store.Run) error
	RecordViolations(ctx context.Context, violations []store.RunViolation) error
}

// Logger is the diagnostic sink for the orchestrator.
type Logger interface {
	LogDebug(ctx context.Context, message string, fields map[string]interface{})
	LogInfo(ctx context.Context, message string, fields map[string]interface{})
	LogWarning(ctx context.Context, message string, fields map[string]interface{})
	LogError(ctx context.Context, message string, fields map[string]interface{})
}

// Deps captures the orchestrator's collaborators.
type Deps struct {
	Linter      Linter
	Resolver    LineResolver
	Git         RepoLocator
	Annotations AnnotationWriter
	History     History
	Logger      Logger
	Out         io.Writer
	Now         func() time.Time
	Colorize    bool
}

// Request describes one filtering run.
type Request struct {
	Paths             []string
	Scope             domain.DiffScope
	ExtraLintArgs     []string
	AlwaysFailOn      []string
	GitHubAnnotations bool
}

// Result carries the outcome of a run.
type Result struct {
	Total int                // violations reported by the linter
	Kept  []domain.Violation // violations surviving the changed-lines filter
}

// Orchestrator glues linting, changed-lines resolution, filtering, and
// reporting together.
type Orchestrator struct {
	deps Deps
}

// NewOrchestrator constructs an Orchestrator.
func NewOrchestrator(deps Deps) *Orchestrator {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Orchestrator{deps: deps}
}

// Run lints the requested paths and reports only the violations whose
// lines were changed within the request's diff scope. Returns
// ErrViolationsFound when any violation survives filtering.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Result, error) {
	root, err := o.deps.Git.Root()
	if err != nil {
		return Result{}, err
	}
	ruff.WarnPathsOutsideRepo(ctx, req.Paths, root, o.deps.Logger)

	changed, err := o.deps.Resolver.ChangedLines(ctx, req.Scope)
	if err != nil {
		return Result{}, err
	}

	violations, err := o.deps.Linter.Check(ctx, req.Paths, req.ExtraLintArgs)
	if err != nil {
		return Result{}, err
	}
	normalizePaths(violations)

	kept := filter.Apply(violations, changed, req.AlwaysFailOn)
	result := Result{Total: len(violations), Kept: kept}

	o.recordHistory(ctx, req, root, result)

	if len(kept) == 0 {
		o.deps.Logger.LogInfo(ctx, "no violations in changed lines", map[string]interface{}{
			"total": result.Total,
		})
		return result, nil
	}

	o.deps.Logger.LogInfo(ctx, "violations found in changed lines", map[string]interface{}{
		"kept":  len(kept),
		"total": result.Total,
	})
	for _, v := range kept {
		if _, err := fmt.Fprintln(o.deps.Out, o.render(v)); err != nil {
			return result, fmt.Errorf("write violation: %w", err)
		}
	}

	if req.GitHubAnnotations && o.deps.Annotations != nil {
		if err := o.deps.Annotations.Write(kept); err != nil {
			return result, err
		}
	}
	return result, ErrViolationsFound
}

// normalizePaths makes violation paths absolute so they line up with the
// changed-lines map keys.
func normalizePaths(violations []domain.Violation) {
	for i := range violations {
		if abs, err := filepath.Abs(violations[i].Path); err == nil {
			violations[i].Path = abs
		}
	}
}

func (o *Orchestrator) render(v domain.Violation) string {
	if o.deps.Colorize {
		return "\033[31m" + v.String() + "\033[0m"
	}
	return v.String()
}

func (o *Orchestrator) recordHistory(ctx context.Context, req Request, root string, result Result) {
	if o.deps.History == nil {
		return
	}

	now := o.deps.Now()
	run := store.Run{
		RunID:           fmt.Sprintf("run-%d", now.UnixNano()),
		Timestamp:       now,
		Mode:            string(req.Scope.Mode()),
		Target:          req.Scope.Target(),
		Repository:      root,
		TotalViolations: result.Total,
		KeptViolations:  len(result.Kept),
	}
	if err := o.deps.History.CreateRun(ctx, run); err != nil {
		o.deps.Logger.LogWarning(ctx, "could not record run history", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	recorded := make([]store.RunViolation, 0, len(result.Kept))
	for _, v := range result.Kept {
		recorded = append(recorded, store.RunViolation{
			RunID:     run.RunID,
			ErrorCode: v.ErrorCode,
			Path:      v.Path,
			LineStart: v.LineStart,
			LineEnd:   v.LineEnd,
			Message:   v.Message,
		})
	}
	if err := o.deps.History.RecordViolations(ctx, recorded); err != nil {
		o.deps.Logger.LogWarning(ctx, "could not record run violations", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

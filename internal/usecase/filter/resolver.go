package filter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bkyoung/riff/internal/diff"
	"github.com/bkyoung/riff/internal/domain"
)

// Differ runs a diff query against a discovered repository.
type Differ interface {
	// Root returns the working-tree root of the enclosing repository.
	Root() (string, error)
	// Diff returns raw unified-diff text for the given scope.
	Diff(ctx context.Context, scope domain.DiffScope) (string, error)
}

// DiffParser parses unified-diff text into per-file hunks of tagged lines.
type DiffParser interface {
	Parse(patch string) ([]diff.FilePatch, error)
}

// Resolver computes the changed-lines map for a diff scope.
// Every call performs its own repository lookup and diff invocation;
// nothing is cached between calls.
type Resolver struct {
	git    Differ
	parser DiffParser
	logger Logger
}

// NewResolver constructs a Resolver.
func NewResolver(git Differ, parser DiffParser, logger Logger) *Resolver {
	return &Resolver{git: git, parser: parser, logger: logger}
}

// ChangedLines resolves which lines the scope's diff added, per file.
// Paths in the returned map are absolute (repository root joined with the
// patch path). An empty diff is a valid outcome and yields an empty map.
func (r *Resolver) ChangedLines(ctx context.Context, scope domain.DiffScope) (domain.ChangedLines, error) {
	root, err := r.git.Root()
	if err != nil {
		return nil, err
	}

	patch, err := r.git.Diff(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("git diff: %w", err)
	}

	patches, err := r.parser.Parse(patch)
	if err != nil {
		return nil, err
	}

	result := make(domain.ChangedLines, len(patches))
	total := 0
	for _, fp := range patches {
		lines := addedLines(fp)
		result[filepath.Join(root, fp.Path)] = lines
		total += len(lines)
	}

	if total == 0 {
		r.logger.LogWarning(ctx, "no changed lines detected", map[string]interface{}{
			"mode":       string(scope.Mode()),
			"target":     scope.Target(),
			"repository": root,
		})
		return result, nil
	}

	r.logger.LogDebug(ctx, "resolved changed lines", map[string]interface{}{
		"files": describe(result),
	})
	return result, nil
}

// addedLines collects the new-side numbers of added, non-blank lines.
// Blank additions cannot anchor a violation's line and would only match
// unrelated pre-existing findings, so they are excluded on purpose.
func addedLines(fp diff.FilePatch) domain.LineSet {
	set := make(domain.LineSet)
	for _, hunk := range fp.Hunks {
		for _, line := range hunk.Lines {
			if line.Kind != diff.LineAddition {
				continue
			}
			if strings.TrimSpace(line.Content) == "" {
				continue
			}
			if line.NewLine == nil {
				continue
			}
			set.Add(*line.NewLine)
		}
	}
	return set
}

func describe(changed domain.ChangedLines) map[string]interface{} {
	files := make(map[string]interface{}, len(changed))
	for path, lines := range changed {
		files[path] = lines.Sorted()
	}
	return files
}

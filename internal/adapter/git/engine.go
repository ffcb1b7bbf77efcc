package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	goGit "github.com/go-git/go-git/v5"

	"github.com/bkyoung/riff/internal/domain"
)

// ErrRepositoryNotFound reports that no git repository encloses the
// searched directory or any of its ancestors.
var ErrRepositoryNotFound = errors.New("no git repository found")

// Engine implements the filter.Differ port. Repository discovery goes
// through go-git; the diff itself shells out to the git CLI, which owns
// the whitespace-ignoring diff options.
type Engine struct {
	workDir string
}

// NewEngine constructs an Engine searching from the provided directory.
func NewEngine(workDir string) *Engine {
	if workDir == "" {
		workDir = "."
	}
	return &Engine{workDir: workDir}
}

// Root locates the enclosing repository by searching the work directory
// and its ancestors for git metadata, and returns the working-tree root.
func (e *Engine) Root() (string, error) {
	repo, err := goGit.PlainOpenWithOptions(e.workDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, goGit.ErrRepositoryNotExists) {
			abs, absErr := filepath.Abs(e.workDir)
			if absErr != nil {
				abs = e.workDir
			}
			return "", fmt.Errorf("%w in %s", ErrRepositoryNotFound, abs)
		}
		return "", fmt.Errorf("open repo: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("resolve worktree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}

// Diff returns unified-diff text for the scope. Blank-line-only and
// trailing-whitespace-only changes are ignored to cut reformatting noise.
func (e *Engine) Diff(ctx context.Context, scope domain.DiffScope) (string, error) {
	root, err := e.Root()
	if err != nil {
		return "", err
	}
	return runGitCommand(ctx, root, diffCommandArgs(scope)...)
}

func diffCommandArgs(scope domain.DiffScope) []string {
	args := append([]string{"diff"}, scope.DiffArgs()...)
	return append(args, "--ignore-blank-lines", "--ignore-space-at-eol")
}

func runGitCommand(ctx context.Context, repoDir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", repoDir}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("git %v: %w", args, ctx.Err())
		}
		if stderr.Len() > 0 {
			err = fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("git %v: %w", args, err)
	}
	return stdout.String(), nil
}

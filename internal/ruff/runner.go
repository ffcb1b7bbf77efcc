package ruff

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes the ruff binary.
type Runner struct {
	binary string
	logger Logger
}

// NewRunner constructs a Runner using the ruff binary found on PATH.
func NewRunner(logger Logger) *Runner {
	return &Runner{binary: "ruff", logger: logger}
}

// Run lints the given paths and returns ruff's JSON report from stdout.
// Ruff exits 1 when it finds violations; that is a normal outcome here.
func (r *Runner) Run(ctx context.Context, paths []string, extraArgs []string) (string, error) {
	args := append([]string{}, paths...)
	args = append(args, extraArgs...)
	args = append(args, "--format=json")

	r.logger.LogDebug(ctx, "running ruff", map[string]interface{}{
		"command": r.binary + " " + strings.Join(args, " "),
	})

	cmd := exec.CommandContext(ctx, r.binary, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return stdout.String(), nil
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("ruff %v: %w", args, ctx.Err())
		}
		if stderr.Len() > 0 {
			err = fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("ruff %v: %w", args, err)
	}
	return stdout.String(), nil
}

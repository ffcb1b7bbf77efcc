package ruff

import (
	"context"

	"github.com/bkyoung/riff/internal/domain"
)

// Client runs ruff over path groups and decodes its report.
type Client struct {
	runner *Runner
	logger Logger
}

// NewClient constructs a Client.
func NewClient(logger Logger) *Client {
	return &Client{runner: NewRunner(logger), logger: logger}
}

// Check lints the given paths and returns all reported violations.
// Paths are split into length-bounded groups so the assembled command
// line stays within platform limits.
func (c *Client) Check(ctx context.Context, paths []string, extraArgs []string) ([]domain.Violation, error) {
	groups, err := SplitPathsByMaxLen(paths, MaxCommandPathLength)
	if err != nil {
		return nil, err
	}

	var violations []domain.Violation
	for _, group := range groups {
		out, err := c.runner.Run(ctx, group, extraArgs)
		if err != nil {
			return nil, err
		}
		parsed, err := ParseOutput(ctx, out, c.logger)
		if err != nil {
			return nil, err
		}
		violations = append(violations, parsed...)
	}
	return violations, nil
}

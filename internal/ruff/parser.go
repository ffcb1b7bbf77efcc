package ruff

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bkyoung/riff/internal/domain"
)

// LinterName is the display name attached to every parsed violation.
const LinterName = "Ruff"

// Logger is the diagnostic sink used by this package.
type Logger interface {
	LogDebug(ctx context.Context, message string, fields map[string]interface{})
	LogWarning(ctx context.Context, message string, fields map[string]interface{})
	LogError(ctx context.Context, message string, fields map[string]interface{})
}

type rawLocation struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

type rawFix struct {
	Message string `json:"message"`
}

type rawViolation struct {
	Code        string      `json:"code"`
	Filename    string      `json:"filename"`
	Location    rawLocation `json:"location"`
	EndLocation rawLocation `json:"end_location"`
	Message     string      `json:"message"`
	Fix         *rawFix     `json:"fix"`
}

// ParseOutput decodes ruff's JSON report into violation records,
// preserving input order. Empty output means ruff reported nothing and
// yields an empty sequence, not an error.
func ParseOutput(ctx context.Context, raw string, logger Logger) ([]domain.Violation, error) {
	if raw == "" {
		logger.LogDebug(ctx, "no ruff output, assuming no violations", nil)
		return nil, nil
	}

	var decoded []rawViolation
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		logger.LogError(ctx, "could not parse ruff output as JSON", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("parse ruff output: %w", err)
	}

	violations := make([]domain.Violation, 0, len(decoded))
	for _, rv := range decoded {
		violations = append(violations, toViolation(rv))
	}
	logger.LogDebug(ctx, "parsed ruff violations", map[string]interface{}{
		"count": len(violations),
	})
	return violations, nil
}

func toViolation(rv rawViolation) domain.Violation {
	v := domain.Violation{
		ErrorCode:   rv.Code,
		Path:        rv.Filename,
		LineStart:   rv.Location.Row,
		LineEnd:     rv.EndLocation.Row,
		ColumnStart: rv.Location.Column,
		ColumnEnd:   rv.EndLocation.Column,
		Message:     rv.Message,
		LinterName:  LinterName,
	}
	if rv.Fix != nil {
		v.IsAutofixable = true
		v.FixSuggestion = rv.Fix.Message
	}
	return v
}

package filter

import (
	"sort"

	"github.com/bkyoung/riff/internal/domain"
)

// Apply keeps the violations whose start line is in the changed set for
// their file, or whose error code is in alwaysFailOn. Multi-line
// violations are judged on their start line only. The result is sorted by
// path, start line, then error code.
func Apply(violations []domain.Violation, changed domain.ChangedLines, alwaysFailOn []string) []domain.Violation {
	always := make(map[string]struct{}, len(alwaysFailOn))
	for _, code := range alwaysFailOn {
		always[code] = struct{}{}
	}

	kept := make([]domain.Violation, 0, len(violations))
	for _, v := range violations {
		if _, ok := always[v.ErrorCode]; ok {
			kept = append(kept, v)
			continue
		}
		if changed[v.Path].Contains(v.LineStart) {
			kept = append(kept, v)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].SortKey() < kept[j].SortKey()
	})
	return kept
}

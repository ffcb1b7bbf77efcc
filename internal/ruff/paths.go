package ruff

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// MaxCommandPathLength caps the joined length of one invocation's paths,
// keeping the assembled command line well under platform argument limits.
const MaxCommandPathLength = 4000

// SplitPathsByMaxLen splits paths into groups whose total length stays
// within maxLengthSum. Paths are de-duplicated and grouped shortest first.
// A single path longer than the cap is an error.
func SplitPathsByMaxLen(paths []string, maxLengthSum int) ([][]string, error) {
	unique := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		unique[p] = struct{}{}
	}
	ordered := make([]string, 0, len(unique))
	for p := range unique {
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) < len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})

	var groups [][]string
	var current []string
	currentSum := 0
	for _, p := range ordered {
		if len(p) >= maxLengthSum {
			return nil, fmt.Errorf("path is longer than %d: %s", maxLengthSum, p)
		}
		if currentSum+len(p) <= maxLengthSum {
			current = append(current, p)
			currentSum += len(p)
			continue
		}
		groups = append(groups, current)
		current = []string{p}
		currentSum = len(p)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups, nil
}

// WarnPathsOutsideRepo logs a warning for every lint path that does not
// live under the repository root. Such paths never match the changed-lines
// map and can lead to false negatives.
func WarnPathsOutsideRepo(ctx context.Context, paths []string, repoRoot string, logger Logger) {
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			logger.LogWarning(ctx, "could not resolve lint path", map[string]interface{}{
				"path": p, "error": err.Error(),
			})
			continue
		}
		rel, err := filepath.Rel(repoRoot, abs)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			logger.LogWarning(ctx, "lint path is outside the repository, may lead to false negatives", map[string]interface{}{
				"path": p, "repository": repoRoot,
			})
		}
	}
}

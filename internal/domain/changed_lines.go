package domain

import "sort"

// LineSet is an unordered set of 1-based line numbers.
type LineSet map[int]struct{}

// Add inserts a line number into the set.
func (s LineSet) Add(n int) {
	s[n] = struct{}{}
}

// Contains reports whether the set holds the given line number.
func (s LineSet) Contains(n int) bool {
	_, ok := s[n]
	return ok
}

// Sorted returns the set's line numbers in ascending order.
func (s LineSet) Sorted() []int {
	lines := make([]int, 0, len(s))
	for n := range s {
		lines = append(lines, n)
	}
	sort.Ints(lines)
	return lines
}

// ChangedLines maps absolute file paths to the line numbers that were
// newly added in the inspected diff. A file appears as a key whenever the
// diff reported a hunk for it, even if none of its changes qualify.
type ChangedLines map[string]LineSet

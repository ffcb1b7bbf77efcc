// Package diff parses multi-file unified diff text, as produced by
// git diff, into per-file hunks of tagged line entries carrying
// new-side line numbers.
package diff

package diff

import (
	"fmt"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"
)

// LineKind represents the type of a line in a diff hunk.
type LineKind int

const (
	// LineContext represents an unchanged context line (starts with ' ').
	LineContext LineKind = iota
	// LineAddition represents an added line (starts with '+').
	LineAddition
	// LineDeletion represents a deleted line (starts with '-').
	LineDeletion
)

// Line represents a single line in a diff hunk.
type Line struct {
	Kind    LineKind
	Content string // line content without the prefix character
	NewLine *int   // line number in the new file, nil for deletions
}

// Hunk represents a single @@ hunk in a unified diff.
type Hunk struct {
	NewStart int
	Lines    []Line
}

// FilePatch is the parsed diff for a single file.
type FilePatch struct {
	// Path is the new-side path with the "b/" prefix stripped.
	// Deleted files are keyed by their old-side path instead.
	Path  string
	Hunks []Hunk
}

// Parser implements the resolver's diff-parsing port.
type Parser struct{}

// NewParser returns a Parser.
func NewParser() Parser {
	return Parser{}
}

// Parse parses multi-file unified diff text into per-file patches.
func (Parser) Parse(patch string) ([]FilePatch, error) {
	return Parse(patch)
}

// Parse parses multi-file unified diff text into per-file patches.
// Empty input yields no patches.
func Parse(patch string) ([]FilePatch, error) {
	if strings.TrimSpace(patch) == "" {
		return nil, nil
	}

	fds, err := godiff.ParseMultiFileDiff([]byte(patch))
	if err != nil {
		return nil, fmt.Errorf("parse unified diff: %w", err)
	}

	patches := make([]FilePatch, 0, len(fds))
	for _, fd := range fds {
		fp := FilePatch{Path: filePath(fd)}
		for _, hunk := range fd.Hunks {
			fp.Hunks = append(fp.Hunks, parseHunk(hunk))
		}
		patches = append(patches, fp)
	}
	return patches, nil
}

func filePath(fd *godiff.FileDiff) string {
	if fd.NewName == "/dev/null" {
		return strings.TrimPrefix(fd.OrigName, "a/")
	}
	return strings.TrimPrefix(fd.NewName, "b/")
}

func parseHunk(h *godiff.Hunk) Hunk {
	hunk := Hunk{NewStart: int(h.NewStartLine)}

	newLine := int(h.NewStartLine)
	body := strings.TrimSuffix(string(h.Body), "\n")
	for _, raw := range strings.Split(body, "\n") {
		// "\ No newline at end of file"
		if strings.HasPrefix(raw, `\`) {
			continue
		}

		var line Line
		switch {
		case strings.HasPrefix(raw, "+"):
			line = Line{Kind: LineAddition, Content: raw[1:], NewLine: intPtr(newLine)}
			newLine++
		case strings.HasPrefix(raw, "-"):
			line = Line{Kind: LineDeletion, Content: raw[1:]}
		case strings.HasPrefix(raw, " "):
			line = Line{Kind: LineContext, Content: raw[1:], NewLine: intPtr(newLine)}
			newLine++
		default:
			// Tolerate a missing prefix and treat the line as context.
			line = Line{Kind: LineContext, Content: raw, NewLine: intPtr(newLine)}
			newLine++
		}
		hunk.Lines = append(hunk.Lines, line)
	}
	return hunk
}

func intPtr(n int) *int {
	return &n
}

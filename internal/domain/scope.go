package domain

import (
	"errors"
	"fmt"
)

// DiffMode selects how "changed" is defined for a resolution call.
type DiffMode string

const (
	// ModeBranch compares HEAD against a base branch.
	ModeBranch DiffMode = "branch"
	// ModeUnstaged inspects uncommitted, unstaged working-tree changes.
	ModeUnstaged DiffMode = "unstaged"
	// ModeStaged inspects changes staged in the index.
	ModeStaged DiffMode = "staged"
	// ModeRef compares against an arbitrary git reference.
	ModeRef DiffMode = "ref"
)

var (
	// ErrBaseBranchRequired is returned when a branch scope is built without a base branch.
	ErrBaseBranchRequired = errors.New("base_branch is required for BRANCH mode")
	// ErrDiffRefRequired is returned when a ref scope is built without a reference.
	ErrDiffRefRequired = errors.New("diff_ref is required for REF mode")
)

// DiffScope pairs a diff mode with its mode-specific comparison target.
// Construct scopes through the constructors below so an invalid
// mode/parameter combination cannot be represented.
type DiffScope struct {
	mode       DiffMode
	baseBranch string
	diffRef    string
}

// BranchScope builds a scope comparing HEAD against baseBranch.
func BranchScope(baseBranch string) (DiffScope, error) {
	if baseBranch == "" {
		return DiffScope{}, ErrBaseBranchRequired
	}
	return DiffScope{mode: ModeBranch, baseBranch: baseBranch}, nil
}

// UnstagedScope builds a scope over uncommitted, unstaged changes.
func UnstagedScope() DiffScope {
	return DiffScope{mode: ModeUnstaged}
}

// StagedScope builds a scope over changes staged in the index.
func StagedScope() DiffScope {
	return DiffScope{mode: ModeStaged}
}

// RefScope builds a scope comparing against an arbitrary reference.
func RefScope(diffRef string) (DiffScope, error) {
	if diffRef == "" {
		return DiffScope{}, ErrDiffRefRequired
	}
	return DiffScope{mode: ModeRef, diffRef: diffRef}, nil
}

// ScopeFor builds a DiffScope from a mode name and its optional targets.
func ScopeFor(mode DiffMode, baseBranch, diffRef string) (DiffScope, error) {
	switch mode {
	case ModeBranch:
		return BranchScope(baseBranch)
	case ModeUnstaged:
		return UnstagedScope(), nil
	case ModeStaged:
		return StagedScope(), nil
	case ModeRef:
		return RefScope(diffRef)
	default:
		return DiffScope{}, fmt.Errorf("unknown diff mode %q", mode)
	}
}

// Mode returns the scope's diff mode.
func (s DiffScope) Mode() DiffMode {
	return s.mode
}

// Target returns the comparison target for modes that take one,
// and the empty string for unstaged and staged scopes.
func (s DiffScope) Target() string {
	switch s.mode {
	case ModeBranch:
		return s.baseBranch
	case ModeRef:
		return s.diffRef
	default:
		return ""
	}
}

// DiffArgs returns the git diff arguments selecting this scope:
// the base branch or reference as a single positional argument,
// --cached for staged scopes, nothing for unstaged scopes.
func (s DiffScope) DiffArgs() []string {
	switch s.mode {
	case ModeBranch:
		return []string{s.baseBranch}
	case ModeStaged:
		return []string{"--cached"}
	case ModeRef:
		return []string{s.diffRef}
	default:
		return nil
	}
}

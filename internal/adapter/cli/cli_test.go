package cli_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/riff/internal/adapter/cli"
	"github.com/bkyoung/riff/internal/domain"
	runuc "github.com/bkyoung/riff/internal/usecase/run"
)

type fakeChecker struct {
	req    runuc.Request
	called bool
	err    error
}

func (f *fakeChecker) Run(ctx context.Context, req runuc.Request) (runuc.Result, error) {
	f.called = true
	f.req = req
	return runuc.Result{}, f.err
}

func newTestRoot(checker *fakeChecker, defaults cli.Defaults, args ...string) (*bytes.Buffer, *bytes.Buffer, error) {
	var out, errOut bytes.Buffer
	root := cli.NewRootCommand(cli.Dependencies{
		Checker:  checker,
		Args:     cli.Arguments{OutWriter: &out, ErrWriter: &errOut},
		Defaults: defaults,
		Version:  "v1.2.3",
	})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return &out, &errOut, err
}

func TestVersionFlag(t *testing.T) {
	checker := &fakeChecker{}
	out, _, err := newTestRoot(checker, cli.Defaults{}, "--version")

	assert.True(t, errors.Is(err, cli.ErrVersionRequested))
	assert.Contains(t, out.String(), "v1.2.3")
	assert.False(t, checker.called)
}

func TestCheck_DefaultsToBranchMode(t *testing.T) {
	checker := &fakeChecker{}
	_, _, err := newTestRoot(checker, cli.Defaults{BaseBranch: "origin/develop"}, "check", "src")

	require.NoError(t, err)
	require.True(t, checker.called)
	assert.Equal(t, []string{"src"}, checker.req.Paths)
	assert.Equal(t, domain.ModeBranch, checker.req.Scope.Mode())
	assert.Equal(t, "origin/develop", checker.req.Scope.Target())
}

func TestCheck_StagedMode(t *testing.T) {
	checker := &fakeChecker{}
	_, _, err := newTestRoot(checker, cli.Defaults{}, "check", "--mode", "staged", "a.py", "b.py")

	require.NoError(t, err)
	assert.Equal(t, domain.ModeStaged, checker.req.Scope.Mode())
	assert.Equal(t, []string{"a.py", "b.py"}, checker.req.Paths)
}

func TestCheck_RefModeRequiresRef(t *testing.T) {
	checker := &fakeChecker{}
	_, _, err := newTestRoot(checker, cli.Defaults{}, "check", "--mode", "ref", "src")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDiffRefRequired))
	assert.False(t, checker.called)
}

func TestCheck_UnknownMode(t *testing.T) {
	checker := &fakeChecker{}
	_, _, err := newTestRoot(checker, cli.Defaults{}, "check", "--mode", "sideways", "src")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown diff mode")
	assert.False(t, checker.called)
}

func TestCheck_FlagPlumbing(t *testing.T) {
	checker := &fakeChecker{}
	_, _, err := newTestRoot(checker, cli.Defaults{},
		"check", "--mode", "ref", "--diff-ref", "HEAD~2",
		"--ruff-arg", "--select=E", "--always-fail-on", "E999,F821",
		"--github-annotations", "src")

	require.NoError(t, err)
	assert.Equal(t, domain.ModeRef, checker.req.Scope.Mode())
	assert.Equal(t, "HEAD~2", checker.req.Scope.Target())
	assert.Equal(t, []string{"--select=E"}, checker.req.ExtraLintArgs)
	assert.Equal(t, []string{"E999", "F821"}, checker.req.AlwaysFailOn)
	assert.True(t, checker.req.GitHubAnnotations)
}

func TestCheck_PropagatesViolationsFound(t *testing.T) {
	checker := &fakeChecker{err: runuc.ErrViolationsFound}
	_, _, err := newTestRoot(checker, cli.Defaults{}, "check", "src")

	assert.True(t, errors.Is(err, runuc.ErrViolationsFound))
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bkyoung/riff/internal/domain"
	runuc "github.com/bkyoung/riff/internal/usecase/run"
)

// ErrVersionRequested indicates the user requested the CLI version and no
// further work should be done.
var ErrVersionRequested = errors.New("version requested")

// Checker runs the lint-and-filter pipeline.
type Checker interface {
	Run(ctx context.Context, req runuc.Request) (runuc.Result, error)
}

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Defaults holds flag defaults sourced from configuration.
type Defaults struct {
	Mode              string
	BaseBranch        string
	ExtraLintArgs     []string
	AlwaysFailOn      []string
	GitHubAnnotations bool
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Checker  Checker
	Args     Arguments
	Defaults Defaults
	Version  string
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "riff",
		Short: "Run Ruff, report only violations on changed lines",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(checkCommand(deps.Checker, deps.Defaults))

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.PreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

func checkCommand(checker Checker, defaults Defaults) *cobra.Command {
	var mode string
	var baseBranch string
	var diffRef string
	var extraLintArgs []string
	var alwaysFailOn []string
	var githubAnnotations bool

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Lint paths and keep only violations on changed lines",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := domain.ScopeFor(domain.DiffMode(mode), baseBranch, diffRef)
			if err != nil {
				return err
			}

			_, err = checker.Run(cmd.Context(), runuc.Request{
				Paths:             args,
				Scope:             scope,
				ExtraLintArgs:     extraLintArgs,
				AlwaysFailOn:      alwaysFailOn,
				GitHubAnnotations: githubAnnotations,
			})
			return err
		},
	}

	defaultMode := defaults.Mode
	if defaultMode == "" {
		defaultMode = string(domain.ModeBranch)
	}
	defaultBranch := defaults.BaseBranch
	if defaultBranch == "" {
		defaultBranch = "origin/main"
	}

	cmd.Flags().StringVar(&mode, "mode", defaultMode, "Diff mode: branch, unstaged, staged, or ref")
	cmd.Flags().StringVar(&baseBranch, "base-branch", defaultBranch, "Base branch to diff against (branch mode)")
	cmd.Flags().StringVar(&diffRef, "diff-ref", "", "Git reference to diff against (ref mode)")
	cmd.Flags().StringArrayVar(&extraLintArgs, "ruff-arg", defaults.ExtraLintArgs, "Extra argument passed through to ruff (repeatable)")
	cmd.Flags().StringSliceVar(&alwaysFailOn, "always-fail-on", defaults.AlwaysFailOn, "Error codes reported even outside changed lines")
	cmd.Flags().BoolVar(&githubAnnotations, "github-annotations", defaults.GitHubAnnotations, "Emit GitHub Actions error annotations")

	return cmd
}

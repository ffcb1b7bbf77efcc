package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bkyoung/riff/internal/adapter/annotation"
	"github.com/bkyoung/riff/internal/adapter/cli"
	"github.com/bkyoung/riff/internal/adapter/git"
	"github.com/bkyoung/riff/internal/adapter/observability"
	"github.com/bkyoung/riff/internal/adapter/store/sqlite"
	"github.com/bkyoung/riff/internal/config"
	"github.com/bkyoung/riff/internal/diff"
	"github.com/bkyoung/riff/internal/ruff"
	"github.com/bkyoung/riff/internal/usecase/filter"
	runuc "github.com/bkyoung/riff/internal/usecase/run"
	"github.com/bkyoung/riff/internal/version"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, runuc.ErrViolationsFound) {
			os.Exit(1)
		}
		// Environment and configuration errors are reported once,
		// without a stack trace.
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	// Cancellable context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "riff",
		EnvPrefix:   "RIFF",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	logger := buildLogger(cfg.Observability.Logging)

	gitEngine := git.NewEngine(cfg.Git.RepositoryDir)
	resolver := filter.NewResolver(gitEngine, diff.NewParser(), logger)
	linter := ruff.NewClient(logger)

	// Run history is best effort; a broken store never blocks linting.
	var history runuc.History
	if cfg.History.Enabled {
		historyDir := filepath.Dir(cfg.History.Path)
		if err := os.MkdirAll(historyDir, 0o755); err != nil {
			log.Printf("warning: failed to create history directory: %v", err)
		} else if s, err := sqlite.NewStore(cfg.History.Path); err != nil {
			log.Printf("warning: failed to initialize history store: %v", err)
		} else {
			history = s
			defer s.Close()
		}
	}

	orchestrator := runuc.NewOrchestrator(runuc.Deps{
		Linter:      linter,
		Resolver:    resolver,
		Git:         gitEngine,
		Annotations: annotation.NewWriter(os.Stdout),
		History:     history,
		Logger:      logger,
		Out:         os.Stdout,
		Colorize:    runuc.IsOutputTerminal(),
	})

	root := cli.NewRootCommand(cli.Dependencies{
		Checker: orchestrator,
		Defaults: cli.Defaults{
			Mode:              cfg.Diff.Mode,
			BaseBranch:        cfg.Diff.BaseBranch,
			ExtraLintArgs:     cfg.Lint.ExtraArgs,
			AlwaysFailOn:      cfg.Lint.AlwaysFailOn,
			GitHubAnnotations: cfg.Output.GitHubAnnotations,
		},
		Version: version.Value(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		return err
	}
	return nil
}

func buildLogger(cfg config.LoggingConfig) runuc.Logger {
	if !cfg.Enabled {
		return observability.NewNopLogger()
	}
	return observability.NewDefaultLogger(
		observability.ParseLevel(cfg.Level),
		observability.ParseFormat(cfg.Format),
	)
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "riff"))
	}
	return paths
}

// Compile-time interface compliance checks
var _ filter.Differ = (*git.Engine)(nil)
var _ filter.DiffParser = diff.Parser{}
var _ runuc.Linter = (*ruff.Client)(nil)
var _ runuc.LineResolver = (*filter.Resolver)(nil)
var _ runuc.History = (*sqlite.Store)(nil)
var _ runuc.AnnotationWriter = (*annotation.Writer)(nil)
var _ runuc.Logger = (*observability.DefaultLogger)(nil)
var _ runuc.Logger = observability.NopLogger{}
var _ cli.Checker = (*runuc.Orchestrator)(nil)

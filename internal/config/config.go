package config

// Config represents the full application configuration.
type Config struct {
	Git           GitConfig           `yaml:"git"`
	Diff          DiffConfig          `yaml:"diff"`
	Lint          LintConfig          `yaml:"lint"`
	Output        OutputConfig        `yaml:"output"`
	History       HistoryConfig       `yaml:"history"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// GitConfig selects the repository the diff queries run against.
type GitConfig struct {
	RepositoryDir string `yaml:"repositoryDir"`
}

// DiffConfig holds the default diff scope.
type DiffConfig struct {
	Mode       string `yaml:"mode"`
	BaseBranch string `yaml:"baseBranch"`
}

// LintConfig configures the ruff invocation and filtering policy.
type LintConfig struct {
	ExtraArgs    []string `yaml:"extraArgs"`
	AlwaysFailOn []string `yaml:"alwaysFailOn"`
}

// OutputConfig configures reporting.
type OutputConfig struct {
	GitHubAnnotations bool `yaml:"githubAnnotations"`
}

// HistoryConfig configures the optional run-history store.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ObservabilityConfig configures logging.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(LoaderOptions{ConfigPaths: []string{t.TempDir()}})
	require.NoError(t, err)

	assert.Equal(t, "branch", cfg.Diff.Mode)
	assert.Equal(t, "origin/main", cfg.Diff.BaseBranch)
	assert.False(t, cfg.Output.GitHubAnnotations)
	assert.False(t, cfg.History.Enabled)
	assert.NotEmpty(t, cfg.History.Path)
	assert.True(t, cfg.Observability.Logging.Enabled)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.Equal(t, "human", cfg.Observability.Logging.Format)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	contents := `
diff:
  mode: staged
lint:
  extraArgs:
    - --select=E
  alwaysFailOn:
    - E999
output:
  githubAnnotations: true
observability:
  logging:
    level: debug
    format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "riff.yaml"), []byte(contents), 0o644))

	cfg, err := Load(LoaderOptions{ConfigPaths: []string{dir}})
	require.NoError(t, err)

	assert.Equal(t, "staged", cfg.Diff.Mode)
	assert.Equal(t, []string{"--select=E"}, cfg.Lint.ExtraArgs)
	assert.Equal(t, []string{"E999"}, cfg.Lint.AlwaysFailOn)
	assert.True(t, cfg.Output.GitHubAnnotations)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "riff.yaml"), []byte("diff: ["), 0o644))

	_, err := Load(LoaderOptions{ConfigPaths: []string{dir}})
	assert.Error(t, err)
}

func TestExpandEnvString(t *testing.T) {
	t.Setenv("RIFF_TEST_BRANCH", "origin/release")
	t.Setenv("RIFF_TEST_DIR", "/srv/checkout")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "expand ${VAR} syntax", input: "${RIFF_TEST_BRANCH}", expected: "origin/release"},
		{name: "expand $VAR syntax", input: "$RIFF_TEST_BRANCH", expected: "origin/release"},
		{name: "expand in middle of string", input: "dir:${RIFF_TEST_DIR}:end", expected: "dir:/srv/checkout:end"},
		{name: "leave non-existent var unchanged", input: "${RIFF_NONEXISTENT_VAR}", expected: "${RIFF_NONEXISTENT_VAR}"},
		{name: "handle empty string", input: "", expected: ""},
		{name: "plain string untouched", input: "origin/main", expected: "origin/main"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvString(tt.input))
		})
	}
}

func TestExpandEnvVars_Config(t *testing.T) {
	t.Setenv("RIFF_TEST_BASE", "origin/trunk")

	cfg := Config{}
	cfg.Diff.BaseBranch = "${RIFF_TEST_BASE}"
	cfg.Lint.AlwaysFailOn = []string{"$RIFF_TEST_BASE"}

	expanded := expandEnvVars(cfg)
	assert.Equal(t, "origin/trunk", expanded.Diff.BaseBranch)
	assert.Equal(t, []string{"origin/trunk"}, expanded.Lint.AlwaysFailOn)
}

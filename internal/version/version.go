package version

// version is overridden at build time via
// -ldflags "-X github.com/bkyoung/riff/internal/version.version=v1.2.3".
var version = "v0.0.0"

// Value returns the CLI version string.
func Value() string {
	return version
}

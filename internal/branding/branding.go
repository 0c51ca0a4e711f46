// Package branding provides compile-time identity values for the CLI.
package branding

import "strings"

const (
	cliName     = "lassolink"
	displayName = "Lassolink"
	description = "Link the system lasso Python bindings into a virtualenv"
	homeDir     = ".lassolink"
	envPrefix   = "LASSOLINK"
	gitHubRepo  = "entrouvert/lassolink"
)

// CLIName returns the root command name (e.g., "lassolink").
func CLIName() string { return cliName }

// DisplayName returns the human-readable product name.
func DisplayName() string { return displayName }

// Description returns the short product description.
func Description() string { return description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".lassolink").
func HomeDir() string { return homeDir }

// EnvPrefix returns the environment variable prefix (e.g., "LASSOLINK").
func EnvPrefix() string { return envPrefix }

// GitHubRepo returns the "owner/repo" string.
func GitHubRepo() string { return gitHubRepo }

// EnvVar returns a fully qualified env var name,
// e.g., EnvVar("venv_python") → "LASSOLINK_VENV_PYTHON".
func EnvVar(suffix string) string {
	return envPrefix + "_" + strings.ToUpper(suffix)
}

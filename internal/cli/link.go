package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/entrouvert/lassolink/internal/branding"
	"github.com/entrouvert/lassolink/internal/config"
	"github.com/entrouvert/lassolink/internal/linker"
	"github.com/entrouvert/lassolink/internal/pyenv"
	"github.com/spf13/cobra"
)

var (
	linkPython       string
	linkSystemPython string
	linkForce        bool
	linkBestEffort   bool
)

func init() {
	for _, cmd := range []*cobra.Command{linkRunCmd, linkStatusCmd, linkRemoveCmd} {
		cmd.Flags().StringVar(&linkPython, "python", "", "Virtualenv interpreter (skips PATH discovery)")
		cmd.Flags().StringVar(&linkSystemPython, "system-python", "", "System interpreter (skips PATH discovery)")
	}
	linkRunCmd.Flags().BoolVar(&linkForce, "force", false, "Replace non-symlink files at the destination")
	linkRunCmd.Flags().BoolVar(&linkBestEffort, "best-effort", false, "Keep going and exit 0 on individual link failures")

	linkCmd.AddCommand(linkRunCmd)
	linkCmd.AddCommand(linkStatusCmd)
	linkCmd.AddCommand(linkRemoveCmd)
	rootCmd.AddCommand(linkCmd)
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Manage the lasso symlinks in the active virtualenv",
	Long: `Link the lasso bindings from the system site-packages directory into the
active virtualenv's site-packages, inspect the current link state, or remove
the links again.`,
}

var linkRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Create or refresh the symlinks",
	Long: `Resolve the virtualenv and system interpreters, remove whatever occupies
the destination entries, and create fresh symlinks for every file matching
the configured patterns (lasso.* and _lasso.* by default).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := resolveEnv(ctx)
		if err != nil {
			return err
		}

		total := 0
		for _, spec := range specsFor(env) {
			actions, err := linker.Plan(spec)
			if err != nil {
				return err
			}
			applied, err := linker.Apply(actions, linker.ApplyOptions{
				Force:      linkForce,
				BestEffort: linkBestEffort,
			})
			if err != nil {
				return err
			}
			total += applied
		}

		if total == 0 && !linkBestEffort {
			return fmt.Errorf("no lasso bindings found in %s (is the distro package installed?)", env.System.Platlib)
		}

		fmt.Printf("Linked %d entries into %s\n", total, env.Venv.Purelib)
		return nil
	},
}

var linkStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the links",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := resolveEnv(cmd.Context())
		if err != nil {
			return err
		}

		healthy := true
		for _, spec := range specsFor(env) {
			statuses, err := linker.Status(spec)
			if err != nil {
				return err
			}
			for _, s := range statuses {
				fmt.Printf("  [%s] %-32s %s\n", statusIcon(s.State), s.Name, s.State)
			}
			if !linker.Healthy(statuses) {
				healthy = false
			}
		}

		if !healthy {
			return fmt.Errorf("links are not healthy (run '%s link run')", branding.CLIName())
		}
		return nil
	},
}

var linkRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the symlinks from the virtualenv",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := resolveEnv(cmd.Context())
		if err != nil {
			return err
		}

		total := 0
		for _, spec := range specsFor(env) {
			removed, skipped, err := linker.Remove(spec)
			if err != nil {
				return err
			}
			total += len(removed)
			for _, s := range skipped {
				fmt.Printf("Skipped %s (not a link into the system site-packages)\n", s)
			}
		}

		fmt.Printf("Removed %d entries\n", total)
		return nil
	},
}

// resolveEnv discovers the interpreter pair, honoring the --python and
// --system-python flags through the same override channel the env vars use.
func resolveEnv(ctx context.Context) (*pyenv.Env, error) {
	if linkPython != "" {
		os.Setenv(branding.EnvVar("venv_python"), linkPython)
	}
	if linkSystemPython != "" {
		os.Setenv(branding.EnvVar("system_python"), linkSystemPython)
	}
	return pyenv.Discover(ctx)
}

// specsFor pairs each system site-packages directory with its virtualenv
// counterpart. On most installs purelib and platlib coincide and this is a
// single spec.
func specsFor(env *pyenv.Env) []linker.Spec {
	patterns := config.Patterns()

	pairs := [][2]string{
		{env.System.Purelib, env.Venv.Purelib},
		{env.System.Platlib, env.Venv.Platlib},
	}

	seen := make(map[string]bool)
	var specs []linker.Spec
	for _, p := range pairs {
		key := p[0] + "\x00" + p[1]
		if seen[key] {
			continue
		}
		seen[key] = true
		specs = append(specs, linker.Spec{
			SourceDir: p[0],
			DestDir:   p[1],
			Patterns:  patterns,
		})
	}
	return specs
}

func statusIcon(state linker.EntryState) string {
	switch state {
	case linker.StateLinked:
		return "OK"
	case linker.StateMissing:
		return "--"
	default:
		return "!!"
	}
}

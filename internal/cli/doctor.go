package cli

import (
	"fmt"
	"os/exec"

	"github.com/entrouvert/lassolink/internal/config"
	"github.com/entrouvert/lassolink/internal/linker"
	"github.com/entrouvert/lassolink/internal/platform"
	"github.com/entrouvert/lassolink/internal/pyenv"
	"github.com/spf13/cobra"
)

var (
	checkRuntime bool
	checkPython  bool
	checkLinks   bool
	minPython    string
)

func init() {
	doctorCmd.Flags().BoolVar(&checkRuntime, "check-runtime", false, "Verify required binaries are on PATH")
	doctorCmd.Flags().BoolVar(&checkPython, "check-python", false, "Verify interpreters and the lasso bindings")
	doctorCmd.Flags().BoolVar(&checkLinks, "check-links", false, "Verify symlinks intact")
	doctorCmd.Flags().StringVar(&minPython, "min-python", "", "Minimum interpreter version (defaults to config)")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the linker setup",
	Long:  `Run diagnostic checks on the Python environments and the lasso links.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		anyFlag := checkRuntime || checkPython || checkLinks

		// If no specific flag, run all checks.
		if !anyFlag {
			runRuntimeCheck()
			runPythonCheck(cmd)
			runLinksCheck(cmd)
			return nil
		}

		if checkRuntime {
			runRuntimeCheck()
		}
		if checkPython {
			runPythonCheck(cmd)
		}
		if checkLinks {
			runLinksCheck(cmd)
		}
		return nil
	},
}

func runRuntimeCheck() {
	fmt.Println("Runtime check:")
	checkBinary("python3")
	checkBinary("tox")
	checkBinary("git")

	if platform.SymlinksSupported() {
		fmt.Println("  [ OK ] symlinks supported")
	} else {
		fmt.Println("  [FAIL] symlinks not supported (enable developer mode)")
	}
}

func checkBinary(name string) {
	path, err := exec.LookPath(name)
	if err != nil {
		fmt.Printf("  [MISS] %s not found\n", name)
		return
	}
	fmt.Printf("  [ OK ] %s found at %s\n", name, path)
}

func runPythonCheck(cmd *cobra.Command) {
	fmt.Println("Python check:")

	env, err := resolveEnv(cmd.Context())
	if err != nil {
		fmt.Printf("  [FAIL] %v\n", err)
		return
	}
	fmt.Printf("  [ OK ] virtualenv python %s (%s)\n", env.Venv.Path, env.Venv.Version)
	fmt.Printf("  [ OK ] system python %s (%s)\n", env.System.Path, env.System.Version)

	min := minPython
	if min == "" {
		min = config.MinPython()
	}
	ok, err := env.Venv.VersionAtLeast(min)
	switch {
	case err != nil:
		fmt.Printf("  [WARN] cannot compare interpreter version: %v\n", err)
	case ok:
		fmt.Printf("  [ OK ] interpreter version >= %s\n", min)
	default:
		fmt.Printf("  [FAIL] interpreter version %s < required %s\n", env.Venv.Version, min)
	}

	importable, err := pyenv.ImportCheck(cmd.Context(), env.System.Path, "lasso")
	switch {
	case err != nil:
		fmt.Printf("  [WARN] cannot probe lasso import: %v\n", err)
	case importable:
		fmt.Println("  [ OK ] system python imports lasso")
	default:
		fmt.Println("  [MISS] system python cannot import lasso (install the distro package)")
	}
}

func runLinksCheck(cmd *cobra.Command) {
	fmt.Println("Links check:")

	env, err := resolveEnv(cmd.Context())
	if err != nil {
		fmt.Printf("  [FAIL] %v\n", err)
		return
	}

	for _, spec := range specsFor(env) {
		statuses, err := linker.Status(spec)
		if err != nil {
			fmt.Printf("  [FAIL] %v\n", err)
			continue
		}
		if len(statuses) == 0 {
			fmt.Printf("  [MISS] nothing matches the patterns in %s\n", spec.SourceDir)
			continue
		}
		for _, s := range statuses {
			switch s.State {
			case linker.StateLinked:
				fmt.Printf("  [ OK ] %s\n", s.Name)
			case linker.StateMissing:
				fmt.Printf("  [MISS] %s not linked\n", s.Name)
			default:
				fmt.Printf("  [WARN] %s is %s\n", s.Name, s.State)
			}
		}
	}
}

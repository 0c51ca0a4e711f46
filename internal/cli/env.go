package cli

import (
	"fmt"
	"os"

	"github.com/entrouvert/lassolink/internal/pyenv"
	"github.com/spf13/cobra"
)

func init() {
	envCmd.Flags().StringVar(&linkPython, "python", "", "Virtualenv interpreter (skips PATH discovery)")
	envCmd.Flags().StringVar(&linkSystemPython, "system-python", "", "System interpreter (skips PATH discovery)")
	rootCmd.AddCommand(envCmd)
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the discovered Python environments",
	Long: `Show the virtualenv and system interpreters the linker would use, with
their site-packages directories and the ordered PATH they were found on.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := resolveEnv(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("Virtualenv:")
		printInterpreter(env.Venv)
		fmt.Println("System:")
		printInterpreter(env.System)

		entries := pyenv.SplitPath(os.Getenv("PATH"))
		if len(entries) > 0 {
			fmt.Println("PATH:")
			for i, e := range entries {
				marker := " "
				if i == 0 {
					marker = "*" // a virtualenv prepends its bin dir
				}
				fmt.Printf("  %s %s\n", marker, e)
			}
		}
		return nil
	},
}

func printInterpreter(i *pyenv.Interpreter) {
	fmt.Printf("  python:  %s (%s)\n", i.Path, i.Version)
	fmt.Printf("  prefix:  %s\n", i.Prefix)
	for _, sp := range i.SitePackages() {
		fmt.Printf("  site:    %s\n", sp)
	}
}

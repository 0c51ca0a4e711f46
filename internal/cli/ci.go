package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/entrouvert/lassolink/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	ciConfigPath string
	ciJobName    string
	ciBranch     string
	ciWorkspace  string
)

func init() {
	ciRunCmd.Flags().StringVar(&ciConfigPath, "config", pipeline.DefaultConfigFile, "Pipeline config file")
	ciRunCmd.Flags().StringVar(&ciJobName, "job", os.Getenv("CI_JOB_NAME"), "Job name (defaults to $CI_JOB_NAME)")
	ciRunCmd.Flags().StringVar(&ciBranch, "branch", os.Getenv("CI_BRANCH"), "Branch under test (defaults to $CI_BRANCH)")
	ciRunCmd.Flags().StringVar(&ciWorkspace, "workspace", ".", "Workspace directory")

	ciValidateCmd.Flags().StringVar(&ciConfigPath, "config", pipeline.DefaultConfigFile, "Pipeline config file")

	ciCmd.AddCommand(ciRunCmd)
	ciCmd.AddCommand(ciValidateCmd)
	rootCmd.AddCommand(ciCmd)
}

var ciCmd = &cobra.Command{
	Use:   "ci",
	Short: "Run or validate the CI pipeline",
	Long: `Drive the CI sequence described by the pipeline config: run the test
harness, publish coverage/lint artifacts and a merged JUnit report, invoke
packaging when the job name and branch match, notify by mail, and clean the
workspace on success.`,
}

var ciRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the pipeline",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pipeline.Load(ciConfigPath)
		if err != nil {
			return err
		}

		runner := pipeline.NewRunner(cfg, ciWorkspace, ciJobName, ciBranch)
		result, runErr := runner.Run(cmd.Context())

		// Notification is a post-action: always attempted, never blocks the
		// pipeline outcome.
		if result != nil {
			if notifyErr := pipeline.Notify(cmd.Context(), cfg.Notify, result); notifyErr != nil {
				slog.Warn("build notification failed", "error", notifyErr)
			}
		}

		if runErr != nil {
			return runErr
		}
		if !result.TestsPassed {
			return fmt.Errorf("test harness failed (job %s)", result.Job)
		}

		fmt.Printf("Pipeline %s finished: %s\n", result.Job, result.Status())
		return nil
	},
}

var ciValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a pipeline config without running it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(ciConfigPath)
		if err != nil {
			return fmt.Errorf("reading pipeline config %s: %w", ciConfigPath, err)
		}

		result, err := pipeline.Validate(data)
		if err != nil {
			return err
		}

		if result.Valid {
			fmt.Printf("  [ OK ] %s is valid\n", ciConfigPath)
			return nil
		}

		fmt.Printf("  [FAIL] %d validation issue(s):\n", len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Path != "" {
				fmt.Printf("    - %s: %s\n", issue.Path, issue.Message)
			} else {
				fmt.Printf("    - %s\n", issue.Message)
			}
		}
		return fmt.Errorf("%s has %d validation issue(s)", ciConfigPath, len(result.Issues))
	},
}

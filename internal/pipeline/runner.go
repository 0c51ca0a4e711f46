package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// Result captures what a pipeline run did, for reporting and notification.
type Result struct {
	Job         string
	Branch      string
	TestsPassed bool
	JUnit       *JUnitSummary // nil when no reports were found
	Artifacts   []string      // collected artifact destinations
	Packaged    bool
	Cleaned     bool
}

// Status is the one-word outcome used in notifications.
func (r *Result) Status() string {
	if r.TestsPassed {
		return "SUCCESS"
	}
	return "FAILURE"
}

// Runner executes a pipeline config inside a workspace.
type Runner struct {
	Config    *Config
	Workspace string
	JobName   string // defaults to Config.Job
	Branch    string
	Out       io.Writer // progress output; defaults to os.Stdout

	// execCommand runs one external command; tests replace it.
	execCommand func(ctx context.Context, argv []string, dir string, out io.Writer) error
}

// NewRunner builds a Runner for the given config and workspace.
func NewRunner(cfg *Config, workspace, jobName, branch string) *Runner {
	if jobName == "" {
		jobName = cfg.Job
	}
	return &Runner{
		Config:      cfg,
		Workspace:   workspace,
		JobName:     jobName,
		Branch:      branch,
		Out:         os.Stdout,
		execCommand: runCommand,
	}
}

// Run executes the pipeline: test harness, report collection, gated
// packaging, and workspace cleanup. Reports are collected even when the
// harness fails, matching the always-publish behavior of the original
// pipeline. The error return is for infrastructure failures; test failures
// are reported through Result.TestsPassed.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}

	result := &Result{Job: r.JobName, Branch: r.Branch}

	fmt.Fprintf(out, "Running test harness: %v\n", r.Config.Test.Command)
	testErr := r.execCommand(ctx, r.Config.Test.Command, r.Workspace, out)
	result.TestsPassed = testErr == nil
	if testErr != nil {
		slog.Warn("test harness failed", "job", r.JobName, "error", testErr)
	}

	// Reports are published regardless of the harness outcome.
	if err := r.collectReports(result, out); err != nil {
		return result, err
	}

	if result.TestsPassed {
		packaged, err := r.runPackaging(ctx, out)
		if err != nil {
			return result, err
		}
		result.Packaged = packaged

		if err := r.clean(out); err != nil {
			return result, err
		}
		result.Cleaned = len(r.Config.Clean.Paths) > 0
	}

	return result, nil
}

// collectReports copies artifacts into the reports dir and merges JUnit files.
func (r *Runner) collectReports(result *Result, out io.Writer) error {
	cfg := r.Config.Reports
	reportsDir := filepath.Join(r.Workspace, cfg.Dir)

	if len(cfg.Artifacts) == 0 && cfg.JUnitGlob == "" {
		return nil
	}
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return fmt.Errorf("creating reports dir %s: %w", reportsDir, err)
	}

	for _, artifact := range cfg.Artifacts {
		src := filepath.Join(r.Workspace, artifact.Path)
		dst := filepath.Join(reportsDir, filepath.Base(artifact.Path))
		if err := copyArtifact(src, dst); err != nil {
			// Missing lint/coverage output is reported, not fatal.
			slog.Warn("artifact not collected", "name", artifact.Name, "error", err)
			continue
		}
		result.Artifacts = append(result.Artifacts, dst)
		fmt.Fprintf(out, "Collected %s -> %s\n", artifact.Name, dst)
	}

	if cfg.JUnitGlob == "" {
		return nil
	}
	inputs, err := filepath.Glob(filepath.Join(r.Workspace, cfg.JUnitGlob))
	if err != nil {
		return fmt.Errorf("bad junit glob %q: %w", cfg.JUnitGlob, err)
	}
	if len(inputs) == 0 {
		slog.Warn("no junit reports matched", "glob", cfg.JUnitGlob)
		return nil
	}

	mergedPath := filepath.Join(reportsDir, cfg.MergedJUnit)
	summary, err := MergeJUnit(inputs, mergedPath)
	if err != nil {
		return err
	}
	result.JUnit = summary
	fmt.Fprintf(out, "Merged %d junit reports into %s (%d tests, %d failures, %d errors)\n",
		len(inputs), mergedPath, summary.Tests, summary.Failures, summary.Errors)
	return nil
}

// runPackaging invokes the packaging command when the gate matches.
func (r *Runner) runPackaging(ctx context.Context, out io.Writer) (bool, error) {
	ok, err := r.Config.Package.ShouldPackage(r.JobName, r.Branch)
	if err != nil {
		return false, err
	}
	if !ok {
		slog.Debug("packaging gate closed", "job", r.JobName, "branch", r.Branch)
		return false, nil
	}

	fmt.Fprintf(out, "Packaging: %v\n", r.Config.Package.Command)
	if err := r.execCommand(ctx, r.Config.Package.Command, r.Workspace, out); err != nil {
		return false, fmt.Errorf("packaging failed: %w", err)
	}
	return true, nil
}

// clean removes the configured workspace paths after a successful run.
func (r *Runner) clean(out io.Writer) error {
	for _, rel := range r.Config.Clean.Paths {
		path := filepath.Join(r.Workspace, rel)
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("cleaning %s: %w", path, err)
		}
		fmt.Fprintf(out, "Cleaned %s\n", path)
	}
	return nil
}

// runCommand executes argv in dir, streaming output.
func runCommand(ctx context.Context, argv []string, dir string, out io.Writer) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// copyArtifact copies a file or directory tree to dst.
func copyArtifact(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.CopyFS(dst, os.DirFS(src))
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, info.Mode().Perm())
}

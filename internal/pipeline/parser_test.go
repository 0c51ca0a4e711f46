package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validConfig = `job: mellon
test:
  command: ["tox", "-e", "py311"]
reports:
  junit_glob: "junit-*.xml"
  artifacts:
    - name: coverage
      path: htmlcov
    - name: lint
      path: pylint.out
package:
  command: ["make", "package"]
  job_pattern: "mellon"
  branch_pattern: "main|master"
notify:
  enabled: true
  from: ci@example.org
  to: dev@example.org
clean:
  paths: [".tox"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Job != "mellon" {
		t.Errorf("Job = %q", cfg.Job)
	}
	if len(cfg.Test.Command) != 3 || cfg.Test.Command[0] != "tox" {
		t.Errorf("Test.Command = %v", cfg.Test.Command)
	}
	if len(cfg.Reports.Artifacts) != 2 {
		t.Errorf("Artifacts = %v", cfg.Reports.Artifacts)
	}
	if !cfg.Notify.Enabled {
		t.Error("Notify.Enabled = false")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "job: mellon\ntest: {}\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Test.Command) != 1 || cfg.Test.Command[0] != "tox" {
		t.Errorf("default test command = %v, want [tox]", cfg.Test.Command)
	}
	if cfg.Reports.Dir != "reports" {
		t.Errorf("default reports dir = %q", cfg.Reports.Dir)
	}
	if cfg.Reports.MergedJUnit != "junit-merged.xml" {
		t.Errorf("default merged report = %q", cfg.Reports.MergedJUnit)
	}
}

func TestLoadRejectsMissingJob(t *testing.T) {
	_, err := Load(writeConfig(t, "test:\n  command: [\"tox\"]\n"))
	if err == nil {
		t.Fatal("expected error for config without job")
	}
	if !strings.Contains(err.Error(), "job") {
		t.Errorf("error %q does not mention the missing property", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, validConfig+"mystery: true\n"))
	if err == nil {
		t.Fatal("expected error for unknown top-level key")
	}
}

func TestLoadRejectsBadGatePattern(t *testing.T) {
	bad := `job: mellon
test:
  command: ["tox"]
package:
  command: ["make", "package"]
  job_pattern: "["
  branch_pattern: "main"
`
	_, err := Load(writeConfig(t, bad))
	if err == nil {
		t.Fatal("expected error for unparseable gate pattern")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidateReportsIssuePaths(t *testing.T) {
	result, err := Validate([]byte("job: mellon\nreports:\n  artifacts:\n    - name: coverage\n"))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid result for artifact without path")
	}

	found := false
	for _, issue := range result.Issues {
		if strings.Contains(issue.Path, "/reports/artifacts/0") {
			found = true
		}
	}
	if !found {
		t.Errorf("no issue points at the bad artifact: %+v", result.Issues)
	}
}

package pipeline

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const suiteReport = `<?xml version="1.0" encoding="utf-8"?>
<testsuite name="py311" tests="3" failures="1" errors="0" skipped="0" time="1.5">
  <testcase classname="tests.test_default_adapter" name="test_lookup_user" time="0.5"/>
  <testcase classname="tests.test_default_adapter" name="test_provision" time="0.5"/>
  <testcase classname="tests.urls_tests" name="test_login_url" time="0.5">
    <failure message="assertion failed">boom</failure>
  </testcase>
</testsuite>
`

const suitesReport = `<?xml version="1.0" encoding="utf-8"?>
<testsuites tests="2" failures="0" errors="0" skipped="1" time="0.8">
  <testsuite name="py39" tests="2" failures="0" errors="0" skipped="1" time="0.8">
    <testcase classname="tests.urls_tests" name="test_metadata_url" time="0.4"/>
    <testcase classname="tests.urls_tests" name="test_logout_url" time="0.4">
      <skipped/>
    </testcase>
  </testsuite>
</testsuites>
`

func TestMergeJUnit(t *testing.T) {
	tmp := t.TempDir()

	first := filepath.Join(tmp, "junit-py311.xml")
	second := filepath.Join(tmp, "junit-py39.xml")
	if err := os.WriteFile(first, []byte(suiteReport), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte(suitesReport), 0644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(tmp, "junit-merged.xml")
	summary, err := MergeJUnit([]string{first, second}, out)
	if err != nil {
		t.Fatalf("MergeJUnit: %v", err)
	}

	if summary.SuiteCount != 2 {
		t.Errorf("SuiteCount = %d, want 2", summary.SuiteCount)
	}
	if summary.Tests != 5 {
		t.Errorf("Tests = %d, want 5", summary.Tests)
	}
	if summary.Failures != 1 {
		t.Errorf("Failures = %d, want 1", summary.Failures)
	}
	if summary.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", summary.Skipped)
	}
	if !summary.Failed() {
		t.Error("Failed() = false with one failure")
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	var merged junitDocument
	if err := xml.Unmarshal(data, &merged); err != nil {
		t.Fatalf("merged report does not parse: %v", err)
	}
	if len(merged.Suites) != 2 {
		t.Fatalf("merged suites = %d, want 2", len(merged.Suites))
	}
	// Suites sorted by name.
	if merged.Suites[0].Name != "py311" || merged.Suites[1].Name != "py39" {
		t.Errorf("suite order = %q, %q", merged.Suites[0].Name, merged.Suites[1].Name)
	}
	// Failure details survive the merge.
	if !strings.Contains(string(data), "assertion failed") {
		t.Error("failure message lost in merge")
	}
}

func TestMergeJUnitNoInputs(t *testing.T) {
	if _, err := MergeJUnit(nil, filepath.Join(t.TempDir(), "out.xml")); err == nil {
		t.Error("expected error for empty input list")
	}
}

func TestMergeJUnitRejectsUnknownRoot(t *testing.T) {
	tmp := t.TempDir()
	bad := filepath.Join(tmp, "junit-bad.xml")
	if err := os.WriteFile(bad, []byte("<coverage/>"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := MergeJUnit([]string{bad}, filepath.Join(tmp, "out.xml"))
	if err == nil || !strings.Contains(err.Error(), "unexpected root element") {
		t.Errorf("err = %v, want unexpected root element", err)
	}
}

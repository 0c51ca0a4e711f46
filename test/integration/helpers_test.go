//go:build integration

package integration_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// testEnv holds the fake Python installations used by the integration tests.
type testEnv struct {
	VenvRoot string // fake virtualenv prefix
	SysRoot  string // fake system prefix
	VenvSite string // virtualenv site-packages
	SysSite  string // system site-packages owning the lasso bindings
}

// setupTestEnv creates a fake virtualenv and system installation, each with
// a shell-script interpreter that answers the sysconfig inspection, and
// points the discovery overrides at them.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		VenvRoot: t.TempDir(),
		SysRoot:  t.TempDir(),
	}
	env.VenvSite = filepath.Join(env.VenvRoot, "lib", "python3.11", "site-packages")
	env.SysSite = filepath.Join(env.SysRoot, "lib", "python3.11", "site-packages")

	for _, dir := range []string{
		filepath.Join(env.VenvRoot, "bin"),
		filepath.Join(env.SysRoot, "bin"),
		env.VenvSite,
		env.SysSite,
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}

	venvPython := writeInterpreter(t, filepath.Join(env.VenvRoot, "bin"), env.VenvRoot, true, env.VenvSite)
	sysPython := writeInterpreter(t, filepath.Join(env.SysRoot, "bin"), env.SysRoot, false, env.SysSite)

	t.Setenv("LASSOLINK_VENV_PYTHON", venvPython)
	t.Setenv("LASSOLINK_SYSTEM_PYTHON", sysPython)

	// The system installation carries the lasso bindings.
	writeFile(t, filepath.Join(env.SysSite, "lasso.py"), "import _lasso\n")
	writeFile(t, filepath.Join(env.SysSite, "_lasso.cpython-311-x86_64.so"), "elf\n")

	return env
}

func writeInterpreter(t *testing.T, binDir, prefix string, venv bool, site string) string {
	t.Helper()

	venvFlag := "0"
	if venv {
		venvFlag = "1"
	}
	script := fmt.Sprintf(`#!/bin/sh
echo "version=3.11.2"
echo "prefix=%s"
echo "venv=%s"
echo "purelib=%s"
echo "platlib=%s"
`, prefix, venvFlag, site, site)

	path := filepath.Join(binDir, "python3")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func assertSymlink(t *testing.T, link, wantTarget string) {
	t.Helper()
	target, err := os.Readlink(link)
	if err != nil {
		t.Fatalf("%s is not a symlink: %v", link, err)
	}
	if target != wantTarget {
		t.Errorf("%s -> %s, want %s", link, target, wantTarget)
	}
}

//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/entrouvert/lassolink/internal/linker"
	"github.com/entrouvert/lassolink/internal/pyenv"
)

func TestLinkEndToEnd(t *testing.T) {
	env := setupTestEnv(t)

	pe, err := pyenv.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if pe.System.Purelib != env.SysSite {
		t.Fatalf("system purelib = %q, want %q", pe.System.Purelib, env.SysSite)
	}

	spec := linker.Spec{SourceDir: pe.System.Purelib, DestDir: pe.Venv.Purelib}

	actions, err := linker.Plan(spec)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	applied, err := linker.Apply(actions, linker.ApplyOptions{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}

	assertSymlink(t, filepath.Join(env.VenvSite, "lasso.py"), filepath.Join(env.SysSite, "lasso.py"))
	assertSymlink(t, filepath.Join(env.VenvSite, "_lasso.cpython-311-x86_64.so"),
		filepath.Join(env.SysSite, "_lasso.cpython-311-x86_64.so"))

	statuses, err := linker.Status(spec)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !linker.Healthy(statuses) {
		t.Errorf("not healthy after apply: %v", statuses)
	}

	// Upgrade scenario: the system extension gets rebuilt under a new name.
	if err := os.Rename(
		filepath.Join(env.SysSite, "_lasso.cpython-311-x86_64.so"),
		filepath.Join(env.SysSite, "_lasso.cpython-312-x86_64.so"),
	); err != nil {
		t.Fatal(err)
	}

	actions, err = linker.Plan(spec)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := linker.Apply(actions, linker.ApplyOptions{}); err != nil {
		t.Fatalf("Apply after upgrade: %v", err)
	}

	// The old link is now orphaned and must be removable.
	removed, skipped, err := linker.Remove(spec)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %v", skipped)
	}
	if len(removed) < 2 {
		t.Errorf("removed = %v, want old and new links gone", removed)
	}

	entries, err := os.ReadDir(env.VenvSite)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("virtualenv site-packages not empty after remove: %v", entries)
	}
}

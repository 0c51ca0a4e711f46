package linker

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestStatusReportsStates(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires native symlinks")
	}
	source, dest := setupDirs(t)
	spec := Spec{SourceDir: source, DestDir: dest}

	// Link everything first.
	actions, err := Plan(spec)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Apply(actions, ApplyOptions{}); err != nil {
		t.Fatal(err)
	}

	statuses, err := Status(spec)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("got %d statuses, want 2", len(statuses))
	}
	for _, s := range statuses {
		if s.State != StateLinked {
			t.Errorf("%s state = %s, want linked", s.Name, s.State)
		}
		if s.Source == "" {
			t.Errorf("%s has no source", s.Name)
		}
	}
	if !Healthy(statuses) {
		t.Error("Healthy = false for fully linked destination")
	}
}

func TestStatusDetectsBrokenLink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires native symlinks")
	}
	source, dest := setupDirs(t)
	spec := Spec{SourceDir: source, DestDir: dest}

	actions, err := Plan(spec)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Apply(actions, ApplyOptions{}); err != nil {
		t.Fatal(err)
	}

	// The system package got upgraded and the extension filename changed.
	if err := os.Remove(filepath.Join(source, "_lasso.cpython-311-x86_64.so")); err != nil {
		t.Fatal(err)
	}

	statuses, err := Status(spec)
	if err != nil {
		t.Fatal(err)
	}

	var broken *EntryStatus
	for i := range statuses {
		if statuses[i].Name == "_lasso.cpython-311-x86_64.so" {
			broken = &statuses[i]
		}
	}
	if broken == nil {
		t.Fatalf("orphaned link missing from status: %v", statuses)
	}
	if broken.State != StateBroken {
		t.Errorf("orphan state = %s, want broken", broken.State)
	}
	if broken.Source != "" {
		t.Errorf("orphan source = %q, want empty", broken.Source)
	}
	if Healthy(statuses) {
		t.Error("Healthy = true with a broken link")
	}
}

func TestHealthyEmpty(t *testing.T) {
	if Healthy(nil) {
		t.Error("Healthy(nil) = true; no bindings found should not be healthy")
	}
}

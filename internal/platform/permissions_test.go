package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestRestrict(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	if err := os.WriteFile(path, []byte("link:\n  patterns: [\"lasso.*\"]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Restrict(path, 0600); err != nil {
		t.Fatalf("Restrict failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("permissions = %o, want %o", perm, 0600)
		}
	}
}

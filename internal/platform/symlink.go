package platform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// sidecarSuffix marks the file that records the real target when the
// Windows copy fallback is used instead of a native symlink.
const sidecarSuffix = ".target"

// Symlink creates a symbolic link at link pointing to target.
// On Unix systems this is os.Symlink directly. On Windows it attempts
// os.Symlink first (requires developer mode), then falls back to copying
// the target file and writing a sidecar recording the intended target.
func Symlink(target, link string) error {
	if runtime.GOOS != "windows" {
		return os.Symlink(target, link)
	}

	if err := os.Symlink(target, link); err == nil {
		return nil
	}

	if err := copyForSymlink(target, link); err != nil {
		return fmt.Errorf("symlink fallback (copy) failed: %w", err)
	}

	// Best-effort sidecar so ReadTarget can recover the original target.
	_ = os.WriteFile(link+sidecarSuffix, []byte(target), 0644)
	return nil
}

// Remove removes a symlink (or its fallback copy and sidecar).
func Remove(link string) error {
	err := os.Remove(link)
	os.Remove(link + sidecarSuffix) // best-effort
	return err
}

// ReadTarget returns the target of a symlink. On Windows, if os.Readlink
// fails because the copy fallback was used, it reads the sidecar instead.
func ReadTarget(link string) (string, error) {
	target, err := os.Readlink(link)
	if err == nil {
		return target, nil
	}

	if runtime.GOOS != "windows" {
		return "", err
	}

	data, readErr := os.ReadFile(link + sidecarSuffix)
	if readErr != nil {
		return "", fmt.Errorf("readlink failed and no %s sidecar found: %w", sidecarSuffix, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// IsSymlink reports whether path exists and is a symbolic link (not
// following it).
func IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// SymlinksSupported returns true if the current platform supports native
// symlinks. On Windows this attempts a test symlink to detect developer mode.
func SymlinksSupported() bool {
	if runtime.GOOS != "windows" {
		return true
	}

	tmpDir := os.TempDir()
	link := filepath.Join(tmpDir, ".lassolink-symlink-test")
	defer os.Remove(link)

	return os.Symlink(tmpDir, link) == nil
}

// copyForSymlink copies src to dst. Relative sources resolve against the
// directory containing dst, matching symlink semantics.
func copyForSymlink(src, dst string) error {
	resolved := src
	if !filepath.IsAbs(src) {
		resolved = filepath.Join(filepath.Dir(dst), src)
	}

	in, err := os.Open(resolved)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

package linker

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/entrouvert/lassolink/internal/platform"
)

// ApplyOptions controls how Apply deals with occupied destinations.
type ApplyOptions struct {
	// Force replaces foreign (non-symlink) destination entries.
	Force bool
	// BestEffort logs failures and keeps going instead of stopping at the
	// first error, mirroring the historical shell script.
	BestEffort bool
}

// Apply removes whatever occupies each destination and creates a fresh
// symlink to the source file. Returns the number of links created.
func Apply(actions []Action, opts ApplyOptions) (int, error) {
	applied := 0
	for _, a := range actions {
		if err := applyOne(a, opts); err != nil {
			if opts.BestEffort {
				slog.Warn("link failed", "link", a.Link, "error", err)
				continue
			}
			return applied, err
		}
		applied++
		slog.Debug("linked", "link", a.Link, "target", a.Source)
	}
	return applied, nil
}

func applyOne(a Action, opts ApplyOptions) error {
	switch a.Prior {
	case StateMissing:
		// Nothing to clear.
	case StateForeign:
		if !opts.Force {
			return fmt.Errorf("%s exists and is not a symlink (use --force to replace)", a.Link)
		}
		if err := os.RemoveAll(a.Link); err != nil {
			return fmt.Errorf("removing %s: %w", a.Link, err)
		}
	default:
		// Linked, stale, or broken: always recreate.
		if err := platform.Remove(a.Link); err != nil {
			return fmt.Errorf("removing %s: %w", a.Link, err)
		}
	}

	if err := platform.Symlink(a.Source, a.Link); err != nil {
		return fmt.Errorf("linking %s -> %s: %w", a.Link, a.Source, err)
	}
	return nil
}

// Remove deletes the linker's symlinks from the destination directory:
// entries matching the spec's patterns that are symlinks resolving into the
// source directory. Foreign files are left alone and reported in skipped.
func Remove(spec Spec) (removed, skipped []string, err error) {
	for _, pattern := range spec.patterns() {
		matches, globErr := filepath.Glob(filepath.Join(spec.DestDir, pattern))
		if globErr != nil {
			return removed, skipped, fmt.Errorf("bad pattern %q: %w", pattern, globErr)
		}
		for _, entry := range matches {
			if !platform.IsSymlink(entry) {
				skipped = append(skipped, entry)
				continue
			}
			if !pointsInto(entry, spec.SourceDir) {
				skipped = append(skipped, entry)
				continue
			}
			if rmErr := platform.Remove(entry); rmErr != nil {
				return removed, skipped, fmt.Errorf("removing %s: %w", entry, rmErr)
			}
			removed = append(removed, entry)
			slog.Debug("unlinked", "link", entry)
		}
	}
	return removed, skipped, nil
}

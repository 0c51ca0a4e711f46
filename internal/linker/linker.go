package linker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/entrouvert/lassolink/internal/platform"
)

// DefaultPatterns matches the lasso bindings as installed by the distro
// package: the pure-Python wrapper and the C extension underneath it.
func DefaultPatterns() []string {
	return []string{"lasso.*", "_lasso.*"}
}

// Spec describes one linking job between two site-packages directories.
type Spec struct {
	SourceDir string   // system site-packages owning the real files
	DestDir   string   // virtualenv site-packages receiving the links
	Patterns  []string // glob patterns; DefaultPatterns when empty
}

func (s Spec) patterns() []string {
	if len(s.Patterns) == 0 {
		return DefaultPatterns()
	}
	return s.Patterns
}

// EntryState classifies what occupies a destination path.
type EntryState int

const (
	// StateMissing means nothing exists at the destination.
	StateMissing EntryState = iota
	// StateLinked means a symlink pointing at the expected source file.
	StateLinked
	// StateStale means a symlink pointing somewhere else.
	StateStale
	// StateBroken means a symlink whose target no longer exists.
	StateBroken
	// StateForeign means a regular file or directory is in the way.
	StateForeign
)

func (s EntryState) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateLinked:
		return "linked"
	case StateStale:
		return "stale"
	case StateBroken:
		return "broken"
	case StateForeign:
		return "foreign"
	default:
		return "unknown"
	}
}

// Action is one planned link: a source file paired with its destination
// path and whatever currently occupies that path.
type Action struct {
	Source string     // absolute path of the real file
	Link   string     // absolute path of the destination entry
	Prior  EntryState // state of the destination before applying
}

// Plan enumerates the source files matching the spec's patterns and pairs
// each with its destination path. Results are sorted by destination name.
func Plan(spec Spec) ([]Action, error) {
	if info, err := os.Stat(spec.SourceDir); err != nil {
		return nil, fmt.Errorf("source site-packages: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("source site-packages %s is not a directory", spec.SourceDir)
	}
	if info, err := os.Stat(spec.DestDir); err != nil {
		return nil, fmt.Errorf("destination site-packages: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("destination site-packages %s is not a directory", spec.DestDir)
	}

	seen := make(map[string]bool)
	var actions []Action
	for _, pattern := range spec.patterns() {
		matches, err := filepath.Glob(filepath.Join(spec.SourceDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		for _, src := range matches {
			name := filepath.Base(src)
			if seen[name] {
				continue
			}
			seen[name] = true

			link := filepath.Join(spec.DestDir, name)
			actions = append(actions, Action{
				Source: src,
				Link:   link,
				Prior:  classify(link, src),
			})
		}
	}

	sort.Slice(actions, func(i, j int) bool { return actions[i].Link < actions[j].Link })
	return actions, nil
}

// classify inspects the destination path and reports its state relative to
// the expected source file.
func classify(link, wantTarget string) EntryState {
	if _, err := os.Lstat(link); os.IsNotExist(err) {
		return StateMissing
	}
	if !platform.IsSymlink(link) {
		return StateForeign
	}

	target, err := platform.ReadTarget(link)
	if err != nil {
		return StateBroken
	}
	resolved := target
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(link), resolved)
	}
	if _, err := os.Stat(resolved); err != nil {
		return StateBroken
	}
	if filepath.Clean(resolved) == filepath.Clean(wantTarget) {
		return StateLinked
	}
	return StateStale
}

// pointsInto reports whether the symlink at link resolves into dir.
// Dangling links still count when their recorded target is inside dir.
func pointsInto(link, dir string) bool {
	target, err := platform.ReadTarget(link)
	if err != nil {
		return false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(link), target)
	}
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(target))
	if err != nil {
		return false
	}
	return rel == filepath.Base(target)
}

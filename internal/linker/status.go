package linker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/entrouvert/lassolink/internal/platform"
)

// EntryStatus reports the state of one destination entry.
type EntryStatus struct {
	Name   string // base name, e.g. "lasso.py"
	Link   string // destination path
	Source string // expected source file; empty for orphaned entries
	State  EntryState
}

// Status reports the state of every entry the spec covers: each source file
// paired with its destination, plus destination entries matching the
// patterns whose source file no longer exists.
func Status(spec Spec) ([]EntryStatus, error) {
	actions, err := Plan(spec)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var statuses []EntryStatus
	for _, a := range actions {
		name := filepath.Base(a.Link)
		seen[name] = true
		statuses = append(statuses, EntryStatus{
			Name:   name,
			Link:   a.Link,
			Source: a.Source,
			State:  a.Prior,
		})
	}

	// Leftovers at the destination with no source counterpart.
	for _, pattern := range spec.patterns() {
		matches, globErr := filepath.Glob(filepath.Join(spec.DestDir, pattern))
		if globErr != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, globErr)
		}
		for _, entry := range matches {
			name := filepath.Base(entry)
			if seen[name] {
				continue
			}
			seen[name] = true
			statuses = append(statuses, EntryStatus{
				Name:  name,
				Link:  entry,
				State: orphanState(entry),
			})
		}
	}

	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses, nil
}

// Healthy reports whether every entry is linked and nothing is orphaned.
func Healthy(statuses []EntryStatus) bool {
	if len(statuses) == 0 {
		return false
	}
	for _, s := range statuses {
		if s.State != StateLinked {
			return false
		}
	}
	return true
}

func orphanState(entry string) EntryState {
	if !platform.IsSymlink(entry) {
		return StateForeign
	}
	target, err := platform.ReadTarget(entry)
	if err != nil {
		return StateBroken
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(entry), target)
	}
	if _, err := os.Stat(target); err != nil {
		return StateBroken
	}
	return StateStale
}

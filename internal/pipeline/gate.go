package pipeline

import (
	"fmt"
	"regexp"
)

// ShouldPackage reports whether the packaging step runs: a packaging command
// must be configured and both the job name and the branch must match their
// anchored patterns. An empty pattern never matches, so a config without
// gate patterns never packages by accident.
func (p PackageConfig) ShouldPackage(jobName, branch string) (bool, error) {
	if len(p.Command) == 0 {
		return false, nil
	}

	jobOK, err := matchAnchored(p.JobPattern, jobName)
	if err != nil {
		return false, fmt.Errorf("job gate: %w", err)
	}
	branchOK, err := matchAnchored(p.BranchPattern, branch)
	if err != nil {
		return false, fmt.Errorf("branch gate: %w", err)
	}
	return jobOK && branchOK, nil
}

// matchAnchored matches the whole value against pattern.
func matchAnchored(pattern, value string) (bool, error) {
	if pattern == "" || value == "" {
		return false, nil
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return false, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	return re.MatchString(value), nil
}

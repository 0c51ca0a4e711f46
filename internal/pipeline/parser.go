package pipeline

import (
	"fmt"
	"os"
	"regexp"

	"go.yaml.in/yaml/v3"
)

// Load reads a pipeline config, validates it against the schema, applies
// defaults, and checks that the gate patterns compile.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pipeline config %s: %w", path, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("pipeline config %s: %s", path, summarize(result.Issues))
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing pipeline config %s: %w", path, err)
	}
	cfg.withDefaults()

	for _, pattern := range []string{cfg.Package.JobPattern, cfg.Package.BranchPattern} {
		if pattern == "" {
			continue
		}
		if _, err := regexp.Compile(pattern); err != nil {
			return nil, fmt.Errorf("pipeline config %s: bad gate pattern %q: %w", path, pattern, err)
		}
	}

	return &cfg, nil
}

func summarize(issues []ValidationIssue) string {
	if len(issues) == 0 {
		return "invalid"
	}
	first := issues[0]
	msg := first.Message
	if first.Path != "" {
		msg = first.Path + ": " + msg
	}
	if len(issues) > 1 {
		msg = fmt.Sprintf("%s (and %d more issues)", msg, len(issues)-1)
	}
	return msg
}

package pipeline

// DefaultConfigFile is the pipeline config looked up in the workspace root.
const DefaultConfigFile = ".lassolink-ci.yaml"

// Config is the parsed pipeline description.
type Config struct {
	Job     string        `yaml:"job"`
	Test    TestConfig    `yaml:"test"`
	Reports ReportsConfig `yaml:"reports"`
	Package PackageConfig `yaml:"package"`
	Notify  NotifyConfig  `yaml:"notify"`
	Clean   CleanConfig   `yaml:"clean"`
}

// TestConfig describes the test harness invocation.
type TestConfig struct {
	// Command is the harness argv; defaults to ["tox"].
	Command []string `yaml:"command"`
}

// ReportsConfig describes which artifacts to collect after the harness runs.
type ReportsConfig struct {
	// Dir is the directory, relative to the workspace, where collected
	// artifacts and the merged JUnit report land. Defaults to "reports".
	Dir string `yaml:"dir"`
	// JUnitGlob matches the per-environment JUnit XML files produced by the
	// harness, relative to the workspace.
	JUnitGlob string `yaml:"junit_glob"`
	// MergedJUnit is the file name of the merged report inside Dir.
	// Defaults to "junit-merged.xml".
	MergedJUnit string `yaml:"merged_junit"`
	// Artifacts are additional report files or directories (coverage HTML,
	// lint output) copied into Dir.
	Artifacts []Artifact `yaml:"artifacts"`
}

// Artifact is one report input produced by the harness.
type Artifact struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// PackageConfig gates and describes the packaging step.
type PackageConfig struct {
	// Command is the packaging argv. Empty disables the step.
	Command []string `yaml:"command"`
	// JobPattern and BranchPattern are anchored regular expressions; both
	// must match the current job name and branch for packaging to run.
	JobPattern    string `yaml:"job_pattern"`
	BranchPattern string `yaml:"branch_pattern"`
}

// NotifyConfig describes the build-status mail.
type NotifyConfig struct {
	Enabled   bool   `yaml:"enabled"`
	FromEmail string `yaml:"from"`
	FromName  string `yaml:"from_name"`
	ToEmail   string `yaml:"to"`
	ToName    string `yaml:"to_name"`
}

// CleanConfig lists workspace paths removed after a successful run.
type CleanConfig struct {
	Paths []string `yaml:"paths"`
}

// withDefaults fills unset optional fields.
func (c *Config) withDefaults() {
	if len(c.Test.Command) == 0 {
		c.Test.Command = []string{"tox"}
	}
	if c.Reports.Dir == "" {
		c.Reports.Dir = "reports"
	}
	if c.Reports.MergedJUnit == "" {
		c.Reports.MergedJUnit = "junit-merged.xml"
	}
}

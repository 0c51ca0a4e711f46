package pyenv

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Interpreter describes one Python installation.
type Interpreter struct {
	Path    string // path to the python executable
	Version string // e.g. "3.11.2"
	Prefix  string // sys.prefix
	Venv    bool   // true when running inside a virtualenv
	Purelib string // site-packages for pure-Python modules
	Platlib string // site-packages for extension modules
}

// inspectProgram prints the interpreter facts as key=value lines.
const inspectProgram = `import sys, sysconfig
print("version=%d.%d.%d" % sys.version_info[:3])
print("prefix=" + sys.prefix)
print("venv=" + ("1" if sys.prefix != getattr(sys, "base_prefix", sys.prefix) else "0"))
paths = sysconfig.get_paths()
print("purelib=" + paths["purelib"])
print("platlib=" + paths["platlib"])
`

// Inspect runs the interpreter at pythonPath and parses its version, prefix,
// and site-packages directories out of sysconfig.
func Inspect(ctx context.Context, pythonPath string) (*Interpreter, error) {
	cmd := exec.CommandContext(ctx, pythonPath, "-c", inspectProgram)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("inspecting %s: %w: %s", pythonPath, err, msg)
		}
		return nil, fmt.Errorf("inspecting %s: %w", pythonPath, err)
	}

	interp := &Interpreter{Path: pythonPath}
	for _, line := range strings.Split(stdout.String(), "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), "=")
		if !found {
			continue
		}
		switch key {
		case "version":
			interp.Version = value
		case "prefix":
			interp.Prefix = value
		case "venv":
			interp.Venv = value == "1"
		case "purelib":
			interp.Purelib = value
		case "platlib":
			interp.Platlib = value
		}
	}

	if interp.Purelib == "" || interp.Platlib == "" {
		return nil, fmt.Errorf("interpreter %s reported no site-packages directories", pythonPath)
	}
	return interp, nil
}

// SitePackages returns the interpreter's site-packages directories, with
// purelib first and platlib second when they differ.
func (i *Interpreter) SitePackages() []string {
	if i.Platlib == i.Purelib {
		return []string{i.Purelib}
	}
	return []string{i.Purelib, i.Platlib}
}

// VersionAtLeast reports whether the interpreter version satisfies the given
// minimum (semver comparison, "v" prefix tolerated).
func (i *Interpreter) VersionAtLeast(min string) (bool, error) {
	have, err := semver.NewVersion(strings.TrimPrefix(i.Version, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing interpreter version %q: %w", i.Version, err)
	}
	want, err := semver.NewVersion(strings.TrimPrefix(min, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing minimum version %q: %w", min, err)
	}
	return have.Compare(want) >= 0, nil
}

// ImportCheck reports whether the interpreter can import the given module.
// The error return is for failures to run the interpreter at all.
func ImportCheck(ctx context.Context, pythonPath, module string) (bool, error) {
	cmd := exec.CommandContext(ctx, pythonPath, "-c", "import "+module)
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return false, nil
		}
		return false, fmt.Errorf("running %s: %w", pythonPath, err)
	}
	return true, nil
}

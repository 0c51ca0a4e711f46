package pyenv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/entrouvert/lassolink/internal/branding"
)

// Env pairs the two interpreters the linker works between.
type Env struct {
	Venv   *Interpreter // interpreter inside the active virtualenv
	System *Interpreter // system-wide interpreter that owns the lasso bindings
}

var (
	ErrNoVenvPython   = errors.New("no python found for the active virtualenv")
	ErrNotVirtualenv  = errors.New("interpreter is not running inside a virtualenv")
	ErrNoSystemPython = errors.New("no system python found on PATH outside the virtualenv")
)

// Discover resolves the virtualenv interpreter and the system interpreter.
//
// The virtualenv interpreter is taken from LASSOLINK_VENV_PYTHON if set,
// otherwise from $VIRTUAL_ENV/bin, otherwise it is the first python on PATH
// (a virtualenv prepends its bin directory, so PATH order identifies it).
// The system interpreter is taken from LASSOLINK_SYSTEM_PYTHON if set,
// otherwise it is the first python on PATH after the virtualenv's bin
// directory has been stripped out.
func Discover(ctx context.Context) (*Env, error) {
	entries := SplitPath(os.Getenv("PATH"))

	venvPython := os.Getenv(branding.EnvVar("venv_python"))
	overridden := venvPython != ""
	if venvPython == "" {
		if venvRoot := os.Getenv("VIRTUAL_ENV"); venvRoot != "" {
			venvPython = LookupIn([]string{venvBinDir(venvRoot)}, pythonNames()...)
		} else {
			venvPython = LookupIn(entries, pythonNames()...)
		}
	}
	if venvPython == "" {
		return nil, ErrNoVenvPython
	}

	venv, err := Inspect(ctx, venvPython)
	if err != nil {
		return nil, err
	}
	if !venv.Venv && !overridden {
		return nil, fmt.Errorf("%w: %s (activate a virtualenv first)", ErrNotVirtualenv, venv.Path)
	}

	systemPython := os.Getenv(branding.EnvVar("system_python"))
	if systemPython == "" {
		remaining := StripDir(entries, filepath.Dir(venv.Path))
		systemPython = LookupIn(remaining, pythonNames()...)
	}
	if systemPython == "" {
		return nil, ErrNoSystemPython
	}

	system, err := Inspect(ctx, systemPython)
	if err != nil {
		return nil, err
	}

	return &Env{Venv: venv, System: system}, nil
}

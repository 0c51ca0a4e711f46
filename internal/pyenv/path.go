package pyenv

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// SplitPath splits an ordered PATH value into its entries, dropping empty
// components. Order is preserved: earlier entries shadow later ones.
func SplitPath(pathVar string) []string {
	var entries []string
	for _, e := range strings.Split(pathVar, string(os.PathListSeparator)) {
		if e != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

// StripDir returns entries with every occurrence of dir removed. Comparison
// is on cleaned paths, so trailing separators do not matter.
func StripDir(entries []string, dir string) []string {
	cleaned := filepath.Clean(dir)
	result := make([]string, 0, len(entries))
	for _, e := range entries {
		if filepath.Clean(e) == cleaned {
			continue
		}
		result = append(result, e)
	}
	return result
}

// LookupIn searches the given directories, in order, for the first
// executable with one of the given names. Returns the full path, or ""
// if none is found.
func LookupIn(entries []string, names ...string) string {
	for _, name := range names {
		for _, dir := range entries {
			candidate := filepath.Join(dir, name)
			if isExecutable(candidate) {
				return candidate
			}
		}
	}
	return ""
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0111 != 0
}

// pythonNames are the interpreter names probed on PATH, most specific first.
func pythonNames() []string {
	if runtime.GOOS == "windows" {
		return []string{"python.exe", "python3.exe"}
	}
	return []string{"python3", "python"}
}

// venvBinDir returns the executable directory of a virtualenv root.
func venvBinDir(venvRoot string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(venvRoot, "Scripts")
	}
	return filepath.Join(venvRoot, "bin")
}

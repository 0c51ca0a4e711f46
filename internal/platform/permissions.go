package platform

import (
	"os"
	"runtime"
)

// Restrict tightens the permission bits on path, used to keep the config
// file out of group and world reach. On Windows this is a no-op because
// Windows does not support Unix-style permission bits.
func Restrict(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

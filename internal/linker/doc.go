// Package linker plans and applies the symlinks that expose the system
// lasso extension module inside a virtualenv's site-packages directory.
// It enumerates the bindings in the source directory, records what currently
// occupies each destination path, and replaces stale entries with fresh
// symlinks.
package linker

// Package platform provides cross-platform filesystem primitives for the
// linker: symlink creation, removal, and target resolution, plus permission
// management. On Unix systems it uses native symlinks directly. On Windows it
// falls back to file copying with a .target sidecar when developer mode
// symlinks are unavailable.
package platform

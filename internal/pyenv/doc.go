// Package pyenv discovers Python installations. It distinguishes the active
// virtualenv's interpreter from the system-wide one by walking the ordered
// PATH, and queries each interpreter's sysconfig for its site-packages
// directories. Overrides via LASSOLINK_VENV_PYTHON and LASSOLINK_SYSTEM_PYTHON
// bypass discovery for sandboxed setups and tests.
package pyenv

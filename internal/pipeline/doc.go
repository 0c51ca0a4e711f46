// Package pipeline runs the CI sequence the project historically scripted
// around the linker: run the test harness, collect coverage and lint
// artifacts, merge per-environment JUnit reports into one, invoke packaging
// when the job name and branch match, send a build-status mail, and clean
// the workspace on success. The sequence is described by a YAML config
// validated against an embedded JSON Schema.
package pipeline

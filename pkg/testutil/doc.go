// Package testutil provides utilities for testing vimdot components.
//
// Key components:
//   - TestEnvironment: a source tree and a home directory, either in memory
//     (afero) or in an isolated temp directory
//   - FileTree: declarative directory setup
//   - FailingFS: a types.FS wrapper that injects per-path errors, used to
//     simulate locked or unwritable files
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly; use EnvIsolated when the test depends on real
//     rename or permission semantics
//   - All test data should be defined inline, not in external files
package testutil

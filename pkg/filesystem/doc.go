// Package filesystem provides filesystem implementations for vimdot.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem used by the installer and an afero-backed one
// used by tests.
package filesystem

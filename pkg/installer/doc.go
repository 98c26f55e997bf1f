// Package installer materializes the bundled editor configuration in the
// user's home directory.
//
// A run is a single forward pass:
//
//	preflight -> backup+copy config file -> backup+copy payload tree
//	  -> register profile integration (optional) -> summary
//
// Preflight failures abort before anything is touched. Everything after that
// is best effort: copy, backup and profile failures are recorded in Results
// and the pass continues. No destination path is overwritten unless it was
// first renamed to a timestamped backup; when the backup fails, the overwrite
// is skipped.
//
// The payload tree is synced as a flattened merge: the contents of the
// payload directory land directly in the editor's runtime directory.
package installer

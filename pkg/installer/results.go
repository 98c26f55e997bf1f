package installer

import (
	"github.com/arthur-debert/vimdot/pkg/errors"
	"github.com/arthur-debert/vimdot/pkg/paths"
)

// Operation names used in failures
const (
	OpBackup  = "backup"
	OpCopy    = "copy"
	OpProfile = "profile"
	OpUserEnv = "user-env"
)

// BackupRecord is a pre-existing destination path that was renamed aside
type BackupRecord struct {
	Original string `json:"original"`
	Backup   string `json:"backup"`
}

// Failure is a non-fatal, per-entry error
type Failure struct {
	Path    string           `json:"path"`
	Op      string           `json:"op"`
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"error"`
	Err     error            `json:"-"`
}

func newFailure(path, op string, err error) Failure {
	return Failure{
		Path:    path,
		Op:      op,
		Code:    errors.GetErrorCode(err),
		Message: err.Error(),
		Err:     err,
	}
}

// SyncResult is the outcome of copying one file or one tree
type SyncResult struct {
	// Installed lists destination files written (or planned, in dry-run)
	Installed []string
	// Unchanged counts destination files already identical to the source
	Unchanged int
	Backups   []BackupRecord
	Failures  []Failure
}

// Copied is the number of files written
func (s SyncResult) Copied() int { return len(s.Installed) }

// Failed is the number of entries that could not be synced
func (s SyncResult) Failed() int { return len(s.Failures) }

func (s *SyncResult) fail(path, op string, err error) {
	s.Failures = append(s.Failures, newFailure(path, op, err))
}

func (s *SyncResult) merge(o SyncResult) {
	s.Installed = append(s.Installed, o.Installed...)
	s.Unchanged += o.Unchanged
	s.Backups = append(s.Backups, o.Backups...)
	s.Failures = append(s.Failures, o.Failures...)
}

// ProfileResult is the outcome of profile integration
type ProfileResult struct {
	Line     string    `json:"line,omitempty"`
	Added    []string  `json:"added,omitempty"`
	Present  []string  `json:"present,omitempty"`
	Missing  []string  `json:"missing,omitempty"`
	Failures []Failure `json:"-"`
}

// Results is everything a run did, for the summary. It is returned even when
// the run is aborted so that a partial summary can be shown.
type Results struct {
	Environment paths.TargetEnvironment `json:"environment"`
	DryRun      bool                    `json:"dryRun"`

	Installed []string       `json:"installed"`
	Unchanged int            `json:"unchanged"`
	Backups   []BackupRecord `json:"backups"`
	Failures  []Failure      `json:"failures"`

	Profile ProfileResult `json:"profile"`
	// EnvVar is the editor-init assignment applied to the environment
	EnvVar string `json:"envVar,omitempty"`

	// Completed is false when the run was aborted
	Completed bool `json:"completed"`
	// Error is the fatal error, if any
	Error string `json:"error,omitempty"`
}

func newResults(env paths.TargetEnvironment, dryRun bool) *Results {
	return &Results{
		Environment: env,
		DryRun:      dryRun,
		Installed:   []string{},
		Backups:     []BackupRecord{},
		Failures:    []Failure{},
	}
}

func (r *Results) addSync(s SyncResult) {
	r.Installed = append(r.Installed, s.Installed...)
	r.Unchanged += s.Unchanged
	r.Backups = append(r.Backups, s.Backups...)
	r.Failures = append(r.Failures, s.Failures...)
}

func (r *Results) addFailure(path, op string, err error) {
	r.Failures = append(r.Failures, newFailure(path, op, err))
}

// Copied is the number of files written
func (r *Results) Copied() int { return len(r.Installed) }

// Failed is the number of non-fatal failures
func (r *Results) Failed() int { return len(r.Failures) }

// HasWarnings reports whether anything failed without aborting the run
func (r *Results) HasWarnings() bool { return len(r.Failures) > 0 }

package installer

import (
	"os"

	"github.com/arthur-debert/vimdot/pkg/errors"
	"github.com/arthur-debert/vimdot/pkg/paths"
)

// BackupIfPresent renames path to path.backup-<unix seconds> when it exists
// and returns the backup path, or "" when there was nothing to preserve.
//
// A backup path that already exists (two backups of the same path within one
// second) is never overwritten: the call fails with a BACKUP error instead and
// the caller must leave path alone.
func (i *Installer) BackupIfPresent(path string) (string, error) {
	if _, err := i.fs.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, errors.ErrBackup, "cannot inspect %s", path).WithDetail("path", path)
	}

	backup := paths.BackupPath(path, i.timestamp())
	if _, err := i.fs.Lstat(backup); err == nil {
		return "", errors.Newf(errors.ErrBackup, "backup path already exists: %s", backup).
			WithDetail("path", path).
			WithDetail("backup", backup)
	} else if !os.IsNotExist(err) {
		return "", errors.Wrapf(err, errors.ErrBackup, "cannot inspect %s", backup).WithDetail("path", path)
	}

	if i.opts.DryRun {
		i.logger.Info().Str("path", path).Str("backup", backup).Msg("Would back up")
		return backup, nil
	}

	if err := i.fs.Rename(path, backup); err != nil {
		return "", errors.Wrapf(err, errors.ErrBackup, "failed to back up %s", path).
			WithDetail("path", path).
			WithDetail("backup", backup)
	}

	i.logger.Info().Str("path", path).Str("backup", backup).Msg("Backed up existing path")
	return backup, nil
}

package installer

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/vimdot/pkg/errors"
)

const (
	dirMode  fs.FileMode = 0755
	fileMode fs.FileMode = 0644
	execMode fs.FileMode = 0755
)

// SyncTree copies the contents of src into dst (flattened merge). Entries that
// fail are recorded and skipped; the only error returned is an interruption.
func (i *Installer) SyncTree(ctx context.Context, src, dst string) (SyncResult, error) {
	var res SyncResult
	err := i.syncDir(ctx, src, dst, 0, false, &res)

	i.logger.Info().
		Str("src", src).
		Str("dst", dst).
		Int("copied", res.Copied()).
		Int("unchanged", res.Unchanged).
		Int("failed", res.Failed()).
		Msg("Synced tree")
	return res, err
}

func (i *Installer) syncDir(ctx context.Context, src, dst string, depth int, executable bool, res *SyncResult) error {
	entries, err := i.fs.ReadDir(src)
	if err != nil {
		res.fail(src, OpCopy, errors.Wrapf(err, errors.ErrCopy, "cannot read %s", src))
		return nil
	}

	if !i.ensureDir(dst, res) {
		return nil
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return interrupted(err)
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		// Stat, not Lstat: symlinks in the bundle are copied as what they point to
		info, err := i.fs.Stat(srcPath)
		if err != nil {
			res.fail(srcPath, OpCopy, errors.Wrapf(err, errors.ErrCopy, "cannot stat %s", srcPath))
			continue
		}

		childExec := executable || (depth == 0 && i.opts.BinName != "" && entry.Name() == i.opts.BinName)
		if info.IsDir() {
			if err := i.syncDir(ctx, srcPath, dstPath, depth+1, childExec, res); err != nil {
				return err
			}
			continue
		}
		if !info.Mode().IsRegular() {
			i.logger.Debug().Str("path", srcPath).Msg("Skipping special file")
			continue
		}
		i.syncFile(srcPath, dstPath, info, childExec, res)
	}
	return nil
}

// ensureDir makes sure dst is a directory, backing up a non-directory in the way.
func (i *Installer) ensureDir(dst string, res *SyncResult) bool {
	info, err := i.fs.Lstat(dst)
	if err == nil && info.IsDir() {
		return true
	}
	if err == nil {
		if !i.backupInto(dst, res) {
			return false
		}
	} else if !os.IsNotExist(err) {
		res.fail(dst, OpCopy, errors.Wrapf(err, errors.ErrCopy, "cannot inspect %s", dst))
		return false
	}

	if i.opts.DryRun {
		return true
	}
	if err := i.fs.MkdirAll(dst, dirMode); err != nil {
		res.fail(dst, OpCopy, errors.Wrapf(err, errors.ErrCopy, "cannot create %s", dst))
		return false
	}
	return true
}

// backupInto backs up path and records the outcome. False means path must not
// be touched.
func (i *Installer) backupInto(path string, res *SyncResult) bool {
	backup, err := i.BackupIfPresent(path)
	if err != nil {
		res.fail(path, OpBackup, err)
		return false
	}
	if backup != "" {
		res.Backups = append(res.Backups, BackupRecord{Original: path, Backup: backup})
	}
	return true
}

func (i *Installer) syncFile(src, dst string, info fs.FileInfo, executable bool, res *SyncResult) {
	data, err := i.fs.ReadFile(src)
	if err != nil {
		res.fail(src, OpCopy, errors.Wrapf(err, errors.ErrCopy, "cannot read %s", src))
		return
	}

	mode := fileMode
	if i.env.Class.ExecutableBits() && (executable || info.Mode()&0111 != 0) {
		mode = execMode
	}

	if i.opts.DryRun {
		i.logger.Info().Str("src", src).Str("dst", dst).Msg("Would copy")
		res.Installed = append(res.Installed, dst)
		return
	}

	if existing, err := i.fs.Lstat(dst); err == nil {
		if existing.Mode().IsRegular() {
			if current, err := i.fs.ReadFile(dst); err == nil && bytes.Equal(current, data) {
				i.ensureMode(dst, existing, mode, res)
				res.Unchanged++
				return
			}
		}
		if !i.backupInto(dst, res) {
			return
		}
	}

	if err := i.fs.WriteFile(dst, data, mode); err != nil {
		res.fail(dst, OpCopy, errors.Wrapf(err, errors.ErrCopy, "cannot write %s", dst))
		return
	}
	if mode == execMode {
		if err := i.fs.Chmod(dst, mode); err != nil {
			res.fail(dst, OpCopy, errors.Wrapf(err, errors.ErrCopy, "cannot make %s executable", dst))
			return
		}
	}

	i.logger.Debug().Str("src", src).Str("dst", dst).Msg("Copied file")
	res.Installed = append(res.Installed, dst)
}

func (i *Installer) ensureMode(dst string, existing fs.FileInfo, mode fs.FileMode, res *SyncResult) {
	if mode != execMode || existing.Mode().Perm()&0111 != 0 {
		return
	}
	if err := i.fs.Chmod(dst, mode); err != nil {
		res.fail(dst, OpCopy, errors.Wrapf(err, errors.ErrCopy, "cannot make %s executable", dst))
	}
}

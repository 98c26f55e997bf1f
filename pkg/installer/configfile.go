package installer

import (
	"path/filepath"

	"github.com/arthur-debert/vimdot/pkg/errors"
)

// InstallConfigFile backs up dst and copies src over it. On platforms with a
// legacy configuration file name the same content is also written there, so
// every build of the editor reads the same file.
func (i *Installer) InstallConfigFile(src, dst string) SyncResult {
	var res SyncResult

	data, err := i.fs.ReadFile(src)
	if err != nil {
		res.fail(src, OpCopy, errors.Wrapf(err, errors.ErrCopy, "cannot read %s", src))
		return res
	}

	targets := []string{dst}
	for _, legacy := range i.env.Class.LegacyConfigNames() {
		legacyPath := filepath.Join(filepath.Dir(dst), legacy)
		if legacyPath != dst {
			targets = append(targets, legacyPath)
		}
	}

	for _, target := range targets {
		res.merge(i.writeConfig(data, target))
	}
	return res
}

func (i *Installer) writeConfig(data []byte, dst string) SyncResult {
	var res SyncResult

	if !i.backupInto(dst, &res) {
		return res
	}

	if i.opts.DryRun {
		i.logger.Info().Str("dst", dst).Msg("Would install configuration file")
		res.Installed = append(res.Installed, dst)
		return res
	}

	if err := i.fs.MkdirAll(filepath.Dir(dst), dirMode); err != nil {
		res.fail(dst, OpCopy, errors.Wrapf(err, errors.ErrCopy, "cannot create %s", filepath.Dir(dst)))
		return res
	}
	if err := i.fs.WriteFile(dst, data, fileMode); err != nil {
		res.fail(dst, OpCopy, errors.Wrapf(err, errors.ErrCopy, "cannot write %s", dst))
		return res
	}

	i.logger.Info().Str("dst", dst).Msg("Installed configuration file")
	res.Installed = append(res.Installed, dst)
	return res
}

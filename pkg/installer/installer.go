package installer

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/vimdot/pkg/errors"
	"github.com/arthur-debert/vimdot/pkg/logging"
	"github.com/arthur-debert/vimdot/pkg/paths"
	"github.com/arthur-debert/vimdot/pkg/types"
	"github.com/rs/zerolog"
)

// Options controls what a run does. It is fixed when the Installer is built.
type Options struct {
	// Source layout, relative to the source root
	ConfigName  string
	PayloadName string
	BinName     string

	// Profile integration
	ProfileIntegration bool
	ProfileFiles       []string
	ProfileVariable    string
	ProfileValue       string
	ProfileComment     string
	PersistUserEnv     bool

	DryRun bool
}

// Installer runs the install pass against one TargetEnvironment
type Installer struct {
	env    paths.TargetEnvironment
	fs     types.FS
	opts   Options
	logger zerolog.Logger

	// Clock drives backup timestamps
	Clock func() time.Time
	// Setenv applies the editor-init variable to the current process
	Setenv func(key, value string) error
	// SetUserEnv persists the editor-init variable in the platform store
	SetUserEnv func(key, value string) error
}

// New creates an Installer. Empty layout options fall back to the defaults.
func New(env paths.TargetEnvironment, fs types.FS, opts Options) *Installer {
	if opts.ConfigName == "" {
		opts.ConfigName = paths.DefaultConfigName
	}
	if opts.PayloadName == "" {
		opts.PayloadName = paths.DefaultPayloadName
	}
	return &Installer{
		env:        env,
		fs:         fs,
		opts:       opts,
		logger:     logging.GetLogger("installer"),
		Clock:      time.Now,
		Setenv:     os.Setenv,
		SetUserEnv: setUserEnv,
	}
}

// Environment returns the environment the installer targets
func (i *Installer) Environment() paths.TargetEnvironment {
	return i.env
}

// SourceConfig is the bundled configuration file
func (i *Installer) SourceConfig() string {
	return filepath.Join(i.env.SourceRoot, i.opts.ConfigName)
}

// SourcePayload is the bundled payload directory
func (i *Installer) SourcePayload() string {
	return filepath.Join(i.env.SourceRoot, i.opts.PayloadName)
}

func (i *Installer) timestamp() string {
	return strconv.FormatInt(i.Clock().Unix(), 10)
}

type step struct {
	name string
	run  func(ctx context.Context, res *Results) error
}

// Run executes the whole pass. The returned Results are never nil and reflect
// whatever was done before a fatal error or an interruption.
func (i *Installer) Run(ctx context.Context) (*Results, error) {
	res := newResults(i.env, i.opts.DryRun)

	steps := []step{
		{"preflight", func(ctx context.Context, _ *Results) error { return i.Preflight(ctx) }},
		{"config", i.configStep},
		{"payload", i.payloadStep},
		{"profile", i.profileStep},
	}

	i.logger.Info().
		Str("source", i.env.SourceRoot).
		Str("home", i.env.HomeDir).
		Bool("dryRun", i.opts.DryRun).
		Msg("Starting install")

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return i.abort(res, interrupted(err))
		}
		done := logging.LogOperationStart(i.logger, s.name)
		err := s.run(ctx, res)
		done()
		if err != nil {
			return i.abort(res, err)
		}
	}

	res.Completed = true
	i.logger.Info().
		Int("copied", res.Copied()).
		Int("backups", len(res.Backups)).
		Int("failed", res.Failed()).
		Msg("Install finished")
	return res, nil
}

func (i *Installer) abort(res *Results, err error) (*Results, error) {
	res.Error = err.Error()
	i.logger.Error().Err(err).Msg("Install aborted")
	return res, err
}

func interrupted(err error) error {
	return errors.Wrap(err, errors.ErrInterrupted, "installation interrupted")
}

// Preflight checks that the source tree is complete. It touches nothing.
func (i *Installer) Preflight(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return interrupted(err)
	}

	configPath := i.SourceConfig()
	info, err := i.fs.Stat(configPath)
	if err != nil || info.IsDir() {
		return errors.Newf(errors.ErrMissingSource, "configuration file not found: %s", configPath).
			WithDetail("path", configPath)
	}

	payloadPath := i.SourcePayload()
	info, err = i.fs.Stat(payloadPath)
	if err != nil || !info.IsDir() {
		return errors.Newf(errors.ErrMissingSource, "payload directory not found: %s", payloadPath).
			WithDetail("path", payloadPath)
	}

	if err := i.checkOverlap(); err != nil {
		return err
	}

	i.logger.Debug().Str("config", configPath).Str("payload", payloadPath).Msg("Preflight passed")
	return nil
}

// checkOverlap refuses a source tree that the run would back up or
// overwrite, such as a checkout cloned into ~/.vim.
func (i *Installer) checkOverlap() error {
	root := filepath.Clean(i.env.SourceRoot)
	if i.env.ConfigDir != "" && within(i.env.ConfigDir, root) {
		return errors.Newf(errors.ErrSourceOverlap,
			"source %s is inside the install directory %s; move the checkout or pass --source", root, i.env.ConfigDir).
			WithDetail("path", root)
	}

	src := i.SourceConfig()
	dsts := append([]string{i.env.ConfigFile}, i.env.LegacyConfigFiles...)
	for _, dst := range dsts {
		if dst != "" && filepath.Clean(dst) == src {
			return errors.Newf(errors.ErrSourceOverlap,
				"source configuration %s is the install target; move the checkout or pass --source", src).
				WithDetail("path", src)
		}
	}
	return nil
}

// within reports whether path is dir or lies below it
func within(dir, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func (i *Installer) configStep(_ context.Context, res *Results) error {
	res.addSync(i.InstallConfigFile(i.SourceConfig(), i.env.ConfigFile))
	return nil
}

func (i *Installer) payloadStep(ctx context.Context, res *Results) error {
	dst := i.env.ConfigDir

	backup, err := i.BackupIfPresent(dst)
	if err != nil {
		// Never merge into a directory we could not preserve
		res.addFailure(dst, OpBackup, err)
		return nil
	}
	if backup != "" {
		res.Backups = append(res.Backups, BackupRecord{Original: dst, Backup: backup})
	}

	sync, err := i.SyncTree(ctx, i.SourcePayload(), dst)
	res.addSync(sync)
	return err
}

func (i *Installer) profileStep(_ context.Context, res *Results) error {
	if !i.opts.ProfileIntegration || i.opts.ProfileVariable == "" {
		return nil
	}

	res.EnvVar = i.opts.ProfileVariable + "=" + i.opts.ProfileValue
	if err := i.ApplyEnvironment(); err != nil {
		res.addFailure(i.opts.ProfileVariable, OpUserEnv, err)
	}

	if !i.env.Class.SupportsProfiles() {
		return nil
	}

	profile := i.RegisterProfileIntegration(i.opts.ProfileFiles, i.ProfileLine())
	res.Profile = profile
	res.Failures = append(res.Failures, profile.Failures...)
	return nil
}

// ApplyEnvironment sets the editor-init variable for the current process and,
// on windows-native hosts, in the user's environment store.
func (i *Installer) ApplyEnvironment() error {
	key, value := i.opts.ProfileVariable, i.opts.ProfileValue
	if i.opts.DryRun {
		i.logger.Info().Str("var", key).Str("value", value).Msg("Would set environment variable")
		return nil
	}

	if err := i.Setenv(key, value); err != nil {
		return errors.Wrapf(err, errors.ErrUserEnv, "failed to set %s", key)
	}

	if i.opts.PersistUserEnv && !i.env.Class.SupportsProfiles() {
		if err := i.SetUserEnv(key, value); err != nil {
			return errors.Wrapf(err, errors.ErrUserEnv, "failed to persist %s in the user environment", key)
		}
		i.logger.Info().Str("var", key).Msg("Persisted environment variable")
	}
	return nil
}

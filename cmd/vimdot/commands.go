package vimdot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/vimdot/internal/version"
	"github.com/arthur-debert/vimdot/pkg/config"
	vderrors "github.com/arthur-debert/vimdot/pkg/errors"
	"github.com/arthur-debert/vimdot/pkg/installer"
	"github.com/arthur-debert/vimdot/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newInstallCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, opts)
		},
	}
}

// runInstall resolves the environment, runs the installer and prints the
// summary. The summary is printed even when the run fails part way.
func runInstall(cmd *cobra.Command, opts *globalOptions) error {
	logger := logging.GetLogger("cmd.install")

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	renderer := rendererFor(cmd, cfg)

	env, err := resolverFor(cfg).Resolve()
	if err != nil {
		_ = renderer.RenderError(err)
		return reported(err)
	}

	inst := installer.New(env, newFS(), installerOptions(cfg, env))
	res, runErr := inst.Run(cmd.Context())
	if err := renderer.RenderResults(res); err != nil {
		logger.Warn().Err(err).Msg("Failed to render summary")
	}

	if runErr != nil {
		return reported(runErr)
	}
	if cfg.Install.Strict && res.HasWarnings() {
		return reported(fmt.Errorf(MsgErrWarnings, res.Failed()))
	}
	return nil
}

func newEnvCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "env",
		Short:   MsgEnvShort,
		Long:    MsgEnvLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			renderer := rendererFor(cmd, cfg)

			env, err := resolverFor(cfg).Resolve()
			if err != nil {
				_ = renderer.RenderError(err)
				return reported(err)
			}
			return renderer.RenderEnvironment(env)
		},
	}
}

func newGenConfigCmd(opts *globalOptions) *cobra.Command {
	var write, effective bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GenerateConfigContent()
			if effective {
				cfg, err := loadConfig(cmd, opts)
				if err != nil {
					return err
				}
				data, err := config.Marshal(cfg)
				if err != nil {
					return err
				}
				content = string(data)
			}

			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			path := opts.userConfigPath()
			fsys := newFS()
			if _, err := fsys.Lstat(path); err == nil {
				return vderrors.Newf(vderrors.ErrInvalidInput, MsgErrConfigExists, path).WithDetail("path", path)
			}
			if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return vderrors.Wrapf(err, vderrors.ErrInternal, "cannot create %s", filepath.Dir(path))
			}
			if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
				return vderrors.Wrapf(err, vderrors.ErrInternal, "cannot write %s", path)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, path)
			return err
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Delegates to "help topics"
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil && helpCmd.Name() == "help" {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				}
				if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "vimdot version %s\n", version.Version)
			_, _ = fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			_, err := fmt.Fprintf(out, "  built:  %s\n", version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return vderrors.Wrapf(err, vderrors.ErrInternal, "cannot create %s", dir)
			}
			header := &doc.GenManHeader{
				Title:   "VIMDOT",
				Section: "1",
				Source:  "vimdot " + version.Version,
			}
			return doc.GenManTree(cmd.Root(), header, dir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", MsgFlagManDir)
	return cmd
}

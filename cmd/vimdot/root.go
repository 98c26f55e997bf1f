package vimdot

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/arthur-debert/vimdot/internal/version"
	"github.com/arthur-debert/vimdot/pkg/cobrax/topics"
	"github.com/arthur-debert/vimdot/pkg/filesystem"
	"github.com/arthur-debert/vimdot/pkg/logging"
	"github.com/arthur-debert/vimdot/pkg/paths"
	"github.com/arthur-debert/vimdot/pkg/ui/styles"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// exitFailure is returned for fatal errors, interruptions and strict warnings
const exitFailure = 1

// Seams replaced in tests
var (
	newResolver = paths.NewResolver
	newFS       = filesystem.NewOS
)

// globalOptions holds the persistent flags
type globalOptions struct {
	verbosity  int
	dryRun     bool
	strict     bool
	noProfile  bool
	source     string
	home       string
	format     string
	configPath string
}

// NewRootCmd creates and returns the root command. Running it without a
// subcommand performs the install.
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "vimdot",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.String(),
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(logging.Options{Verbosity: opts.verbosity, DryRun: opts.dryRun})
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, opts)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.BoolVar(&opts.strict, "strict", false, MsgFlagStrict)
	flags.BoolVar(&opts.noProfile, "no-profile", false, MsgFlagNoProfile)
	flags.StringVar(&opts.source, "source", "", MsgFlagSource)
	flags.StringVar(&opts.home, "home", "", MsgFlagHome)
	flags.StringVar(&opts.format, "format", "", MsgFlagFormat)
	flags.StringVar(&opts.configPath, "config", "", MsgFlagConfig)

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "term", "text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.MarkPersistentFlagDirname("source")
	_ = rootCmd.MarkPersistentFlagDirname("home")

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInstallCmd(opts))
	rootCmd.AddCommand(newEnvCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	if _, err := topics.Initialize(rootCmd, topicFS(), topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// Execute runs the CLI with ctx and returns the process exit status
func Execute(ctx context.Context) int {
	return runRoot(ctx, NewRootCmd())
}

func runRoot(ctx context.Context, rootCmd *cobra.Command) (code int) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Unhandled panic")
			fmt.Fprintln(rootCmd.ErrOrStderr(), styles.Render("Error", fmt.Sprintf("Error: internal failure: %v", r)))
			code = exitFailure
		}
	}()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var rep reportedError
	if !errors.As(err, &rep) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), styles.Render("Error", fmt.Sprintf("Error: %v", err)))
	}
	return exitFailure
}

// reportedError wraps an error a renderer has already shown to the user
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return reportedError{err: err}
}

package vimdot

import (
	"github.com/arthur-debert/vimdot/pkg/config"
	"github.com/arthur-debert/vimdot/pkg/display"
	"github.com/arthur-debert/vimdot/pkg/installer"
	"github.com/arthur-debert/vimdot/pkg/paths"
	"github.com/spf13/cobra"
)

// overrides turns explicitly set flags into configuration keys, so flags win
// over every other layer without clobbering it with flag defaults.
func (o *globalOptions) overrides(cmd *cobra.Command) map[string]interface{} {
	flags := cmd.Flags()
	out := make(map[string]interface{})

	if flags.Changed("source") {
		out["source.root"] = o.source
	}
	if flags.Changed("home") {
		out["install.home"] = o.home
	}
	if flags.Changed("dry-run") {
		out["install.dry_run"] = o.dryRun
	}
	if flags.Changed("strict") {
		out["install.strict"] = o.strict
	}
	if flags.Changed("no-profile") {
		out["profile.enabled"] = !o.noProfile
	}
	if flags.Changed("format") {
		out["output.format"] = o.format
	}
	return out
}

func (o *globalOptions) userConfigPath() string {
	if o.configPath != "" {
		return paths.ExpandHome(o.configPath)
	}
	return paths.ConfigFilePath()
}

// loadConfig merges every configuration layer. The source root's own
// .vimdot.toml can only be found once the source root is known, so the
// layers are loaded once to locate it and again to include it.
func loadConfig(cmd *cobra.Command, o *globalOptions) (*config.Config, error) {
	load := func(sourceRoot string) (*config.Config, error) {
		return config.Load(config.LoadOptions{
			UserConfigPath: o.userConfigPath(),
			SourceRoot:     sourceRoot,
			Overrides:      o.overrides(cmd),
		})
	}

	cfg, err := load("")
	if err != nil {
		return nil, err
	}
	root, err := resolverFor(cfg).ResolveSourceRoot()
	if err != nil {
		return nil, err
	}
	return load(root)
}

func resolverFor(cfg *config.Config) *paths.Resolver {
	r := newResolver()
	r.SourceRoot = cfg.Source.Root
	r.HomeDir = cfg.Install.Home
	r.EditorNames = cfg.Editor.Names
	r.ConfigName = cfg.Source.ConfigName
	r.PayloadName = cfg.Source.PayloadName
	return r
}

func installerOptions(cfg *config.Config, env paths.TargetEnvironment) installer.Options {
	return installer.Options{
		ConfigName:         cfg.Source.ConfigName,
		PayloadName:        cfg.Source.PayloadName,
		BinName:            cfg.Source.BinName,
		ProfileIntegration: cfg.Profile.Enabled,
		ProfileFiles:       cfg.Profile.ProfilePaths(env.HomeDir),
		ProfileVariable:    cfg.Profile.Variable,
		ProfileValue:       cfg.Profile.ProfileValue(env.ConfigFile),
		ProfileComment:     cfg.Profile.Comment,
		PersistUserEnv:     cfg.Profile.PersistUserEnv,
		DryRun:             cfg.Install.DryRun,
	}
}

func rendererFor(cmd *cobra.Command, cfg *config.Config) display.Renderer {
	format, err := display.ParseFormat(cfg.Output.Format)
	if err != nil {
		format = display.FormatAuto
	}
	return display.NewRenderer(format, cmd.OutOrStdout())
}

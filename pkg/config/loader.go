package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	vderrors "github.com/arthur-debert/vimdot/pkg/errors"
	"github.com/arthur-debert/vimdot/pkg/logging"
	"github.com/arthur-debert/vimdot/pkg/paths"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix is the prefix for configuration environment variables
const EnvPrefix = "VIMDOT_"

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// LoadOptions selects the optional layers to load
type LoadOptions struct {
	// UserConfigPath is the user configuration file; skipped if missing
	UserConfigPath string

	// SourceRoot, when set, is searched for a .vimdot.toml file
	SourceRoot string

	// Overrides are dotted keys applied last (usually from CLI flags)
	Overrides map[string]interface{}
}

// Load merges defaults, files, environment and overrides into a Config
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, vderrors.Wrap(err, vderrors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config, 3. source root config
	files := []string{opts.UserConfigPath}
	if opts.SourceRoot != "" {
		files = append(files, filepath.Join(opts.SourceRoot, paths.SourceConfigFile))
	}
	for _, path := range files {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, vderrors.Wrapf(err, vderrors.ErrConfigLoad, "failed to load config from %s", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, vderrors.Wrap(err, vderrors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, vderrors.Wrap(err, vderrors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, vderrors.Wrap(err, vderrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps VIMDOT_SECTION_SOME_KEY to section.some_key. Variables without
// a section (VIMDOT_CONFIG) are skipped.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, ok := strings.Cut(s, "_")
	if !ok || section == "" || key == "" {
		return ""
	}
	return section + "." + key
}

func validate(cfg *Config) error {
	if cfg.Source.ConfigName == "" || cfg.Source.PayloadName == "" {
		return vderrors.New(vderrors.ErrInvalidInput, "source.config_name and source.payload_name must not be empty")
	}
	if strings.ContainsAny(cfg.Source.ConfigName, `/\`) {
		return vderrors.Newf(vderrors.ErrInvalidInput, "source.config_name must be a file name, got %q", cfg.Source.ConfigName)
	}
	if cfg.Profile.Enabled && cfg.Profile.Variable == "" {
		return vderrors.New(vderrors.ErrInvalidInput, "profile.variable must be set when profile integration is enabled")
	}
	switch cfg.Output.Format {
	case "", "auto", "term", "terminal", "text", "plain", "json":
	default:
		return vderrors.Newf(vderrors.ErrInvalidInput, "unknown output format: %s", cfg.Output.Format)
	}
	return nil
}

// DefaultContent returns the embedded defaults file
func DefaultContent() string {
	return string(defaultConfig)
}

// Marshal renders cfg as TOML
func Marshal(cfg *Config) ([]byte, error) {
	out, err := gotoml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return out, nil
}

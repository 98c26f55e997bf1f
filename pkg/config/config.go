package config

import (
	"path/filepath"
	"strings"
)

// Config is the complete, merged vimdot configuration
type Config struct {
	Source  Source  `koanf:"source" toml:"source"`
	Editor  Editor  `koanf:"editor" toml:"editor"`
	Install Install `koanf:"install" toml:"install"`
	Profile Profile `koanf:"profile" toml:"profile"`
	Output  Output  `koanf:"output" toml:"output"`
}

// Source describes the bundled source tree layout
type Source struct {
	Root        string `koanf:"root" toml:"root"`
	ConfigName  string `koanf:"config_name" toml:"config_name"`
	PayloadName string `koanf:"payload_name" toml:"payload_name"`
	BinName     string `koanf:"bin_name" toml:"bin_name"`
}

// Editor holds editor discovery settings
type Editor struct {
	Names []string `koanf:"names" toml:"names"`
}

// Install holds run behavior settings
type Install struct {
	Home   string `koanf:"home" toml:"home"`
	Strict bool   `koanf:"strict" toml:"strict"`
	DryRun bool   `koanf:"dry_run" toml:"dry_run"`
}

// Profile holds shell profile integration settings
type Profile struct {
	Enabled        bool     `koanf:"enabled" toml:"enabled"`
	Files          []string `koanf:"files" toml:"files"`
	Variable       string   `koanf:"variable" toml:"variable"`
	Value          string   `koanf:"value" toml:"value"`
	Comment        string   `koanf:"comment" toml:"comment"`
	PersistUserEnv bool     `koanf:"persist_user_env" toml:"persist_user_env"`
}

// Output holds summary rendering settings
type Output struct {
	Format string `koanf:"format" toml:"format"`
}

// ConfigPlaceholder is substituted in Profile.Value
const ConfigPlaceholder = "{config}"

// ProfileValue renders the editor-init value for the installed config file.
func (p Profile) ProfileValue(configFile string) string {
	return strings.ReplaceAll(p.Value, ConfigPlaceholder, filepath.ToSlash(configFile))
}

// ProfilePaths resolves the configured profile files against homeDir.
func (p Profile) ProfilePaths(homeDir string) []string {
	out := make([]string, 0, len(p.Files))
	for _, f := range p.Files {
		f = strings.TrimSpace(f)
		switch {
		case f == "":
			continue
		case filepath.IsAbs(f):
			out = append(out, f)
		case strings.HasPrefix(f, "~/"):
			out = append(out, filepath.Join(homeDir, f[2:]))
		default:
			out = append(out, filepath.Join(homeDir, f))
		}
	}
	return out
}

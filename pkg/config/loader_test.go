package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	vderrors "github.com/arthur-debert/vimdot/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, ".vimrc", cfg.Source.ConfigName)
	assert.Equal(t, "vim", cfg.Source.PayloadName)
	assert.Equal(t, "bin", cfg.Source.BinName)
	assert.Equal(t, []string{"vim", "nvim", "gvim", "vi"}, cfg.Editor.Names)
	assert.True(t, cfg.Profile.Enabled)
	assert.Equal(t, "VIMINIT", cfg.Profile.Variable)
	assert.Contains(t, cfg.Profile.Files, ".bashrc")
	assert.Equal(t, "auto", cfg.Output.Format)
	assert.False(t, cfg.Install.Strict)
}

func TestLoadLayering(t *testing.T) {
	userDir := t.TempDir()
	userFile := filepath.Join(userDir, "config.toml")
	require.NoError(t, os.WriteFile(userFile, []byte(`
[install]
strict = true

[profile]
variable = "MYVIMINIT"
files = [".zshrc"]
`), 0644))

	sourceRoot := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(sourceRoot, ".vimdot.toml"), []byte(`
[profile]
variable = "SOURCEVIMINIT"
`), 0644))

	t.Run("user_file_overrides_defaults", func(t *testing.T) {
		cfg, err := Load(LoadOptions{UserConfigPath: userFile})
		require.NoError(t, err)

		assert.True(t, cfg.Install.Strict)
		assert.Equal(t, "MYVIMINIT", cfg.Profile.Variable)
		assert.Equal(t, []string{".zshrc"}, cfg.Profile.Files)
	})

	t.Run("source_root_overrides_user_file", func(t *testing.T) {
		cfg, err := Load(LoadOptions{UserConfigPath: userFile, SourceRoot: sourceRoot})
		require.NoError(t, err)

		assert.Equal(t, "SOURCEVIMINIT", cfg.Profile.Variable)
		assert.True(t, cfg.Install.Strict)
	})

	t.Run("env_overrides_files", func(t *testing.T) {
		t.Setenv("VIMDOT_PROFILE_VARIABLE", "ENVVIMINIT")
		t.Setenv("VIMDOT_EDITOR_NAMES", "nvim,vim")
		t.Setenv("VIMDOT_INSTALL_DRY_RUN", "true")

		cfg, err := Load(LoadOptions{UserConfigPath: userFile, SourceRoot: sourceRoot})
		require.NoError(t, err)

		assert.Equal(t, "ENVVIMINIT", cfg.Profile.Variable)
		assert.Equal(t, []string{"nvim", "vim"}, cfg.Editor.Names)
		assert.True(t, cfg.Install.DryRun)
	})

	t.Run("overrides_win", func(t *testing.T) {
		t.Setenv("VIMDOT_PROFILE_VARIABLE", "ENVVIMINIT")

		cfg, err := Load(LoadOptions{
			UserConfigPath: userFile,
			Overrides: map[string]interface{}{
				"profile.variable": "FLAGVIMINIT",
				"profile.enabled":  false,
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "FLAGVIMINIT", cfg.Profile.Variable)
		assert.False(t, cfg.Profile.Enabled)
	})
}

func TestLoadMissingUserFileIsIgnored(t *testing.T) {
	cfg, err := Load(LoadOptions{UserConfigPath: filepath.Join(t.TempDir(), "nope.toml")})
	require.NoError(t, err)
	assert.Equal(t, ".vimrc", cfg.Source.ConfigName)
}

func TestLoadInvalidFile(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[profile\nvariable = "), 0644))

	_, err := Load(LoadOptions{UserConfigPath: bad})
	require.Error(t, err)
	assert.True(t, vderrors.IsErrorCode(err, vderrors.ErrConfigLoad))
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]interface{}
	}{
		{"empty_config_name", map[string]interface{}{"source.config_name": ""}},
		{"config_name_with_separator", map[string]interface{}{"source.config_name": "etc/vimrc"}},
		{"missing_variable", map[string]interface{}{"profile.variable": ""}},
		{"bad_format", map[string]interface{}{"output.format": "yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(LoadOptions{Overrides: tt.overrides})
			require.Error(t, err)
			assert.True(t, vderrors.IsErrorCode(err, vderrors.ErrInvalidInput))
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "profile.variable", envKey("VIMDOT_PROFILE_VARIABLE"))
	assert.Equal(t, "source.config_name", envKey("VIMDOT_SOURCE_CONFIG_NAME"))
	assert.Equal(t, "", envKey("VIMDOT_CONFIG"))
}

func TestProfileHelpers(t *testing.T) {
	p := Profile{
		Files: []string{".bashrc", "~/.zshrc", "/etc/profile.d/vim.sh", " "},
		Value: "source {config}",
	}

	assert.Equal(t, []string{
		filepath.Join("/home/u", ".bashrc"),
		filepath.Join("/home/u", ".zshrc"),
		"/etc/profile.d/vim.sh",
	}, p.ProfilePaths("/home/u"))
	assert.Equal(t, "source /home/u/.vimrc", p.ProfileValue("/home/u/.vimrc"))
}

func TestMarshal(t *testing.T) {
	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	out, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "[profile]")
	assert.Contains(t, string(out), "VIMINIT")
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	assert.Contains(t, content, "[profile]")
	assert.Contains(t, content, `# enabled = true`)
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "[") {
			continue
		}
		t.Errorf("uncommented value line: %q", line)
	}
}

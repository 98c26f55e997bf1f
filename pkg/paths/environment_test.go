package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	vderrors "github.com/arthur-debert/vimdot/pkg/errors"
	"github.com/arthur-debert/vimdot/pkg/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLookPath(found map[string]string) func(string) (string, error) {
	return func(name string) (string, error) {
		if p, ok := found[name]; ok {
			return p, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
}

func newTestResolver(t *testing.T, probe platform.Probe) (*Resolver, string) {
	t.Helper()
	bundle := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bundle, ".vimrc"), []byte("set nocompatible\n"), 0644))

	return &Resolver{
		Probe:       probe,
		Executable:  func() (string, error) { return filepath.Join(bundle, "vimdot"), nil },
		LookPath:    fakeLookPath(map[string]string{"vim": "/usr/bin/vim"}),
		ConfigName:  DefaultConfigName,
		PayloadName: DefaultPayloadName,
	}, bundle
}

func TestResolveUnix(t *testing.T) {
	r, bundle := newTestResolver(t, platform.Probe{
		GOOS: "linux",
		Env:  map[string]string{"HOME": "/home/alice"},
	})

	env, err := r.Resolve()
	require.NoError(t, err)

	assert.Equal(t, platform.UnixNative, env.Class)
	assert.Equal(t, filepath.Clean("/home/alice"), env.HomeDir)
	assert.Equal(t, filepath.Join("/home/alice", ".vim"), env.ConfigDir)
	assert.Equal(t, filepath.Join("/home/alice", ".vimrc"), env.ConfigFile)
	assert.Empty(t, env.LegacyConfigFiles)
	assert.Equal(t, bundle, env.SourceRoot)
	assert.Equal(t, "/usr/bin/vim", env.EditorPath)
}

func TestResolveWindowsNative(t *testing.T) {
	r, _ := newTestResolver(t, platform.Probe{
		GOOS: "windows",
		Env:  map[string]string{"USERPROFILE": "/users/bob", "HOME": "/ignored"},
	})

	env, err := r.Resolve()
	require.NoError(t, err)

	assert.Equal(t, platform.WindowsNative, env.Class)
	assert.Equal(t, filepath.Clean("/users/bob"), env.HomeDir)
	assert.Equal(t, filepath.Join("/users/bob", "vimfiles"), env.ConfigDir)
	assert.Equal(t, []string{filepath.Join("/users/bob", "_vimrc")}, env.LegacyConfigFiles)
}

func TestResolveWindowsPosixCompat(t *testing.T) {
	r, _ := newTestResolver(t, platform.Probe{
		GOOS: "windows",
		Env:  map[string]string{"MSYSTEM": "MINGW64", "HOME": "/c/Users/bob", "USERPROFILE": "/ignored"},
	})

	env, err := r.Resolve()
	require.NoError(t, err)

	assert.Equal(t, platform.WindowsPosixCompat, env.Class)
	assert.Equal(t, filepath.Join("/c/Users/bob", ".vim"), env.ConfigDir)
	assert.Empty(t, env.LegacyConfigFiles)
}

func TestResolveSourceRootFromParentDir(t *testing.T) {
	bundle := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bundle, ".vimrc"), nil, 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(bundle, "bin"), 0755))

	r := &Resolver{
		Probe:      platform.Probe{GOOS: "linux", Env: map[string]string{"HOME": "/home/a"}},
		Executable: func() (string, error) { return filepath.Join(bundle, "bin", "vimdot"), nil },
		LookPath:   fakeLookPath(map[string]string{"vim": "/usr/bin/vim"}),
	}

	env, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, bundle, env.SourceRoot)
}

func TestResolveOverrides(t *testing.T) {
	r, _ := newTestResolver(t, platform.Probe{GOOS: "linux", Env: map[string]string{"HOME": "/home/alice"}})
	src := t.TempDir()
	r.SourceRoot = src
	r.HomeDir = "/srv/home"
	r.EditorNames = []string{"nvim"}
	r.LookPath = fakeLookPath(map[string]string{"nvim": "/opt/nvim"})

	env, err := r.Resolve()
	require.NoError(t, err)

	assert.Equal(t, src, env.SourceRoot)
	assert.Equal(t, filepath.Clean("/srv/home"), env.HomeDir)
	assert.Equal(t, "/opt/nvim", env.EditorPath)
}

func TestResolveEditorFallbackOrder(t *testing.T) {
	r, _ := newTestResolver(t, platform.Probe{GOOS: "linux", Env: map[string]string{"HOME": "/h"}})
	r.LookPath = fakeLookPath(map[string]string{"gvim": "/usr/bin/gvim", "vi": "/usr/bin/vi"})

	env, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/gvim", env.EditorPath)
}

func TestResolveEditorMissing(t *testing.T) {
	r, _ := newTestResolver(t, platform.Probe{GOOS: "linux", Env: map[string]string{"HOME": "/h"}})
	r.LookPath = fakeLookPath(nil)

	_, err := r.Resolve()
	require.Error(t, err)
	assert.True(t, vderrors.IsErrorCode(err, vderrors.ErrEnvironment))
	assert.True(t, vderrors.IsFatal(err))
}

func TestResolveExecutableError(t *testing.T) {
	r, _ := newTestResolver(t, platform.Probe{GOOS: "linux", Env: map[string]string{"HOME": "/h"}})
	r.Executable = func() (string, error) { return "", errors.New("no /proc") }

	_, err := r.Resolve()
	require.Error(t, err)
	assert.True(t, vderrors.IsErrorCode(err, vderrors.ErrEnvironment))
}

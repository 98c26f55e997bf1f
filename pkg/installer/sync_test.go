package installer

import (
	"context"
	"errors"
	"os"
	"runtime"
	"testing"

	vderrors "github.com/arthur-debert/vimdot/pkg/errors"
	"github.com/arthur-debert/vimdot/pkg/platform"
	"github.com/arthur-debert/vimdot/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncTreeFlattensPayload(t *testing.T) {
	f := newFixture(t, testutil.EnvMemoryOnly, platform.UnixNative, Options{})
	f.env.WithSourceTree(bundledSource())

	res, err := f.inst.SyncTree(context.Background(), f.env.Source("vim"), f.env.Home(".vim"))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Copied())
	assert.Equal(t, 0, res.Failed())
	assert.Equal(t, []string{
		"pluginA/plugin/a.vim",
		"pluginB/plugin/b.vim",
	}, testutil.ListFiles(t, f.env.FS, f.env.Home(".vim")))
	assert.False(t, f.env.Exists(f.env.Home(".vim", "vim")), "payload must not be nested")
}

func TestSyncTreeMergesWithExistingSiblings(t *testing.T) {
	f := newFixture(t, testutil.EnvMemoryOnly, platform.UnixNative, Options{})
	f.env.WithSourceTree(bundledSource())
	f.env.WithHomeTree(testutil.FileTree{
		".vim": testutil.FileTree{
			"spell":   testutil.FileTree{"en.utf-8.add": "words"},
			"pluginA": testutil.FileTree{"plugin": testutil.FileTree{"a.vim": pluginAScript}},
			"pluginB": testutil.FileTree{"plugin": testutil.FileTree{"b.vim": "locally edited"}},
		},
	})

	res, err := f.inst.SyncTree(context.Background(), f.env.Source("vim"), f.env.Home(".vim"))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Copied())
	assert.Equal(t, 1, res.Unchanged)
	require.Len(t, res.Backups, 1)

	assert.Equal(t, "words", f.env.ReadFile(f.env.Home(".vim", "spell", "en.utf-8.add")))
	assert.Equal(t, pluginBScript, f.env.ReadFile(f.env.Home(".vim", "pluginB", "plugin", "b.vim")))
	assert.Equal(t, f.env.Home(".vim", "pluginB", "plugin", "b.vim"), res.Backups[0].Original)
	assert.Equal(t, "locally edited", f.env.ReadFile(res.Backups[0].Backup))
}

func TestSyncTreePartialFailure(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithSourceTree(testutil.FileTree{
		"vim": testutil.FileTree{
			"one.vim":   "1",
			"two.vim":   "2",
			"three.vim": "3",
			"four.vim":  "4",
		},
	})
	locked := env.Home(".vim", "three.vim")
	ffs := testutil.NewFailingFS(env.FS).Fail(testutil.OpWrite, locked, errors.New("file is in use"))
	f := newFixtureWithFS(t, env, ffs, platform.UnixNative, Options{})

	res, err := f.inst.SyncTree(context.Background(), env.Source("vim"), env.Home(".vim"))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Copied())
	require.Equal(t, 1, res.Failed())
	assert.Equal(t, locked, res.Failures[0].Path)
	assert.Equal(t, OpCopy, res.Failures[0].Op)
	assert.Equal(t, vderrors.ErrCopy, res.Failures[0].Code)
	assert.Equal(t, []string{"four.vim", "one.vim", "two.vim"}, testutil.ListFiles(t, env.FS, env.Home(".vim")))
}

func TestSyncTreeBackupFailureSkipsOverwrite(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithSourceTree(testutil.FileTree{"vim": testutil.FileTree{"a.vim": "new"}})
	env.WithHomeTree(testutil.FileTree{".vim": testutil.FileTree{"a.vim": "old"}})
	ffs := testutil.NewFailingFS(env.FS).Fail(testutil.OpRename, env.Home(".vim", "a.vim"), errors.New("locked"))
	f := newFixtureWithFS(t, env, ffs, platform.UnixNative, Options{})

	res, err := f.inst.SyncTree(context.Background(), env.Source("vim"), env.Home(".vim"))
	require.NoError(t, err)

	assert.Equal(t, 0, res.Copied())
	require.Equal(t, 1, res.Failed())
	assert.Equal(t, OpBackup, res.Failures[0].Op)
	assert.Equal(t, "old", env.ReadFile(env.Home(".vim", "a.vim")))
}

func TestSyncTreeReplacesFileWithDirectory(t *testing.T) {
	f := newFixture(t, testutil.EnvMemoryOnly, platform.UnixNative, Options{})
	f.env.WithSourceTree(bundledSource())
	f.env.WithHomeTree(testutil.FileTree{".vim": testutil.FileTree{"pluginA": "a stray file"}})

	res, err := f.inst.SyncTree(context.Background(), f.env.Source("vim"), f.env.Home(".vim"))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Copied())
	require.Len(t, res.Backups, 1)
	assert.Equal(t, "a stray file", f.env.ReadFile(res.Backups[0].Backup))
	assert.Equal(t, pluginAScript, f.env.ReadFile(f.env.Home(".vim", "pluginA", "plugin", "a.vim")))
}

func TestSyncTreeMakesBinExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no executable bits on windows")
	}

	f := newFixture(t, testutil.EnvIsolated, platform.UnixNative, Options{BinName: "bin"})
	f.env.WithSourceTree(testutil.FileTree{
		"vim": testutil.FileTree{
			"bin":    testutil.FileTree{"helper": "#!/bin/sh\necho hi\n"},
			"plugin": testutil.FileTree{"p.vim": "\" p"},
		},
	})

	res, err := f.inst.SyncTree(context.Background(), f.env.Source("vim"), f.env.Home(".vim"))
	require.NoError(t, err)
	require.Equal(t, 0, res.Failed())

	info, err := os.Stat(f.env.Home(".vim", "bin", "helper"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0100, "helper should be executable")

	info, err = os.Stat(f.env.Home(".vim", "plugin", "p.vim"))
	require.NoError(t, err)
	assert.Zero(t, info.Mode().Perm()&0111, "plugin files should not be executable")
}

func TestSyncTreeRestoresExecBitOnUnchangedFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no executable bits on windows")
	}

	f := newFixture(t, testutil.EnvIsolated, platform.UnixNative, Options{BinName: "bin"})
	f.env.WithSourceTree(testutil.FileTree{"vim": testutil.FileTree{"bin": testutil.FileTree{"helper": "same"}}})
	f.env.WithHomeTree(testutil.FileTree{".vim": testutil.FileTree{"bin": testutil.FileTree{"helper": "same"}}})

	res, err := f.inst.SyncTree(context.Background(), f.env.Source("vim"), f.env.Home(".vim"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Unchanged)

	info, err := os.Stat(f.env.Home(".vim", "bin", "helper"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0100)
}

func TestSyncTreeInterrupted(t *testing.T) {
	f := newFixture(t, testutil.EnvMemoryOnly, platform.UnixNative, Options{})
	f.env.WithSourceTree(bundledSource())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := f.inst.SyncTree(ctx, f.env.Source("vim"), f.env.Home(".vim"))
	require.Error(t, err)
	assert.True(t, vderrors.IsErrorCode(err, vderrors.ErrInterrupted))
	assert.Equal(t, 0, res.Copied())
}

func TestSyncTreeDryRun(t *testing.T) {
	f := newFixture(t, testutil.EnvMemoryOnly, platform.UnixNative, Options{DryRun: true})
	f.env.WithSourceTree(bundledSource())

	res, err := f.inst.SyncTree(context.Background(), f.env.Source("vim"), f.env.Home(".vim"))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Copied())
	assert.False(t, f.env.Exists(f.env.Home(".vim")))
}

func TestSyncTreeMissingSource(t *testing.T) {
	f := newFixture(t, testutil.EnvMemoryOnly, platform.UnixNative, Options{})

	res, err := f.inst.SyncTree(context.Background(), f.env.Source("vim"), f.env.Home(".vim"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed())
}

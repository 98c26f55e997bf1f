package installer

import (
	"testing"

	"github.com/arthur-debert/vimdot/pkg/platform"
	"github.com/arthur-debert/vimdot/pkg/testutil"
	"github.com/arthur-debert/vimdot/pkg/types"
)

const (
	testEpoch     = 1700000000
	sourceVimrc   = "\" bundled vimrc\nset nocompatible\n"
	pluginAScript = "\" plugin A\n"
	pluginBScript = "\" plugin B\n"
)

func bundledSource() testutil.FileTree {
	return testutil.FileTree{
		".vimrc": sourceVimrc,
		"vim": testutil.FileTree{
			"pluginA": testutil.FileTree{"plugin": testutil.FileTree{"a.vim": pluginAScript}},
			"pluginB": testutil.FileTree{"plugin": testutil.FileTree{"b.vim": pluginBScript}},
		},
	}
}

type fixture struct {
	env   *testutil.TestEnvironment
	clock *testutil.Clock
	inst  *Installer
	vars  map[string]string
}

func newFixture(t *testing.T, envType testutil.EnvType, class platform.Class, opts Options) *fixture {
	t.Helper()
	env := testutil.NewTestEnvironment(t, envType)
	return newFixtureWithFS(t, env, env.FS, class, opts)
}

func newFixtureWithFS(t *testing.T, env *testutil.TestEnvironment, fs types.FS, class platform.Class, opts Options) *fixture {
	t.Helper()
	f := &fixture{
		env:   env,
		clock: testutil.NewClock(testEpoch),
		vars:  make(map[string]string),
	}
	f.inst = New(env.Target(class), fs, opts)
	f.inst.Clock = f.clock.Now
	f.inst.Setenv = func(k, v string) error {
		f.vars[k] = v
		return nil
	}
	f.inst.SetUserEnv = func(k, v string) error {
		f.vars["user:"+k] = v
		return nil
	}
	return f
}

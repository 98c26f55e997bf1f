package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/arthur-debert/vimdot/pkg/filesystem"
	"github.com/arthur-debert/vimdot/pkg/paths"
	"github.com/arthur-debert/vimdot/pkg/platform"
	"github.com/arthur-debert/vimdot/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a source root and a home directory on one FS
type TestEnvironment struct {
	SourceRoot string
	HomeDir    string
	FS         types.FS
	Type       EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.SourceRoot = "/virtual/src"
		env.HomeDir = "/virtual/home"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		tempDir := t.TempDir()
		env.SourceRoot = filepath.Join(tempDir, "src")
		env.HomeDir = filepath.Join(tempDir, "home")
		env.FS = filesystem.NewOS()
	}

	for _, dir := range []string{env.SourceRoot, env.HomeDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	return env
}

// Target builds the TargetEnvironment the installer would resolve for class
func (env *TestEnvironment) Target(class platform.Class) paths.TargetEnvironment {
	target := paths.TargetEnvironment{
		Class:      class,
		HomeDir:    env.HomeDir,
		ConfigDir:  filepath.Join(env.HomeDir, class.ConfigDirName()),
		ConfigFile: filepath.Join(env.HomeDir, paths.DefaultConfigName),
		SourceRoot: env.SourceRoot,
		EditorPath: "/usr/bin/vim",
	}
	for _, legacy := range class.LegacyConfigNames() {
		target.LegacyConfigFiles = append(target.LegacyConfigFiles, filepath.Join(env.HomeDir, legacy))
	}
	return target
}

// WithSourceTree creates tree under the source root
func (env *TestEnvironment) WithSourceTree(tree FileTree) *TestEnvironment {
	env.t.Helper()
	CreateFileTree(env.t, env.FS, env.SourceRoot, tree)
	return env
}

// WithHomeTree creates tree under the home directory
func (env *TestEnvironment) WithHomeTree(tree FileTree) *TestEnvironment {
	env.t.Helper()
	CreateFileTree(env.t, env.FS, env.HomeDir, tree)
	return env
}

// Home joins elements onto the home directory
func (env *TestEnvironment) Home(elem ...string) string {
	return filepath.Join(append([]string{env.HomeDir}, elem...)...)
}

// Source joins elements onto the source root
func (env *TestEnvironment) Source(elem ...string) string {
	return filepath.Join(append([]string{env.SourceRoot}, elem...)...)
}

// ReadFile returns the content of path, failing the test if it can't be read
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(path)
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// Exists reports whether path exists
func (env *TestEnvironment) Exists(path string) bool {
	_, err := env.FS.Lstat(path)
	return err == nil
}

// Backups lists the backup paths of original, sorted
func (env *TestEnvironment) Backups(original string) []string {
	env.t.Helper()
	entries, err := env.FS.ReadDir(filepath.Dir(original))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		env.t.Fatalf("Failed to list %s: %v", filepath.Dir(original), err)
	}

	prefix := filepath.Base(original) + paths.BackupInfix
	var out []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), prefix) {
			out = append(out, filepath.Join(filepath.Dir(original), e.Name()))
		}
	}
	sort.Strings(out)
	return out
}

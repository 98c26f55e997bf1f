package paths

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/arthur-debert/vimdot/pkg/errors"
	"github.com/arthur-debert/vimdot/pkg/logging"
	"github.com/arthur-debert/vimdot/pkg/platform"
)

// Default source layout, relative to the source root
const (
	DefaultConfigName  = ".vimrc"
	DefaultPayloadName = "vim"
)

// DefaultEditorNames are tried in order when looking for the editor
var DefaultEditorNames = []string{"vim", "nvim", "gvim", "vi"}

// TargetEnvironment is the resolved host context for one run. It is built once
// by Resolve and never mutated afterwards.
type TargetEnvironment struct {
	Class platform.Class `json:"class"`

	// HomeDir is the user's home directory
	HomeDir string `json:"homeDir"`

	// ConfigDir is the editor runtime directory the payload is synced into
	ConfigDir string `json:"configDir"`

	// ConfigFile is the primary installed configuration file
	ConfigFile string `json:"configFile"`

	// LegacyConfigFiles are additional copies required by some platforms
	LegacyConfigFiles []string `json:"legacyConfigFiles,omitempty"`

	// SourceRoot is the directory holding the bundled configuration
	SourceRoot string `json:"sourceRoot"`

	// EditorPath is where the editor executable was found
	EditorPath string `json:"editorPath"`
}

// Resolver turns a probe plus overrides into a TargetEnvironment. Zero-valued
// function fields fall back to the os and exec implementations.
type Resolver struct {
	Probe platform.Probe

	// Executable returns the path of the running installer
	Executable func() (string, error)
	// LookPath finds an executable on PATH
	LookPath func(file string) (string, error)

	// Overrides. Empty means "detect".
	SourceRoot  string
	HomeDir     string
	EditorNames []string

	// Source layout
	ConfigName  string
	PayloadName string
}

// NewResolver returns a Resolver for the current process.
func NewResolver() *Resolver {
	return &Resolver{
		Probe:       platform.ProbeFromOS(),
		Executable:  os.Executable,
		LookPath:    exec.LookPath,
		ConfigName:  DefaultConfigName,
		PayloadName: DefaultPayloadName,
	}
}

// Resolve detects the target environment. It fails with an ENVIRONMENT error
// when the home directory or the editor cannot be found.
func (r *Resolver) Resolve() (TargetEnvironment, error) {
	logger := logging.GetLogger("paths.resolve")

	class := platform.Classify(r.Probe)
	logger.Debug().Str("class", class.String()).Str("goos", r.Probe.GOOS).Msg("Classified platform")

	sourceRoot, err := r.ResolveSourceRoot()
	if err != nil {
		return TargetEnvironment{}, err
	}

	homeDir, err := r.resolveHome(class)
	if err != nil {
		return TargetEnvironment{}, err
	}

	editor, err := r.resolveEditor()
	if err != nil {
		return TargetEnvironment{}, err
	}

	configName := r.configName()
	env := TargetEnvironment{
		Class:      class,
		HomeDir:    homeDir,
		ConfigDir:  filepath.Join(homeDir, class.ConfigDirName()),
		ConfigFile: filepath.Join(homeDir, configName),
		SourceRoot: sourceRoot,
		EditorPath: editor,
	}
	for _, legacy := range class.LegacyConfigNames() {
		if legacy == configName {
			continue
		}
		env.LegacyConfigFiles = append(env.LegacyConfigFiles, filepath.Join(homeDir, legacy))
	}

	logger.Info().
		Str("class", class.String()).
		Str("home", env.HomeDir).
		Str("configDir", env.ConfigDir).
		Str("source", env.SourceRoot).
		Str("editor", env.EditorPath).
		Msg("Resolved environment")

	return env, nil
}

func (r *Resolver) configName() string {
	if r.ConfigName == "" {
		return DefaultConfigName
	}
	return r.ConfigName
}

// ResolveSourceRoot finds the bundled source tree relative to the installer
// binary. The first candidate containing the configuration file wins; when
// none does, the binary's own directory is returned and preflight reports it.
func (r *Resolver) ResolveSourceRoot() (string, error) {
	if r.SourceRoot != "" {
		abs, err := filepath.Abs(ExpandHome(r.SourceRoot))
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid source root %s", r.SourceRoot)
		}
		return abs, nil
	}

	executable := r.Executable
	if executable == nil {
		executable = os.Executable
	}
	exePath, err := executable()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrEnvironment, "cannot determine installer location")
	}
	if resolved, err := filepath.EvalSymlinks(exePath); err == nil {
		exePath = resolved
	}

	exeDir := filepath.Dir(exePath)
	candidates := []string{exeDir, filepath.Dir(exeDir)}
	for _, dir := range candidates {
		if info, err := os.Stat(filepath.Join(dir, r.configName())); err == nil && !info.IsDir() {
			return dir, nil
		}
	}
	return exeDir, nil
}

func (r *Resolver) resolveHome(class platform.Class) (string, error) {
	if r.HomeDir != "" {
		return filepath.Clean(ExpandHome(r.HomeDir)), nil
	}
	for _, key := range class.HomeEnvVars() {
		if v := r.Probe.Getenv(key); v != "" {
			return filepath.Clean(v), nil
		}
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home, nil
	}
	return "", errors.New(errors.ErrEnvironment, "cannot determine home directory").
		WithDetail("vars", class.HomeEnvVars())
}

func (r *Resolver) resolveEditor() (string, error) {
	names := r.EditorNames
	if len(names) == 0 {
		names = DefaultEditorNames
	}
	lookPath := r.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	for _, name := range names {
		if p, err := lookPath(name); err == nil {
			return p, nil
		}
	}
	return "", errors.Newf(errors.ErrEnvironment, "editor not found on PATH (tried %v)", names).
		WithDetail("candidates", names)
}

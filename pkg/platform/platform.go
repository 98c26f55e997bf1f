// Package platform classifies the host into one of the three environments
// vimdot knows how to install into. Classification is a pure function of a
// Probe so that it can be computed once at startup and passed around as data.
package platform

import (
	"os"
	"runtime"
	"strings"
)

// Class is the host environment family. It decides which directory and file
// naming conventions apply.
type Class string

const (
	UnixNative         Class = "unix-native"
	WindowsNative      Class = "windows-native"
	WindowsPosixCompat Class = "windows-posix-compat"
)

// Probe holds the raw inputs to classification.
type Probe struct {
	// GOOS is the platform identifier string ("linux", "darwin", "windows", ...)
	GOOS string
	Env  map[string]string
}

// ProbeFromOS captures the current process' platform and environment.
func ProbeFromOS() Probe {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = v
		}
	}
	return Probe{GOOS: runtime.GOOS, Env: env}
}

// Getenv returns the probed value of key, or "".
func (p Probe) Getenv(key string) string {
	return p.Env[key]
}

// Classify maps a probe onto a Class. Same probe, same answer.
func Classify(p Probe) Class {
	if p.GOOS != "windows" {
		return UnixNative
	}
	if isPosixLayer(p) {
		return WindowsPosixCompat
	}
	return WindowsNative
}

// isPosixLayer detects MSYS2, Git Bash and Cygwin shells running on windows.
func isPosixLayer(p Probe) bool {
	if p.Getenv("MSYSTEM") != "" || p.Getenv("CYGWIN") != "" {
		return true
	}
	ostype := strings.ToLower(p.Getenv("OSTYPE"))
	if strings.Contains(ostype, "cygwin") || strings.Contains(ostype, "msys") {
		return true
	}
	return p.Getenv("TERM") == "cygwin"
}

// ConfigDirName is the editor's runtime directory name under the home directory.
func (c Class) ConfigDirName() string {
	if c == WindowsNative {
		return "vimfiles"
	}
	return ".vim"
}

// LegacyConfigNames lists extra file names the configuration file is also
// written to, so that both native and console builds of the editor find it.
func (c Class) LegacyConfigNames() []string {
	if c == WindowsNative {
		return []string{"_vimrc"}
	}
	return nil
}

// HomeEnvVars lists the variables consulted, in order, for the home directory.
func (c Class) HomeEnvVars() []string {
	if c == WindowsNative {
		return []string{"USERPROFILE", "HOME"}
	}
	return []string{"HOME", "USERPROFILE"}
}

// ExecutableBits reports whether files need the executable mode bit set to run.
func (c Class) ExecutableBits() bool {
	return c != WindowsNative
}

// SupportsProfiles reports whether POSIX shell profiles are the place to
// persist environment variables.
func (c Class) SupportsProfiles() bool {
	return c != WindowsNative
}

func (c Class) String() string {
	return string(c)
}

package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigFile overrides the location of the user configuration file
	EnvConfigFile = "VIMDOT_CONFIG"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for vimdot-owned files under XDG homes
	AppDirName = "vimdot"

	// UserConfigFile is the name of the user configuration file
	UserConfigFile = "config.toml"

	// SourceConfigFile is the optional per-checkout configuration file
	SourceConfigFile = ".vimdot.toml"

	// BackupInfix separates the original path from the timestamp in backup names
	BackupInfix = ".backup-"
)

// ConfigFilePath returns the user configuration file location:
// $VIMDOT_CONFIG if set, else $XDG_CONFIG_HOME/vimdot/config.toml.
func ConfigFilePath() string {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return ExpandHome(p)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName, UserConfigFile)
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == '\\' {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user forms are left alone
	return path
}

// BackupPath returns the backup name for path at the given timestamp.
func BackupPath(path, timestamp string) string {
	return strings.TrimRight(path, `/\`) + BackupInfix + timestamp
}

package vimdot

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Install a bundled vim configuration, keeping backups"
	MsgInstallShort    = "Install the bundled configuration (default command)"
	MsgEnvShort        = "Show the resolved install environment"
	MsgGenConfigShort  = "Generate a configuration file"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Report what would change without changing anything"
	MsgFlagStrict    = "Exit with status 1 when anything was skipped"
	MsgFlagSource    = "Directory holding the bundled configuration (default: next to the binary)"
	MsgFlagHome      = "Install into this home directory"
	MsgFlagNoProfile = "Do not set the editor-init variable or touch shell profiles"
	MsgFlagFormat    = "Output format: auto, term, text or json"
	MsgFlagConfig    = "User configuration file (default: $XDG_CONFIG_HOME/vimdot/config.toml)"
	MsgFlagWrite     = "Write the generated configuration to the user config file"
	MsgFlagEffective = "Print the merged configuration instead of the defaults"
	MsgFlagManDir    = "Directory to write man pages to"

	// Status messages
	MsgConfigWritten = "Wrote configuration to %s\n"

	// Error messages
	MsgErrWarnings     = "completed with %d warning(s)"
	MsgErrConfigExists = "configuration file already exists: %s"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/env-long.txt
	msgEnvLongRaw string
	MsgEnvLong    = strings.TrimSpace(msgEnvLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/genconfig-example.txt
	msgGenConfigExampleRaw string
	MsgGenConfigExample    = strings.TrimRight(msgGenConfigExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)

// Package paths resolves every filesystem location vimdot reads from or
// writes to.
//
// The result of resolution is a TargetEnvironment: an immutable record built
// once per run from an explicit platform.Probe plus optional overrides. Nothing
// downstream looks at the process environment again, which keeps the installer
// testable with injected fake paths.
//
// Tool-owned locations (log file, user configuration file) follow the XDG Base
// Directory layout through github.com/adrg/xdg.
package paths

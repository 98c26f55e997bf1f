package display

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/vimdot/pkg/installer"
	"github.com/arthur-debert/vimdot/pkg/paths"
)

// summaryRenderer renders human-readable output. style is a no-op for plain
// text and applies the named lipgloss style on terminals.
type summaryRenderer struct {
	w     io.Writer
	style func(name, text string) string
}

func (r *summaryRenderer) RenderResults(res *installer.Results) error {
	p := &printer{w: r.w}
	home := res.Environment.HomeDir
	short := func(path string) string { return r.style("FilePath", tildify(path, home)) }

	if res.DryRun {
		p.println(r.style("DryRunBanner", "Dry run: nothing was changed"))
	}

	switch {
	case !res.Completed:
		p.println(r.style("Error", "Installation did not complete"))
	case res.HasWarnings():
		p.println(r.style("Warning", "Installed with warnings"))
	default:
		p.println(r.style("Success", "Installed editor configuration"))
	}
	p.printf("  %s %s\n", r.style("Muted", "from"), r.style("FilePath", res.Environment.SourceRoot))
	if res.Environment.ConfigFile != "" {
		p.printf("  %s %s, %s\n", r.style("Muted", "to  "), short(res.Environment.ConfigFile), short(res.Environment.ConfigDir))
	}
	p.printf("\n  %s copied, %s unchanged, %s backed up, %s failed\n",
		r.style("Bold", strconv.Itoa(res.Copied())),
		r.style("Bold", strconv.Itoa(res.Unchanged)),
		r.style("Bold", strconv.Itoa(len(res.Backups))),
		r.style("Bold", strconv.Itoa(res.Failed())))

	if len(res.Backups) > 0 {
		p.printf("\n%s\n", r.style("Section", "Backups"))
		for _, b := range res.Backups {
			p.printf("  %s -> %s\n", short(b.Original), short(b.Backup))
		}
	}

	if len(res.Profile.Added) > 0 || len(res.Profile.Present) > 0 || res.EnvVar != "" {
		p.printf("\n%s\n", r.style("Section", "Environment"))
		if res.EnvVar != "" {
			p.printf("  set %s\n", r.style("Bold", res.EnvVar))
		}
		for _, profile := range res.Profile.Added {
			p.printf("  added to %s\n", short(profile))
		}
		for _, profile := range res.Profile.Present {
			p.printf("  %s %s\n", r.style("Muted", "already in"), short(profile))
		}
	}

	if len(res.Failures) > 0 {
		p.printf("\n%s\n", r.style("Section", "Failures"))
		for _, f := range res.Failures {
			p.printf("  %s %s: %s\n", r.style("Warning", "["+f.Op+"]"), short(f.Path), f.Message)
		}
	}

	if res.Error != "" {
		p.printf("\n%s %s\n", r.style("Error", "Error:"), res.Error)
	}
	return p.err
}

func (r *summaryRenderer) RenderEnvironment(env paths.TargetEnvironment) error {
	p := &printer{w: r.w}
	row := func(label, value string) {
		p.printf("%s %s\n", r.style("Muted", padRight(label, 10)), value)
	}

	row("platform", r.style("Bold", env.Class.String()))
	row("source", r.style("FilePath", env.SourceRoot))
	row("home", r.style("FilePath", env.HomeDir))
	row("config", r.style("FilePath", env.ConfigFile))
	for _, legacy := range env.LegacyConfigFiles {
		row("legacy", r.style("FilePath", legacy))
	}
	row("runtime", r.style("FilePath", env.ConfigDir))
	row("editor", r.style("FilePath", env.EditorPath))
	return p.err
}

func (r *summaryRenderer) RenderError(err error) error {
	p := &printer{w: r.w}
	p.printf("%s %v\n", r.style("Error", "Error:"), err)
	return p.err
}

// tildify shortens paths under home to ~/...
func tildify(path, home string) string {
	if home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	rel, err := filepath.Rel(home, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return "~" + string(filepath.Separator) + rel
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

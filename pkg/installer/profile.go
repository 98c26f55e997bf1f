package installer

import (
	"bytes"
	"os"
	"strings"

	"github.com/arthur-debert/vimdot/pkg/errors"
)

const defaultProfileComment = "# Added by vimdot"

// ProfileLine is the export line appended to shell profiles
func (i *Installer) ProfileLine() string {
	return "export " + i.opts.ProfileVariable + "=" + shellQuote(i.opts.ProfileValue)
}

// shellQuote single-quotes s for POSIX shells
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// RegisterProfileIntegration appends line to every existing profile that does
// not already contain it as a whole line. Profiles that already have it are
// left byte-for-byte unchanged; missing profiles are skipped.
func (i *Installer) RegisterProfileIntegration(profiles []string, line string) ProfileResult {
	res := ProfileResult{Line: line}

	for _, profile := range profiles {
		content, err := i.fs.ReadFile(profile)
		if err != nil {
			if os.IsNotExist(err) {
				res.Missing = append(res.Missing, profile)
				continue
			}
			res.Failures = append(res.Failures, newFailure(profile, OpProfile,
				errors.Wrapf(err, errors.ErrProfileWrite, "cannot read %s", profile)))
			continue
		}

		if hasLine(content, line) {
			i.logger.Debug().Str("profile", profile).Msg("Profile already integrated")
			res.Present = append(res.Present, profile)
			continue
		}

		if i.opts.DryRun {
			i.logger.Info().Str("profile", profile).Str("line", line).Msg("Would append to profile")
			res.Added = append(res.Added, profile)
			continue
		}

		if err := i.appendBlock(profile, content, line); err != nil {
			res.Failures = append(res.Failures, newFailure(profile, OpProfile,
				errors.Wrapf(err, errors.ErrProfileWrite, "cannot append to %s", profile)))
			continue
		}
		i.logger.Info().Str("profile", profile).Msg("Added profile integration")
		res.Added = append(res.Added, profile)
	}
	return res
}

// hasLine reports whether content contains line as an exact whole line.
// A trailing carriage return is ignored so CRLF files match too.
func hasLine(content []byte, line string) bool {
	for _, l := range bytes.Split(content, []byte("\n")) {
		if string(bytes.TrimSuffix(l, []byte("\r"))) == line {
			return true
		}
	}
	return false
}

func (i *Installer) appendBlock(profile string, content []byte, line string) error {
	comment := i.opts.ProfileComment
	if comment == "" {
		comment = defaultProfileComment
	}

	var block strings.Builder
	if len(content) > 0 && content[len(content)-1] != '\n' {
		block.WriteString("\n")
	}
	block.WriteString("\n")
	block.WriteString(comment)
	block.WriteString("\n")
	block.WriteString(line)
	block.WriteString("\n")

	f, err := i.fs.OpenFile(profile, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	if _, err := f.Write([]byte(block.String())); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

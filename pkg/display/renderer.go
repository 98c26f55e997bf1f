package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/vimdot/pkg/installer"
	"github.com/arthur-debert/vimdot/pkg/paths"
	"github.com/arthur-debert/vimdot/pkg/ui/styles"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderResults renders the summary of a run, complete or not
	RenderResults(res *installer.Results) error

	// RenderEnvironment renders the resolved target environment
	RenderEnvironment(env paths.TargetEnvironment) error

	// RenderError renders a fatal error that produced no results
	RenderError(err error) error
}

// NewRenderer creates a renderer for format. FormatAuto inspects output when
// it is a file and falls back to plain text otherwise.
func NewRenderer(format Format, output io.Writer) Renderer {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return &summaryRenderer{w: output, style: styles.Render}
	case FormatJSON:
		return newJSONRenderer(output)
	default:
		return &summaryRenderer{w: output, style: plain}
	}
}

func plain(_, text string) string { return text }

type jsonRenderer struct {
	encoder *json.Encoder
}

func newJSONRenderer(output io.Writer) *jsonRenderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &jsonRenderer{encoder: encoder}
}

func (r *jsonRenderer) RenderResults(res *installer.Results) error {
	return r.encoder.Encode(res)
}

func (r *jsonRenderer) RenderEnvironment(env paths.TargetEnvironment) error {
	return r.encoder.Encode(env)
}

func (r *jsonRenderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]string{"error": err.Error()})
}

// printer accumulates the first write error so rendering code stays linear
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(s string) {
	p.printf("%s\n", s)
}

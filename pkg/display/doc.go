// Package display renders the outcome of an install run.
//
// Rendering is pure reporting: it reads installer.Results and writes to an
// io.Writer. Three renderers are available: a styled terminal renderer, a
// plain text renderer for pipes and NO_COLOR, and JSON for scripting.
package display

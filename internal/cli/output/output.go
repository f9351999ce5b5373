// Package output renders command output in text, markdown, or JSON.
// Text mode is styled for terminals; markdown is the fallback when
// stdout is piped, so scripted use stays readable.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out  io.Writer
	errw io.Writer
	mode Mode

	styles *Styles
}

// NewRenderer creates a renderer. Mode "" or "auto" picks text when
// stdout is a terminal and markdown otherwise.
func NewRenderer(out, errw io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{out: out, errw: errw, mode: mode}
}

// EffectiveMode resolves auto into text or markdown.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok {
		if stat, err := f.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			if termenv.NewOutput(f).ColorProfile() != termenv.Ascii {
				return ModeText
			}
		}
	}
	return ModeMarkdown
}

// Writer returns the underlying output writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the underlying error writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errw
}

// Println writes a line to the output writer.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to the output writer.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Errorf writes formatted output to the error writer.
func (r *Renderer) Errorf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.errw, format, a...)
}

// Styles holds the lipgloss styles used by text mode.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Hint    lipgloss.Style
	Success lipgloss.Style
}

// Styles returns the style set, built lazily.
func (r *Renderer) Styles() *Styles {
	if r.styles == nil {
		r.styles = &Styles{
			Header1: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
			Header2: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
			Bold:    lipgloss.NewStyle().Bold(true),
			Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
			Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Hint:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		}
	}
	return r.styles
}

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/KimMachineGun/automock/internal/automock"
)

// DiagnosticError is an expansion failure in one input file.
type DiagnosticError struct {
	File   string
	Source string
	Diag   *automock.Diagnostic
}

func (e *DiagnosticError) Error() string {
	if !e.Diag.Span.Start.IsValid() {
		return fmt.Sprintf("%s: %s", e.File, e.Diag.Msg)
	}

	return fmt.Sprintf("%s:%v", e.File, e.Diag)
}

func (e *DiagnosticError) Unwrap() error {
	return e.Diag
}

type diagnosticStyles struct {
	location lipgloss.Style
	severity lipgloss.Style
	gutter   lipgloss.Style
	caret    lipgloss.Style
}

func newDiagnosticStyles(w io.Writer, color bool) diagnosticStyles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return diagnosticStyles{
		location: r.NewStyle().Bold(true),
		severity: r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		gutter:   r.NewStyle().Foreground(lipgloss.Color("4")),
		caret:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
}

// Render formats the diagnostic with the offending source line and a caret
// under the reported column.
func (e *DiagnosticError) Render(styles diagnosticStyles) string {
	var sb strings.Builder

	start := e.Diag.Span.Start
	loc := e.File
	if start.IsValid() {
		loc = fmt.Sprintf("%s:%v", e.File, start)
	}
	fmt.Fprintf(&sb, "%s %s %s\n", styles.location.Render(loc+":"), styles.severity.Render("error:"), e.Diag.Msg)

	line, ok := sourceLine(e.Source, start.Line)
	if !start.IsValid() || !ok {
		return sb.String()
	}

	num := fmt.Sprint(start.Line)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(&sb, "%s %s\n", styles.gutter.Render(num+" |"), line)
	fmt.Fprintf(&sb, "%s %s%s\n", styles.gutter.Render(pad+" |"), caretIndent(line, start.Column), styles.caret.Render("^"))

	return sb.String()
}

func sourceLine(src string, n int) (string, bool) {
	lines := strings.Split(src, "\n")
	if n < 1 || n > len(lines) {
		return "", false
	}

	return strings.TrimRight(lines[n-1], "\r"), true
}

// caretIndent keeps the tabs of line up to column so the caret lines up.
func caretIndent(line string, column int) string {
	var sb strings.Builder
	for i, r := range []rune(line) {
		if i >= column-1 {
			break
		}
		if r == '\t' {
			sb.WriteRune('\t')
		} else {
			sb.WriteByte(' ')
		}
	}

	return sb.String()
}

func useColor(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Package output prints CLI results and diagnostics.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Stdout and Stderr are where messages go; tests replace them
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Error prints an error message to stderr
func Error(format string, args ...any) {
	fmt.Fprintln(Stderr, errorStyle.Render("ERROR")+" "+fmt.Sprintf(format, args...))
}

// Warning prints a warning to stderr
func Warning(format string, args ...any) {
	fmt.Fprintln(Stderr, warningStyle.Render("WARNING")+" "+fmt.Sprintf(format, args...))
}

// Success prints a confirmation to stdout
func Success(format string, args ...any) {
	fmt.Fprintln(Stdout, successStyle.Render(fmt.Sprintf(format, args...)))
}

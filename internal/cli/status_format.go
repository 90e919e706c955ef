// Package cli provides status formatting helpers.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/themetoggle/themetoggle/internal/detect"
	"github.com/themetoggle/themetoggle/internal/models"
)

var (
	styleOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleErr   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleLight = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleDark  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	styleMuted = lipgloss.NewStyle().Faint(true)
)

func colorEnabled() bool {
	if noColor || IsJSONOutput() {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// applyColorProfile strips styling from all rendered output when color is
// disabled.
func applyColorProfile() {
	if !colorEnabled() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

func colorize(text string, style lipgloss.Style) string {
	return style.Render(text)
}

func formatResultStatus(err error) string {
	if err == nil {
		return colorize("OK", styleOK)
	}
	return colorize(formatStatusLabel("ERR", shortError(err)), styleErr)
}

func formatMode(mode models.ThemeMode) string {
	if mode.IsLight() {
		return colorize(mode.String(), styleLight)
	}
	return colorize(mode.String(), styleDark)
}

func formatSource(source detect.Source) string {
	switch source {
	case detect.SourceSystem, detect.SourceSettings:
		return colorize(string(source), styleOK)
	case detect.SourceDefault:
		return colorize(string(source), styleWarn)
	default:
		return colorize(string(source), styleMuted)
	}
}

func formatOptional(value string) string {
	if value == "" {
		return colorize("-", styleMuted)
	}
	return value
}

func formatStatusLabel(label, status string) string {
	normalized := strings.TrimSpace(status)
	if normalized == "" {
		return label
	}
	return fmt.Sprintf("%s %s", label, normalized)
}

// shortError keeps the first line of err for table cells.
func shortError(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return msg
}

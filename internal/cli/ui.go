package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/stepwall/pkg/core/classify"
)

// Terminal palette. Met, missed and future days reuse the wallpaper's
// white, red and grey.
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim    = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue  = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFail    = lipgloss.NewStyle().Foreground(colorRed)
	styleNote    = lipgloss.NewStyle().Foreground(colorGray)
	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// statusOut receives every status line. Stdout is reserved for image data
// and machine-readable output.
var statusOut io.Writer = os.Stderr

func status(icon string, style lipgloss.Style, format string, args ...any) {
	fmt.Fprintf(statusOut, "%s %s\n", style.Render(icon), fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status("✓", styleOK, format, args...) }
func printError(format string, args ...any)   { status("✗", styleFail, format, args...) }
func printInfo(format string, args ...any)    { status("›", styleNote, format, args...) }

// printDetail prints a muted, indented line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(statusOut, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints the render outcome on one line, e.g.
// "2 met · 0 missed · 100% hit · 363 days left · fresh".
func printStats(counts classify.Counts, stats classify.Stats, cached bool) {
	parts := []string{
		fmt.Sprintf("%d met", counts.Met),
		fmt.Sprintf("%d missed", counts.Missed),
		fmt.Sprintf("%d%% hit", stats.PercentHit),
		fmt.Sprintf("%d days left", stats.DaysLeft),
	}
	origin := styleNote.Render("fresh")
	if cached {
		origin = styleOK.Render("cached")
	}
	sep := StyleDim.Render(" · ")
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(strings.Join(parts, " · "))+sep+origin)
}

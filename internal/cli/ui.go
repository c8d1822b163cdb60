package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives all user-facing status lines.
var stdout io.Writer = os.Stdout

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)

	styleValue       = lipgloss.NewStyle().Foreground(colorWhite)
	styleWarning     = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

// marker is the coloured glyph in front of a status line.
type marker struct {
	glyph string
	style lipgloss.Style
}

var (
	markSuccess = marker{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	markError   = marker{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	markWarning = marker{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	markInfo    = marker{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func (m marker) print(text string) {
	fmt.Fprintln(stdout, m.style.Render(m.glyph)+" "+text)
}

// =============================================================================
// Status lines
// =============================================================================

func printSuccess(format string, args ...any) {
	markSuccess.print(fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	markError.print(fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	markWarning.print(styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	markInfo.print(fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written output file.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+styleValue.Render(path))
}

// runStats summarizes one route, render or layout run.
type runStats struct {
	Tiles   int
	Drawn   int
	Skipped int
	Cached  bool
}

// printStats prints s as one dot-separated line, e.g.
// "3 tiles · 2 connections · 1 skipped · cached".
func printStats(s runStats) {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d tiles", s.Tiles)),
		StyleDim.Render(fmt.Sprintf("%d connections", s.Drawn)),
	}
	if s.Skipped > 0 {
		parts = append(parts, styleWarning.Render(fmt.Sprintf("%d skipped", s.Skipped)))
	}
	if s.Cached {
		parts = append(parts, markSuccess.style.Render("cached"))
	} else {
		parts = append(parts, markInfo.style.Render("fresh"))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep suggests the command to run after this one.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

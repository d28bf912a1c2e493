// Package tui provides the interactive stage editor for blockstage.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/blockstage/internal/block"
)

// Color palette for the stage editor.
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorWarning = lipgloss.Color("#F59E0B") // Yellow
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorActive  = lipgloss.Color("#3B82F6") // Blue
	ColorBorder  = lipgloss.Color("#4B5563") // Dark gray

	// Block category colors, as on the original toolbar.
	ColorMotion  = lipgloss.Color("#3B82F6") // Blue
	ColorLooks   = lipgloss.Color("#A855F7") // Purple
	ColorControl = lipgloss.Color("#F59E0B") // Amber
)

// Base styles.
var (
	// StyleTitle is used for the header.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleSubtitle is used for secondary information.
	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleSprite is used for sprite names.
	StyleSprite = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleActiveSprite is used for the selected sprite.
	StyleActiveSprite = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorActive)

	// StyleCursor marks the selected block.
	StyleCursor = lipgloss.NewStyle().
			Bold(true).
			Reverse(true)

	// StyleRunning is used for the running badge.
	StyleRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	// StyleIdle is used for the idle badge.
	StyleIdle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleHelp is used for help text at the bottom.
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	// StyleHelpKey is used for keyboard shortcut keys.
	StyleHelpKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	// StyleHelpDesc is used for keyboard shortcut descriptions.
	StyleHelpDesc = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Box styles for the panels.
var (
	// StyleStageBox frames the stage while idle.
	StyleStageBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// StyleRunningStageBox frames the stage during a run.
	StyleRunningStageBox = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorSuccess).
				Padding(0, 1)

	// StyleBlocksBox frames the program panel.
	StyleBlocksBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)

// CategoryStyle returns the style for blocks of category c.
func CategoryStyle(c block.Category) lipgloss.Style {
	switch c {
	case block.CategoryMotion:
		return lipgloss.NewStyle().Foreground(ColorMotion)
	case block.CategoryLooks:
		return lipgloss.NewStyle().Foreground(ColorLooks)
	case block.CategoryControl:
		return lipgloss.NewStyle().Foreground(ColorControl)
	default:
		return StyleSubtitle
	}
}

// ProgressBar creates a bar of width cells filled to percentage.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	filledStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	emptyStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", empty))
}

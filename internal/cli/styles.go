// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// SuccessColor indicates an accepted extraction.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates a low-confidence result queued for review.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates a failed extraction.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates secondary detail.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#95E1D3")).
			MarginBottom(1)

	// SuccessStyle formats accepted results.
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)

	// WarningStyle formats review-queue results.
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)

	// ErrorStyle formats failures.
	ErrorStyle = lipgloss.NewStyle().Foreground(ErrorColor)

	// SubtleStyle formats diagnostics and secondary text.
	SubtleStyle = lipgloss.NewStyle().Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().Bold(true)
)

// Confidence renders a confidence value colored by the caller's
// accept threshold.
func Confidence(value, threshold float64) string {
	text := fmt.Sprintf("%.2f", value)
	if value >= threshold {
		return SuccessStyle.Render(text)
	}
	return WarningStyle.Render(text)
}

package dashboard

import "github.com/charmbracelet/lipgloss"

// MinLeftWidth is the minimum character width for the left pane.
const MinLeftWidth = 28

// Dialog size bounds, in cells, including the border.
const (
	maxDialogWidth  = 72
	maxDialogHeight = 24
	dialogMargin    = 4
)

var (
	accentColor = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	dimColor    = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}

	activeTabText = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	mutedText     = lipgloss.NewStyle().Foreground(dimColor)
	headingText   = lipgloss.NewStyle().Bold(true)
	errorText     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})
	triggerText   = lipgloss.NewStyle().Foreground(accentColor)
	factLabelText = lipgloss.NewStyle().Foreground(dimColor)
)

// FocusedBorder returns a lipgloss style with an accent-colored rounded border.
func FocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor)
}

// UnfocusedBorder returns a lipgloss style with a dim rounded border.
func UnfocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"})
}

// DialogBorder returns the style of the detail dialog box.
func DialogBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(accentColor).
		Padding(0, 1)
}

// PaneWidths calculates the left and right pane widths from a total width.
// Left pane gets 1/3 (minimum MinLeftWidth), right pane gets the rest.
func PaneWidths(totalWidth int) (left, right int) {
	if totalWidth <= 0 {
		return 0, 0
	}
	left = totalWidth / 3
	if left < MinLeftWidth {
		left = MinLeftWidth
	}
	right = totalWidth - left
	if right < 0 {
		right = 0
	}
	return left, right
}

// DialogSize returns the outer dialog size for a terminal of the given size.
func DialogSize(width, height int) (w, h int) {
	w = min(width-dialogMargin, maxDialogWidth)
	h = min(height-dialogMargin, maxDialogHeight)
	return max(w, 0), max(h, 0)
}

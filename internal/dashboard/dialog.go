package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/swcatalog/internal/catalog"
)

// dialogChrome is the number of box rows not given to the viewport:
// border top and bottom, title, blank, blank, hint.
const dialogChrome = 6

// dialogBody renders the scrollable content of the detail dialog.
func dialogBody(v catalog.View, phase dialogPhase, width int, spinnerView string) string {
	if phase == dialogLoading {
		return fmt.Sprintf("%s Loading %s details...", spinnerView, v.Dialog.RelatedKind.Noun(1))
	}
	if len(v.Dialog.Items) == 0 {
		return mutedText.Render(v.Dialog.EmptyMessage)
	}

	cards := make([]string, 0, len(v.Dialog.Items))
	for _, c := range v.Dialog.Items {
		cards = append(cards, renderCard(c, width))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(cards, "\n\n"))
}

// renderDialog renders the dialog box at its full outer size w×h.
func renderDialog(title string, vp viewport.Model, w, h int) string {
	inner := max(w-4, 1)
	if title == "" {
		title = "Details"
	}

	var b strings.Builder
	b.WriteString(headingText.Render(truncate(title, inner)))
	b.WriteString("\n\n")
	b.WriteString(vp.View())
	b.WriteString("\n\n")
	b.WriteString(mutedText.Render("esc or click outside to close"))

	return DialogBorder().
		Width(max(w-2, 1)).
		Height(max(h-2, 1)).
		Render(b.String())
}

// dialogOrigin returns the top-left cell of a w×h dialog centered on a
// width×height screen.
func dialogOrigin(width, height, w, h int) (x, y int) {
	return max((width-w)/2, 0), max((height-h)/2, 0)
}

// insideDialog reports whether the cell (x, y) falls inside the dialog box.
func insideDialog(x, y, width, height int) bool {
	w, h := DialogSize(width, height)
	left, top := dialogOrigin(width, height, w, h)
	return x >= left && x < left+w && y >= top && y < top+h
}

// placeOverlay renders box centered over bg, replacing the background rows
// it covers.
func placeOverlay(bg, box string, width, height int) string {
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	boxLines := strings.Split(box, "\n")
	left, top := dialogOrigin(width, height, lipgloss.Width(box), len(boxLines))
	pad := strings.Repeat(" ", left)
	for i, line := range boxLines {
		row := top + i
		if row >= 0 && row < len(bgLines) {
			bgLines[row] = pad + line
		}
	}

	if height > 0 && len(bgLines) > height {
		bgLines = bgLines[:height]
	}
	return strings.Join(bgLines, "\n")
}

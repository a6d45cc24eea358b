package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/swcatalog/internal/catalog"
)

// CursorMarker is the prefix shown on the selected card row.
const CursorMarker = "▸ "

// listState holds the cursor of one kind's card list. The cards themselves
// live in the section and are read through its View.
type listState struct {
	cursor int
	loaded bool // a Load has been dispatched for this section
}

// loadCmd returns a tea.Cmd that runs sec.Load off the update loop and
// reports back with a LoadedMsg.
func loadCmd(ctx context.Context, sec Section) tea.Cmd {
	return func() tea.Msg {
		sec.Load(ctx)
		return LoadedMsg{Kind: sec.Kind()}
	}
}

// retryCmd is loadCmd for Retry.
func retryCmd(ctx context.Context, sec Section) tea.Cmd {
	return func() tea.Msg {
		sec.Retry(ctx)
		return LoadedMsg{Kind: sec.Kind()}
	}
}

// resolveCmd returns a tea.Cmd that opens the details of the card at index.
func resolveCmd(ctx context.Context, sec Section, index, seq int) tea.Cmd {
	return func() tea.Msg {
		err := sec.OpenDetails(ctx, index)
		return ResolvedMsg{Kind: sec.Kind(), Seq: seq, Err: err}
	}
}

// move shifts the cursor by delta over n cards, wrapping at both ends.
func (ls listState) move(delta, n int) listState {
	if n == 0 {
		ls.cursor = 0
		return ls
	}
	ls.cursor = ((ls.cursor+delta)%n + n) % n
	return ls
}

// clamp keeps the cursor inside a list of n cards.
func (ls listState) clamp(n int) listState {
	if ls.cursor >= n {
		ls.cursor = max(n-1, 0)
	}
	return ls
}

// View renders the list pane content for the given dimensions.
// spinnerView is the current spinner frame (may be empty when spinner is inactive).
func (ls listState) View(v catalog.View, width, height int, spinnerView string) string {
	switch {
	case v.State == catalog.StateLoading:
		return fmt.Sprintf("%s %s", spinnerView, v.LoadingMessage)
	case v.State == catalog.StateFailed:
		return errorText.Render("Error: "+v.Error) + "\n\nPress r to retry"
	case len(v.Items) == 0:
		return v.EmptyMessage + "\n\nPress r to refresh"
	}

	start := 0
	if height > 0 && ls.cursor >= height {
		start = ls.cursor - height + 1
	}
	end := len(v.Items)
	if height > 0 {
		end = min(end, start+height)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			b.WriteByte('\n')
		}
		if i == ls.cursor {
			b.WriteString(CursorMarker)
		} else {
			b.WriteString("  ")
		}
		b.WriteString(truncate(v.Items[i].Heading, width-len(CursorMarker)))
	}
	return b.String()
}

// renderCard renders one card as heading, subheading, facts and the
// related-records trigger when present.
func renderCard(c catalog.Card, width int) string {
	var b strings.Builder
	b.WriteString(headingText.Render(truncate(c.Heading, width)))
	if c.Subheading != "" {
		b.WriteString("\n")
		b.WriteString(mutedText.Render(truncate(c.Subheading, width)))
	}
	for _, f := range c.Facts {
		b.WriteString("\n")
		b.WriteString(factLabelText.Render(f.Label + ":"))
		b.WriteString(" ")
		b.WriteString(f.Value)
	}
	if c.Trigger != "" {
		b.WriteString("\n\n")
		b.WriteString(triggerText.Render("⏎ " + c.Trigger))
	}
	return b.String()
}

// truncate shortens s to at most width runes, marking the cut with "…".
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

package dashboard

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/swcatalog/internal/catalog"
	"github.com/smileynet/swcatalog/internal/swapi"
)

func TestDialogBody_Loading(t *testing.T) {
	v := catalog.View{Dialog: catalog.Dialog{RelatedKind: swapi.KindFilms}}

	got := stripANSI(dialogBody(v, dialogLoading, 40, "⣾"))

	if got != "⣾ Loading film details..." {
		t.Errorf("loading body = %q", got)
	}
}

func TestDialogBody_EmptyResolved(t *testing.T) {
	// Given: a resolved dialog with no related records
	v := catalog.View{Dialog: catalog.Dialog{
		Open:         true,
		RelatedKind:  swapi.KindFilms,
		EmptyMessage: "No related films found",
	}}

	// When: the body is rendered
	got := stripANSI(dialogBody(v, dialogOpen, 40, ""))

	// Then: the empty message is shown rather than a loading placeholder
	if got != "No related films found" {
		t.Errorf("empty body = %q", got)
	}
}

func TestDialogBody_Cards(t *testing.T) {
	v := catalog.View{Dialog: catalog.Dialog{
		Open: true,
		Items: []catalog.Card{
			{Heading: "Episode 4: A New Hope"},
			{Heading: "Episode 5: The Empire Strikes Back"},
		},
	}}

	got := stripANSI(dialogBody(v, dialogOpen, 60, ""))

	first := strings.Index(got, "Episode 4")
	second := strings.Index(got, "Episode 5")
	if first < 0 || second < 0 || first > second {
		t.Errorf("cards out of order or missing:\n%s", got)
	}
}

func TestRenderDialog_Size(t *testing.T) {
	// Given: a viewport sized for a 50×14 box
	vp := viewport.New(46, 14-dialogChrome)
	vp.SetContent("body")

	// When: the box is rendered
	box := renderDialog("Films featuring Luke Skywalker", vp, 50, 14)

	// Then: it fills exactly the requested size and shows the title
	if w := lipgloss.Width(box); w != 50 {
		t.Errorf("width = %d, want 50", w)
	}
	if h := lipgloss.Height(box); h != 14 {
		t.Errorf("height = %d, want 14", h)
	}
	if !strings.Contains(stripANSI(box), "Films featuring Luke Skywalker") {
		t.Errorf("box missing title:\n%s", stripANSI(box))
	}
}

func TestInsideDialog(t *testing.T) {
	// 100×30 screen: dialog 72×24 at (14, 3).
	tests := []struct {
		x, y int
		want bool
	}{
		{50, 15, true},
		{14, 3, true},
		{85, 26, true},
		{13, 15, false},
		{86, 15, false},
		{50, 2, false},
		{50, 27, false},
	}
	for _, tt := range tests {
		if got := insideDialog(tt.x, tt.y, 100, 30); got != tt.want {
			t.Errorf("insideDialog(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPlaceOverlay(t *testing.T) {
	// Given: a 10-row background and a 2-row box
	bg := strings.TrimSuffix(strings.Repeat("background\n", 10), "\n")
	box := "+--+\n+--+"

	// When: the box is placed on a 20×10 screen
	out := strings.Split(placeOverlay(bg, box, 20, 10), "\n")

	// Then: rows 4 and 5 hold the box, indented to the center
	if len(out) != 10 {
		t.Fatalf("rows = %d, want 10", len(out))
	}
	if out[4] != "        +--+" || out[5] != "        +--+" {
		t.Errorf("box rows = %q, %q", out[4], out[5])
	}
	if out[3] != "background" || out[6] != "background" {
		t.Errorf("background rows changed: %q, %q", out[3], out[6])
	}
}

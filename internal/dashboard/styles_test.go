package dashboard

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPaneWidths(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		wantLeft  int
		wantRight int
	}{
		{"wide terminal splits a third to the list", 120, 40, 80},
		{"narrow terminal keeps the list readable", 60, MinLeftWidth, 60 - MinLeftWidth},
		{"terminal narrower than the list", 20, MinLeftWidth, 0},
		{"no width yet", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := PaneWidths(tt.total)
			if left != tt.wantLeft || right != tt.wantRight {
				t.Errorf("PaneWidths(%d) = %d, %d; want %d, %d", tt.total, left, right, tt.wantLeft, tt.wantRight)
			}
		})
	}
}

func TestBorders_Render(t *testing.T) {
	for name, style := range map[string]lipgloss.Style{
		"focused":   FocusedBorder(),
		"unfocused": UnfocusedBorder(),
		"dialog":    DialogBorder(),
	} {
		if got := lipgloss.Height(style.Render("x")); got != 3 {
			t.Errorf("%s border height = %d, want 3", name, got)
		}
	}
}

func TestDialogSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"large terminal caps at max", 200, 80, maxDialogWidth, maxDialogHeight},
		{"small terminal keeps margin", 40, 12, 36, 8},
		{"tiny terminal clamps to zero", 2, 2, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := DialogSize(tt.width, tt.height)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("DialogSize(%d, %d) = %d, %d; want %d, %d", tt.width, tt.height, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

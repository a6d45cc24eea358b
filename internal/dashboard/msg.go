// Package dashboard implements the catalog TUI: one tab per entity kind, a
// card list with a detail pane, and a detail dialog overlay that shows the
// resolved cross-references of the selected card.
package dashboard

import (
	"context"

	"github.com/smileynet/swcatalog/internal/catalog"
	"github.com/smileynet/swcatalog/internal/swapi"
)

// Focus represents which pane has keyboard focus.
type Focus int

const (
	PaneLeft  Focus = iota // Card list has focus.
	PaneRight              // Card detail viewport has focus.
)

// dialogPhase tracks the dialog from the model's side of the update loop.
type dialogPhase int

const (
	dialogClosed  dialogPhase = iota
	dialogLoading             // resolve dispatched, not yet settled
	dialogOpen
)

// --- Consumer-side interfaces ---

// Section is the slice of a catalog section the dashboard drives.
// catalog.Section satisfies it.
type Section interface {
	Kind() swapi.Kind
	RelatedKind() swapi.Kind
	Load(ctx context.Context)
	Retry(ctx context.Context)
	OpenDetails(ctx context.Context, index int) error
	Close()
	View() catalog.View
}

// --- tea.Msg types ---

// LoadedMsg signals that a section's Load or Retry has settled.
type LoadedMsg struct {
	Kind swapi.Kind
}

// ResolvedMsg signals that an OpenDetails call has settled.
type ResolvedMsg struct {
	Kind swapi.Kind
	Seq  int
	Err  error
}

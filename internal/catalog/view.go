package catalog

import (
	"fmt"

	"github.com/smileynet/swcatalog/internal/swapi"
)

// Card is the renderable form of one entity.
type Card struct {
	ID         string       `json:"id"`
	URL        string       `json:"url"`
	Heading    string       `json:"heading"`
	Subheading string       `json:"subheading,omitempty"`
	Facts      []swapi.Fact `json:"facts"`
	// Related is the number of cross-referenced records; zero on dialog cards.
	Related int `json:"related,omitempty"`
	// Trigger labels the affordance that opens the detail dialog,
	// e.g. "View 2 films". Empty on dialog cards.
	Trigger string `json:"trigger,omitempty"`
}

// NewCard builds a Card from any entity.
func NewCard(e swapi.Entity) Card {
	return Card{
		ID:         swapi.ExtractID(e.Identifier()),
		URL:        e.Identifier(),
		Heading:    e.Heading(),
		Subheading: e.Subheading(),
		Facts:      e.Facts(),
	}
}

// Dialog is the detail dialog state handed to renderers.
type Dialog struct {
	Open         bool       `json:"open"`
	Title        string     `json:"title"`
	RelatedKind  swapi.Kind `json:"relatedKind"`
	Items        []Card     `json:"items"`
	EmptyMessage string     `json:"emptyMessage"`
}

// View is the rendering surface of one controller: everything a
// presentation layer needs, copied out from under the controller's lock.
type View struct {
	Kind           swapi.Kind `json:"kind"`
	State          LoadState  `json:"state"`
	Error          string     `json:"error,omitempty"`
	LoadingMessage string     `json:"loadingMessage"`
	EmptyMessage   string     `json:"emptyMessage"`
	Items          []Card     `json:"items"`
	Dialog         Dialog     `json:"dialog"`
	// Resolving is true while a detail request is in flight.
	Resolving bool `json:"resolving"`
}

// triggerLabel renders "View N noun(s)" for n related records.
func triggerLabel(kind swapi.Kind, n int) string {
	return fmt.Sprintf("View %d %s", n, kind.Noun(n))
}

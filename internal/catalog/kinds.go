package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/smileynet/swcatalog/internal/swapi"
)

// Section is the kind-agnostic face of a Controller, used by renderers that
// hold all five kinds side by side.
type Section interface {
	Kind() swapi.Kind
	RelatedKind() swapi.Kind
	Load(ctx context.Context)
	Retry(ctx context.Context)
	OpenDetails(ctx context.Context, index int) error
	OpenDetailsByURL(ctx context.Context, url string) error
	Find(query string) (int, bool)
	Close()
	CacheSize() int
	View() View
}

// Compile-time checks.
var (
	_ Section = (*Controller[swapi.Person, swapi.Film])(nil)
	_ Section = (*Controller[swapi.Film, swapi.Person])(nil)
	_ Section = (*Controller[swapi.Planet, swapi.Film])(nil)
	_ Section = (*Controller[swapi.Starship, swapi.Film])(nil)
	_ Section = (*Controller[swapi.Vehicle, swapi.Film])(nil)
)

func loadingMessage(kind swapi.Kind) string {
	return fmt.Sprintf("Loading %s from a galaxy far, far away...", kind.Noun(0))
}

func filmsFeaturing(name string) string {
	return "Films featuring " + name
}

func endpoint(baseURL string, kind swapi.Kind) string {
	return strings.TrimRight(baseURL, "/") + "/" + string(kind)
}

// PeopleConfig lists characters and resolves the films they appear in.
func PeopleConfig(baseURL string) KindConfig[swapi.Person, swapi.Film] {
	return KindConfig[swapi.Person, swapi.Film]{
		Kind:           swapi.KindPeople,
		Endpoint:       endpoint(baseURL, swapi.KindPeople),
		Related:        func(p swapi.Person) []string { return p.Films },
		RelatedKind:    swapi.KindFilms,
		Title:          func(p swapi.Person) string { return filmsFeaturing(p.Name) },
		LoadingMessage: loadingMessage(swapi.KindPeople),
	}
}

// FilmsConfig lists films and resolves their characters.
func FilmsConfig(baseURL string) KindConfig[swapi.Film, swapi.Person] {
	return KindConfig[swapi.Film, swapi.Person]{
		Kind:           swapi.KindFilms,
		Endpoint:       endpoint(baseURL, swapi.KindFilms),
		Related:        func(f swapi.Film) []string { return f.Characters },
		RelatedKind:    swapi.KindPeople,
		Title:          func(f swapi.Film) string { return "Characters in " + f.Title },
		LoadingMessage: loadingMessage(swapi.KindFilms),
	}
}

// PlanetsConfig lists planets and resolves the films they appear in.
func PlanetsConfig(baseURL string) KindConfig[swapi.Planet, swapi.Film] {
	return KindConfig[swapi.Planet, swapi.Film]{
		Kind:           swapi.KindPlanets,
		Endpoint:       endpoint(baseURL, swapi.KindPlanets),
		Related:        func(p swapi.Planet) []string { return p.Films },
		RelatedKind:    swapi.KindFilms,
		Title:          func(p swapi.Planet) string { return filmsFeaturing(p.Name) },
		LoadingMessage: loadingMessage(swapi.KindPlanets),
	}
}

// StarshipsConfig lists starships and resolves the films they appear in.
func StarshipsConfig(baseURL string) KindConfig[swapi.Starship, swapi.Film] {
	return KindConfig[swapi.Starship, swapi.Film]{
		Kind:           swapi.KindStarships,
		Endpoint:       endpoint(baseURL, swapi.KindStarships),
		Related:        func(s swapi.Starship) []string { return s.Films },
		RelatedKind:    swapi.KindFilms,
		Title:          func(s swapi.Starship) string { return filmsFeaturing(s.Name) },
		LoadingMessage: loadingMessage(swapi.KindStarships),
	}
}

// VehiclesConfig lists vehicles and resolves the films they appear in.
func VehiclesConfig(baseURL string) KindConfig[swapi.Vehicle, swapi.Film] {
	return KindConfig[swapi.Vehicle, swapi.Film]{
		Kind:           swapi.KindVehicles,
		Endpoint:       endpoint(baseURL, swapi.KindVehicles),
		Related:        func(v swapi.Vehicle) []string { return v.Films },
		RelatedKind:    swapi.KindFilms,
		Title:          func(v swapi.Vehicle) string { return filmsFeaturing(v.Name) },
		LoadingMessage: loadingMessage(swapi.KindVehicles),
	}
}

// Catalog holds one Section per entity kind. Each section keeps its own
// cache; sections never share state.
type Catalog struct {
	sections map[swapi.Kind]Section
}

// New builds the five sections against baseURL.
func New(fetcher Fetcher, baseURL string, opts ...Option) *Catalog {
	return &Catalog{sections: map[swapi.Kind]Section{
		swapi.KindPeople:    NewController(PeopleConfig(baseURL), fetcher, opts...),
		swapi.KindFilms:     NewController(FilmsConfig(baseURL), fetcher, opts...),
		swapi.KindPlanets:   NewController(PlanetsConfig(baseURL), fetcher, opts...),
		swapi.KindStarships: NewController(StarshipsConfig(baseURL), fetcher, opts...),
		swapi.KindVehicles:  NewController(VehiclesConfig(baseURL), fetcher, opts...),
	}}
}

// Section returns the section for kind.
func (c *Catalog) Section(kind swapi.Kind) (Section, error) {
	s, ok := c.sections[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", swapi.ErrUnknownKind, kind)
	}
	return s, nil
}

// Sections returns every section in navigation order.
func (c *Catalog) Sections() []Section {
	out := make([]Section, 0, len(swapi.Kinds))
	for _, k := range swapi.Kinds {
		out = append(out, c.sections[k])
	}
	return out
}

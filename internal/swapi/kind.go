// Package swapi models the read-only Star Wars reference API: entity records,
// the five collection kinds, response-shape normalization, and an HTTP client.
package swapi

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultBaseURL is the public upstream API root.
const DefaultBaseURL = "https://swapi.info/api"

// ErrUnknownKind is returned by ParseKind for unrecognised kind names.
var ErrUnknownKind = errors.New("swapi: unknown entity kind")

// Kind names one upstream collection.
type Kind string

const (
	KindPeople    Kind = "people"
	KindFilms     Kind = "films"
	KindPlanets   Kind = "planets"
	KindStarships Kind = "starships"
	KindVehicles  Kind = "vehicles"
)

// Kinds lists every kind in navigation order.
var Kinds = []Kind{KindPeople, KindStarships, KindPlanets, KindFilms, KindVehicles}

// kindAliases maps accepted spellings to their canonical kind.
var kindAliases = map[string]Kind{
	"people":     KindPeople,
	"person":     KindPeople,
	"characters": KindPeople,
	"character":  KindPeople,
	"films":      KindFilms,
	"film":       KindFilms,
	"planets":    KindPlanets,
	"planet":     KindPlanets,
	"starships":  KindStarships,
	"starship":   KindStarships,
	"vehicles":   KindVehicles,
	"vehicle":    KindVehicles,
}

// ParseKind resolves a user-supplied name (case-insensitive, singular or
// plural, "characters" for people) to a Kind.
func ParseKind(s string) (Kind, error) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Label returns the display label used for navigation tabs.
func (k Kind) Label() string {
	switch k {
	case KindPeople:
		return "Characters"
	case KindFilms:
		return "Films"
	case KindPlanets:
		return "Planets"
	case KindStarships:
		return "Starships"
	case KindVehicles:
		return "Vehicles"
	}
	return string(k)
}

// Noun returns the lower-case noun for n records of this kind,
// e.g. "film" / "films", "character" / "characters".
func (k Kind) Noun(n int) string {
	var singular, plural string
	switch k {
	case KindPeople:
		singular, plural = "character", "characters"
	case KindFilms:
		singular, plural = "film", "films"
	case KindPlanets:
		singular, plural = "planet", "planets"
	case KindStarships:
		singular, plural = "starship", "starships"
	case KindVehicles:
		singular, plural = "vehicle", "vehicles"
	default:
		singular, plural = string(k), string(k)
	}
	if n == 1 {
		return singular
	}
	return plural
}

// ExtractID returns the trailing non-empty path segment of a resource
// identifier: "https://swapi.info/api/films/1/" yields "1".
func ExtractID(url string) string {
	parts := strings.Split(url, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}

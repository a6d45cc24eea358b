// Package catalog implements the entity list controller and its
// cross-reference resolver: one generic controller, configured per entity
// kind, that loads a collection, tracks loading/error state, and resolves the
// related records of a selected item through an append-only cache.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// ErrItemNotFound is returned when a detail request names an item that is not
// in the loaded collection.
var ErrItemNotFound = errors.New("catalog: item not found")

// Fetcher retrieves a raw JSON body for a resource URL.
// *swapi.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Logger receives diagnostic lines. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...any)
}

// LoadState is the lifecycle state of a collection.
type LoadState int

const (
	StateLoading LoadState = iota
	StateReady
	StateFailed
)

// String returns the lower-case state name.
func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// MarshalText encodes the state by name for JSON surfaces.
func (s LoadState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText.
func (s *LoadState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "loading":
		*s = StateLoading
	case "ready":
		*s = StateReady
	case "failed":
		*s = StateFailed
	default:
		return fmt.Errorf("catalog: unknown load state %q", b)
	}
	return nil
}

// defaultConcurrency bounds related-record fetches per resolve.
const defaultConcurrency = 4

type settings struct {
	logger      Logger
	concurrency int
}

func defaultSettings() settings {
	return settings{
		logger:      log.Default(),
		concurrency: defaultConcurrency,
	}
}

// Option configures controllers.
type Option func(*settings)

// WithLogger routes anomaly and per-item failure lines to l.
func WithLogger(l Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithConcurrency bounds how many related records one resolve fetches at once.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

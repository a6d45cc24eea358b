package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/smileynet/swcatalog/internal/swapi"
)

// unknownError is the message used when a failure carries no text.
const unknownError = "unknown error occurred"

// KindConfig parameterises a Controller for one entity kind.
type KindConfig[T, R swapi.Entity] struct {
	Kind swapi.Kind
	// Endpoint is the collection URL fetched by Load.
	Endpoint string
	// Related returns the cross-reference identifiers followed by Resolve.
	Related     func(T) []string
	RelatedKind swapi.Kind
	// Title returns the detail dialog title for an item.
	Title          func(T) string
	LoadingMessage string
}

// dialogState is the resolver's dialog slot.
type dialogState[R any] struct {
	open  bool
	title string
	items []R
}

// Controller owns the collection state for one kind and resolves
// cross-references of its items into cached related records.
// It is safe for concurrent use; network I/O happens outside the lock.
type Controller[T, R swapi.Entity] struct {
	cfg     KindConfig[T, R]
	fetcher Fetcher
	opts    settings
	flight  singleflight.Group

	mu     sync.Mutex
	items  []T
	state  LoadState
	err    string
	gen    uint64 // bumped by every Load; stale results are dropped
	cancel context.CancelFunc

	cache      map[string]R // append-only for the controller's lifetime
	dialog     dialogState[R]
	resolving  bool
	resolveGen uint64 // bumped by every Resolve and Close
}

// NewController creates a controller in the Loading state with an empty
// collection and cache. Call Load to populate it.
func NewController[T, R swapi.Entity](cfg KindConfig[T, R], fetcher Fetcher, opts ...Option) *Controller[T, R] {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return &Controller[T, R]{
		cfg:     cfg,
		fetcher: fetcher,
		opts:    s,
		state:   StateLoading,
		cache:   make(map[string]R),
	}
}

// Kind returns the entity kind this controller lists.
func (c *Controller[T, R]) Kind() swapi.Kind { return c.cfg.Kind }

// RelatedKind returns the kind of records its resolver produces.
func (c *Controller[T, R]) RelatedKind() swapi.Kind { return c.cfg.RelatedKind }

// Load fetches the collection and replaces the current items. A Load that is
// superseded by a later Load or Retry is cancelled and its result discarded.
// Failures are recorded in the state, never returned.
func (c *Controller[T, R]) Load(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	c.cancel = cancel
	c.state = StateLoading
	c.err = ""
	c.mu.Unlock()

	items, err := c.fetchCollection(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.cancel = nil
	if err != nil {
		c.opts.logger.Printf("catalog: loading %s: %v", c.cfg.Kind, err)
		c.state = StateFailed
		c.err = errorMessage(err)
		c.items = nil
		return
	}
	c.items = items
	c.state = StateReady
}

// Retry re-runs Load.
func (c *Controller[T, R]) Retry(ctx context.Context) {
	c.Load(ctx)
}

func (c *Controller[T, R]) fetchCollection(ctx context.Context) ([]T, error) {
	body, err := c.fetcher.Fetch(ctx, c.cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	coll, err := swapi.NormalizeCollection(body)
	if err != nil {
		return nil, err
	}
	if coll.Shape == swapi.ShapeUnknown {
		c.opts.logger.Printf("catalog: warning: unexpected %s response structure: %.200s", c.cfg.Kind, body)
		return []T{}, nil
	}

	items := make([]T, 0, len(coll.Items))
	for i, raw := range coll.Items {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("decoding %s item %d: %w", c.cfg.Kind, i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// errorMessage returns err's text, or a generic message when it has none.
func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return unknownError
}

// Resolve opens the detail dialog for item. Related identifiers missing from
// the cache are fetched concurrently; the call returns once every fetch has
// settled. Failed fetches are logged and left out of the dialog. If Close or
// another Resolve runs before this one settles, the fetched records are still
// cached but this call no longer touches the dialog.
//
// Each distinct identifier is fetched at most once per controller, even when
// resolves overlap.
func (c *Controller[T, R]) Resolve(ctx context.Context, item T) {
	ids := c.cfg.Related(item)
	title := c.cfg.Title(item)

	c.mu.Lock()
	c.resolveGen++
	gen := c.resolveGen
	c.dialog.title = title
	c.resolving = true
	missing := c.missingLocked(ids)
	c.mu.Unlock()

	c.fetchRelated(ctx, missing)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.resolveGen {
		return
	}

	resolved := make([]R, 0, len(ids))
	for _, id := range ids {
		if rec, ok := c.cache[id]; ok {
			resolved = append(resolved, rec)
		}
	}
	c.dialog = dialogState[R]{open: true, title: title, items: resolved}
	c.resolving = false
}

// OpenDetails resolves the item at index in the loaded collection.
func (c *Controller[T, R]) OpenDetails(ctx context.Context, index int) error {
	c.mu.Lock()
	if index < 0 || index >= len(c.items) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s index %d", ErrItemNotFound, c.cfg.Kind, index)
	}
	item := c.items[index]
	c.mu.Unlock()

	c.Resolve(ctx, item)
	return nil
}

// OpenDetailsByURL resolves the loaded item whose identifier is url.
func (c *Controller[T, R]) OpenDetailsByURL(ctx context.Context, url string) error {
	c.mu.Lock()
	var (
		item  T
		found bool
	)
	for _, it := range c.items {
		if it.Identifier() == url {
			item, found = it, true
			break
		}
	}
	c.mu.Unlock()

	if !found {
		return fmt.Errorf("%w: %s %s", ErrItemNotFound, c.cfg.Kind, url)
	}
	c.Resolve(ctx, item)
	return nil
}

// Find returns the index of the first loaded item whose numeric ID equals
// query or whose heading contains it (case-insensitive).
func (c *Controller[T, R]) Find(query string) (int, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, it := range c.items {
		if swapi.ExtractID(it.Identifier()) == q {
			return i, true
		}
	}
	for i, it := range c.items {
		if strings.Contains(strings.ToLower(it.Heading()), q) {
			return i, true
		}
	}
	return 0, false
}

// Close closes the dialog and clears its title and items. The cache is kept.
func (c *Controller[T, R]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolveGen++
	c.dialog = dialogState[R]{}
	c.resolving = false
}

// missingLocked returns the distinct ids not yet cached, in first-seen order.
// Callers must hold c.mu.
func (c *Controller[T, R]) missingLocked(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var missing []string
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := c.cache[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// fetchRelated fetches ids concurrently into the cache and waits for every
// fetch to settle.
func (c *Controller[T, R]) fetchRelated(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}

	var g errgroup.Group
	g.SetLimit(c.opts.concurrency)
	for _, id := range ids {
		g.Go(func() error {
			if err := c.fetchOne(ctx, id); err != nil {
				c.opts.logger.Printf("catalog: fetching %s %s: %v", c.cfg.RelatedKind.Noun(1), id, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// fetchOne fetches, decodes and caches one related record. Concurrent
// requests for the same id share a single network call, and an id cached by
// the time the call starts is not fetched at all.
func (c *Controller[T, R]) fetchOne(ctx context.Context, id string) error {
	_, err, _ := c.flight.Do(id, func() (any, error) {
		if c.cached(id) {
			return nil, nil
		}
		body, err := c.fetcher.Fetch(ctx, id)
		if err != nil {
			return nil, err
		}
		var rec R
		if err := json.Unmarshal(body, &rec); err != nil {
			return nil, fmt.Errorf("decoding: %w", err)
		}

		c.mu.Lock()
		if _, ok := c.cache[id]; !ok {
			c.cache[id] = rec
		}
		c.mu.Unlock()
		return nil, nil
	})
	return err
}

func (c *Controller[T, R]) cached(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.cache[id]
	return ok
}

// CacheSize returns the number of cached related records.
func (c *Controller[T, R]) CacheSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// Items returns a copy of the loaded collection.
func (c *Controller[T, R]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// DialogItems returns a copy of the resolved records shown in the dialog.
func (c *Controller[T, R]) DialogItems() []R {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]R(nil), c.dialog.items...)
}

// View returns a snapshot of the rendering surface.
func (c *Controller[T, R]) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Kind:           c.cfg.Kind,
		State:          c.state,
		Error:          c.err,
		LoadingMessage: c.cfg.LoadingMessage,
		EmptyMessage:   fmt.Sprintf("No %s available", c.cfg.Kind.Noun(0)),
		Items:          make([]Card, 0, len(c.items)),
		Resolving:      c.resolving,
		Dialog: Dialog{
			Open:         c.dialog.open,
			Title:        c.dialog.title,
			RelatedKind:  c.cfg.RelatedKind,
			Items:        make([]Card, 0, len(c.dialog.items)),
			EmptyMessage: fmt.Sprintf("No related %s found", c.cfg.RelatedKind.Noun(0)),
		},
	}
	for _, it := range c.items {
		card := NewCard(it)
		card.Related = len(c.cfg.Related(it))
		card.Trigger = triggerLabel(c.cfg.RelatedKind, card.Related)
		v.Items = append(v.Items, card)
	}
	for _, rec := range c.dialog.items {
		v.Dialog.Items = append(v.Dialog.Items, NewCard(rec))
	}
	return v
}

// Package registry stores the per-institution pattern bundles used to
// recognize and parse financial SMS messages.
package registry

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/nmehta6/paisatrail/internal/common"
	"github.com/nmehta6/paisatrail/internal/model"
)

// Registry is an in-memory, concurrency-safe table of pattern bundles.
// Lookups are read-mostly; registration and activation take the write
// lock since they compete with ongoing batch lookups.
type Registry struct {
	mu      sync.RWMutex
	bundles map[string]*model.PatternBundle
	order   []string // insertion order, drives the FindBySender tie-break
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		bundles: make(map[string]*model.PatternBundle),
	}
}

// NewWithDefaults creates a registry seeded with the built-in
// institution patterns.
func NewWithDefaults() *Registry {
	r := New()
	for _, b := range DefaultBundles() {
		if err := r.Register(b); err != nil {
			// Built-in bundles are validated by tests; a failure here
			// means a programming error in the defaults table.
			slog.Error("skipping built-in pattern bundle", "institution", b.Institution, "error", err)
		}
	}
	return r
}

// Register stores a bundle, assigning an id when absent. Re-registering
// an existing id overwrites the stored bundle but keeps its position in
// the lookup order.
func (r *Registry) Register(bundle *model.PatternBundle) error {
	if bundle == nil {
		return fmt.Errorf("%w: bundle cannot be nil", common.ErrInvalidPattern)
	}
	if err := bundle.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidPattern, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if bundle.ID == "" {
		bundle.ID = uuid.NewString()
	}
	if _, exists := r.bundles[bundle.ID]; !exists {
		r.order = append(r.order, bundle.ID)
	}
	r.bundles[bundle.ID] = bundle
	return nil
}

// FindBySender returns the first active bundle whose sender pattern
// matches the given sender identity, or nil when none match.
//
// Known limitation: when several institutions' sender patterns overlap,
// the bundle registered first wins. Lookup order is registration order,
// not specificity.
func (r *Registry) FindBySender(sender string) *model.PatternBundle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		b := r.bundles[id]
		if b == nil || !b.Active {
			continue
		}
		// A malformed sender pattern reports no match; the scan moves
		// on to the remaining bundles.
		if b.MatchesSender(sender) {
			return b
		}
	}
	return nil
}

// ByInstitution returns all bundles registered for an institution,
// compared case-insensitively, in registration order.
func (r *Registry) ByInstitution(name string) []*model.PatternBundle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.PatternBundle
	for _, id := range r.order {
		b := r.bundles[id]
		if b != nil && strings.EqualFold(b.Institution, name) {
			out = append(out, b)
		}
	}
	return out
}

// All returns every registered bundle in registration order.
func (r *Registry) All() []*model.PatternBundle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.PatternBundle, 0, len(r.order))
	for _, id := range r.order {
		if b := r.bundles[id]; b != nil {
			out = append(out, b)
		}
	}
	return out
}

// Get returns the bundle with the given id.
func (r *Registry) Get(id string) (*model.PatternBundle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bundles[id]
	if !ok {
		return nil, fmt.Errorf("pattern bundle %s: %w", id, common.ErrNotFound)
	}
	return b, nil
}

// Activate marks a bundle active.
func (r *Registry) Activate(id string) error {
	return r.setActive(id, true)
}

// Deactivate marks a bundle inactive so it is skipped during lookup.
// Preferred over Delete when history may still reference the bundle.
func (r *Registry) Deactivate(id string) error {
	return r.setActive(id, false)
}

func (r *Registry) setActive(id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bundles[id]
	if !ok {
		return fmt.Errorf("pattern bundle %s: %w", id, common.ErrNotFound)
	}
	b.Active = active
	return nil
}

// Delete removes a bundle entirely.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bundles[id]; !ok {
		return fmt.Errorf("pattern bundle %s: %w", id, common.ErrNotFound)
	}
	delete(r.bundles, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of registered bundles.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bundles)
}

// Package accounts maps masked account identifiers seen in SMS text to
// internal account ids.
package accounts

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/nmehta6/paisatrail/internal/common"
	"github.com/nmehta6/paisatrail/internal/model"
)

// MappingService is an in-memory, concurrency-safe store of account
// mappings. Invariant: at most one active mapping exists per
// (institution, identifier) pair.
type MappingService struct {
	mu       sync.RWMutex
	mappings map[string]*model.AccountMapping
	order    []string
}

// NewMappingService creates an empty mapping service.
func NewMappingService() *MappingService {
	return &MappingService{
		mappings: make(map[string]*model.AccountMapping),
	}
}

func mappingKeyMatches(m *model.AccountMapping, institution, identifier string) bool {
	return strings.EqualFold(m.Institution, institution) && m.Identifier == identifier
}

// CreateMapping links (institution, identifier) to an internal account
// id. Creating an identical active link twice is a no-op; linking an
// already-claimed pair to a different account deactivates the old
// mapping first so the invariant holds. The deactivated mappings are
// returned so callers backed by storage can persist the flip.
func (s *MappingService) CreateMapping(accountID, institution, identifier string) (*model.AccountMapping, []*model.AccountMapping, error) {
	mapping := &model.AccountMapping{
		AccountID:   accountID,
		Institution: institution,
		Identifier:  identifier,
		Active:      true,
	}
	if err := mapping.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrInvalidMapping, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var superseded []*model.AccountMapping
	for _, id := range s.order {
		existing := s.mappings[id]
		if existing == nil || !existing.Active || !mappingKeyMatches(existing, institution, identifier) {
			continue
		}
		if existing.AccountID == accountID {
			return existing, nil, nil
		}
		existing.Active = false
		superseded = append(superseded, existing)
	}

	mapping.ID = uuid.NewString()
	s.mappings[mapping.ID] = mapping
	s.order = append(s.order, mapping.ID)
	return mapping, superseded, nil
}

// Restore loads a previously persisted mapping, keeping its id. Used
// when seeding the service from storage at startup.
func (s *MappingService) Restore(mapping *model.AccountMapping) error {
	if mapping == nil || mapping.ID == "" {
		return fmt.Errorf("%w: restored mapping needs an id", common.ErrInvalidMapping)
	}
	if err := mapping.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidMapping, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.mappings[mapping.ID]; !exists {
		s.order = append(s.order, mapping.ID)
	}
	s.mappings[mapping.ID] = mapping
	return nil
}

// FindAccount resolves an (institution, identifier) pair to an internal
// account id. Only active mappings match; institutions compare
// case-insensitively, identifiers exactly.
func (s *MappingService) FindAccount(institution, identifier string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		m := s.mappings[id]
		if m != nil && m.Active && mappingKeyMatches(m, institution, identifier) {
			return m.AccountID, true
		}
	}
	return "", false
}

// All returns every mapping in creation order.
func (s *MappingService) All() []*model.AccountMapping {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.AccountMapping, 0, len(s.order))
	for _, id := range s.order {
		if m := s.mappings[id]; m != nil {
			out = append(out, m)
		}
	}
	return out
}

// Activate re-enables a mapping.
func (s *MappingService) Activate(mappingID string) error {
	return s.setActive(mappingID, true)
}

// Deactivate disables a mapping, preserving it for audit.
func (s *MappingService) Deactivate(mappingID string) error {
	return s.setActive(mappingID, false)
}

func (s *MappingService) setActive(mappingID string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.mappings[mappingID]
	if !ok {
		return fmt.Errorf("account mapping %s: %w", mappingID, common.ErrNotFound)
	}
	m.Active = active
	return nil
}

// Delete removes a mapping entirely.
func (s *MappingService) Delete(mappingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.mappings[mappingID]; !ok {
		return fmt.Errorf("account mapping %s: %w", mappingID, common.ErrNotFound)
	}
	delete(s.mappings, mappingID)
	for i, id := range s.order {
		if id == mappingID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

package assignment

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/types"
)

// Store reads aggregate counts and records permanent assignments.
type Store interface {
	// GetAssignment returns the participant's taxonomy, or ok=false when none exists.
	GetAssignment(ctx context.Context, participantID uuid.UUID) (taxonomy types.Taxonomy, ok bool, err error)
	// CountAssignments returns per-taxonomy participant counts. Missing keys mean zero.
	CountAssignments(ctx context.Context) (map[types.Taxonomy]int, error)
	// RecordAssignment persists the assignment. It must not overwrite an existing one.
	RecordAssignment(ctx context.Context, participantID uuid.UUID, taxonomy types.Taxonomy) error
}

// Locker is implemented by stores that can serialize the read-decide-write
// sequence. fn receives a Store bound to the locked scope.
type Locker interface {
	WithAssignmentLock(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}

// MemoryStore is an in-process Store, used by the simulate command and tests.
type MemoryStore struct {
	mu          sync.Mutex // serializes WithAssignmentLock
	dataMu      sync.RWMutex
	assignments map[uuid.UUID]types.Taxonomy
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{assignments: make(map[uuid.UUID]types.Taxonomy)}
}

// GetAssignment implements Store.
func (m *MemoryStore) GetAssignment(_ context.Context, participantID uuid.UUID) (types.Taxonomy, bool, error) {
	m.dataMu.RLock()
	defer m.dataMu.RUnlock()
	t, ok := m.assignments[participantID]
	return t, ok, nil
}

// CountAssignments implements Store.
func (m *MemoryStore) CountAssignments(_ context.Context) (map[types.Taxonomy]int, error) {
	m.dataMu.RLock()
	defer m.dataMu.RUnlock()
	counts := make(map[types.Taxonomy]int)
	for _, t := range m.assignments {
		counts[t]++
	}
	return counts, nil
}

// RecordAssignment implements Store.
func (m *MemoryStore) RecordAssignment(_ context.Context, participantID uuid.UUID, taxonomy types.Taxonomy) error {
	m.dataMu.Lock()
	defer m.dataMu.Unlock()
	if existing, ok := m.assignments[participantID]; ok {
		return &AlreadyAssignedError{ParticipantID: participantID, Taxonomy: existing}
	}
	m.assignments[participantID] = taxonomy
	return nil
}

// WithAssignmentLock implements Locker.
func (m *MemoryStore) WithAssignmentLock(ctx context.Context, fn func(ctx context.Context, store Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, m)
}

// unlocked hides a store's Locker implementation.
type unlocked struct {
	Store
}

// WithoutLock returns store stripped of its Locker, restoring the unguarded
// read-decide-write sequence.
func WithoutLock(store Store) Store {
	return unlocked{Store: store}
}

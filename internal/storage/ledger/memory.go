// internal/storage/ledger/memory.go
package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/strategy"
	"github.com/google/uuid"
)

// MemoryStore is an in-memory analysis history.
type MemoryStore struct {
	snapshots []Snapshot
	maxSize   int
	mu        sync.RWMutex
}

// NewMemoryStore creates a new in-memory store with max capacity.
func NewMemoryStore(maxSize int) *MemoryStore {
	return &MemoryStore{
		snapshots: make([]Snapshot, 0, maxSize),
		maxSize:   maxSize,
	}
}

// Save adds an analysis to the store.
func (m *MemoryStore) Save(ctx context.Context, a strategy.Analysis) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		ID:        uuid.NewString(),
		Analysis:  a,
		CreatedAt: time.Now().UTC(),
	}
	if !a.GeneratedAt.IsZero() {
		snap.CreatedAt = a.GeneratedAt
	}

	m.snapshots = append(m.snapshots, snap)

	// Trim if over capacity (remove oldest)
	if len(m.snapshots) > m.maxSize {
		m.snapshots = m.snapshots[len(m.snapshots)-m.maxSize:]
	}

	return snap, nil
}

// GetByID retrieves a snapshot by ID.
func (m *MemoryStore) GetByID(ctx context.Context, id string) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.snapshots {
		if m.snapshots[i].ID == id {
			snap := m.snapshots[i]
			return &snap, nil
		}
	}
	return nil, core.ErrSnapshotNotFound
}

// List returns snapshots matching the filter, newest first.
func (m *MemoryStore) List(ctx context.Context, filter ListFilter) ([]Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []Snapshot
	for i := len(m.snapshots) - 1; i >= 0; i-- {
		if m.matches(m.snapshots[i], filter) {
			result = append(result, m.snapshots[i])
		}
	}

	// Apply offset and limit
	if filter.Offset > 0 && filter.Offset < len(result) {
		result = result[filter.Offset:]
	} else if filter.Offset >= len(result) && filter.Offset > 0 {
		return []Snapshot{}, nil
	}

	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}

	return result, nil
}

// Count returns the count of matching snapshots.
func (m *MemoryStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, snap := range m.snapshots {
		if m.matches(snap, filter) {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) matches(snap Snapshot, filter ListFilter) bool {
	a := snap.Analysis
	if filter.Symbol != "" && a.Symbol != filter.Symbol {
		return false
	}
	if filter.Strategy != "" && a.Strategy != filter.Strategy {
		return false
	}
	if filter.Recommendation != "" && a.Recommendation != filter.Recommendation {
		return false
	}
	if !filter.From.IsZero() && snap.CreatedAt.Before(filter.From) {
		return false
	}
	if !filter.To.IsZero() && snap.CreatedAt.After(filter.To) {
		return false
	}
	return true
}

// internal/storage/ledger/interface.go
package ledger

import (
	"context"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/strategy"
)

// Snapshot is a stored analysis result with a stable ID.
type Snapshot struct {
	ID        string            `json:"id"`
	Analysis  strategy.Analysis `json:"analysis"`
	CreatedAt time.Time         `json:"created_at"`
}

// Store defines the interface for analysis history persistence.
type Store interface {
	// Save persists an analysis and returns the stored snapshot.
	Save(ctx context.Context, a strategy.Analysis) (Snapshot, error)

	// GetByID retrieves a snapshot by its ID.
	GetByID(ctx context.Context, id string) (*Snapshot, error)

	// List retrieves snapshots matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]Snapshot, error)

	// Count returns the number of snapshots matching the filter.
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter defines criteria for listing snapshots.
type ListFilter struct {
	Symbol         string
	Strategy       core.StrategyType
	Recommendation core.Recommendation
	From           time.Time
	To             time.Time
	Limit          int
	Offset         int
}

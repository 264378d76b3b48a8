// internal/storage/ledger/file.go
package ledger

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/position"
	"github.com/google/uuid"
)

// PositionFile is the on-disk format for a saved position ledger.
type PositionFile struct {
	SnapshotID string                      `json:"snapshot_id"`
	SavedAt    time.Time                   `json:"saved_at"`
	Cash       float64                     `json:"cash"`
	Positions  []*position.Position        `json:"positions"`
	Holdings   map[string]position.Holding `json:"holdings,omitempty"`
}

// SavePositions writes a portfolio snapshot to path as JSON. The write
// goes through a temp file and rename so a crash never leaves a
// truncated ledger.
func SavePositions(path string, pf *position.Portfolio) error {
	file := PositionFile{
		SnapshotID: uuid.NewString(),
		SavedAt:    time.Now().UTC(),
		Cash:       pf.Cash(),
		Positions:  pf.Positions(),
		Holdings:   pf.Holdings(),
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return core.WrapError(core.ErrLedgerFailed, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return core.WrapError(core.ErrLedgerFailed, err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return core.WrapError(core.ErrLedgerFailed, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return core.WrapError(core.ErrLedgerFailed, err)
	}
	return nil
}

// LoadPositions reads a saved ledger and rebuilds a portfolio. A
// missing file is not an error: it returns a fresh portfolio with
// initialCash.
func LoadPositions(path string, initialCash, maxPositionSize float64) (*position.Portfolio, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return position.NewPortfolio(initialCash, maxPositionSize), nil
	}
	if err != nil {
		return nil, core.WrapError(core.ErrLedgerFailed, err)
	}

	var file PositionFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, core.WrapError(core.ErrLedgerFailed, err)
	}

	pf := position.NewPortfolio(file.Cash, maxPositionSize)
	for sym, h := range file.Holdings {
		pf.SetHolding(sym, h.Shares, h.CostBasis)
	}
	if err := pf.Restore(file.Positions); err != nil {
		return nil, core.WrapError(core.ErrLedgerFailed, err)
	}
	return pf, nil
}

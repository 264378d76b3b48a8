package tax

import (
	"sort"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/position"
)

// washSaleWindow is the repurchase window, inclusive at the boundary.
const washSaleWindow = 30 * 24 * time.Hour

// WashSale flags a realized loss disallowed by a repurchase of the
// same symbol inside the window.
type WashSale struct {
	Symbol string `json:"symbol"`
	// LossPositionID is the position that realized the loss.
	LossPositionID string `json:"loss_position_id"`
	// RepurchaseID is the later position that triggered the rule.
	RepurchaseID string `json:"repurchase_id"`
	// DisallowedLoss is the loss amount that cannot be deducted.
	DisallowedLoss float64 `json:"disallowed_loss"`
	// DaysBetween is the entry-to-entry gap in whole days.
	DaysBetween int `json:"days_between"`
}

// DetectWashSales scans terminal positions for realized losses followed
// by a same-symbol repurchase within 30 days. The window is measured
// between entry dates, matching how the ledger records the trades; a
// gap of exactly 30 days still flags.
func DetectWashSales(positions []*position.Position) []WashSale {
	// Stable chronological order keeps the pairing deterministic.
	sorted := make([]*position.Position, len(positions))
	copy(sorted, positions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EntryDate.Before(sorted[j].EntryDate)
	})

	var sales []WashSale
	for i, loss := range sorted {
		if !loss.IsTerminal() || loss.RealizedPL() >= 0 {
			continue
		}
		for _, later := range sorted[i+1:] {
			if later.Symbol != loss.Symbol || !later.EntryDate.After(loss.EntryDate) {
				continue
			}
			gap := later.EntryDate.Sub(loss.EntryDate)
			if gap > washSaleWindow {
				continue
			}
			sales = append(sales, WashSale{
				Symbol:         loss.Symbol,
				LossPositionID: loss.ID,
				RepurchaseID:   later.ID,
				DisallowedLoss: -loss.RealizedPL(),
				DaysBetween:    int(gap.Hours() / 24),
			})
			break // one flag per loss leg
		}
	}
	return sales
}

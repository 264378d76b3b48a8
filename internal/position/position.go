// Package position defines the trade ledger: individual wheel positions
// and the portfolio that owns them.
package position

import (
	"time"

	"github.com/adamdoherty-arc/magnus/internal/core"
)

// Status represents the lifecycle state of a position.
type Status string

const (
	// StatusOpen indicates the option is still outstanding.
	StatusOpen Status = "open"
	// StatusClosed indicates the option was bought back or expired.
	StatusClosed Status = "closed"
	// StatusAssigned indicates the option was exercised against us.
	StatusAssigned Status = "assigned"
)

// Position represents a single short-option trade through its lifecycle.
// Status only moves forward: open is the sole non-terminal state.
type Position struct {
	// ID is the caller-assigned unique identifier.
	ID string `json:"id"`
	// Symbol is the underlying ticker.
	Symbol string `json:"symbol"`
	// Strategy identifies the wheel leg this position belongs to.
	Strategy core.StrategyType `json:"strategy"`
	// Strike is the option strike price.
	Strike float64 `json:"strike"`
	// Premium is the per-share credit received at entry.
	Premium float64 `json:"premium"`
	// Quantity is the number of contracts.
	Quantity int `json:"quantity"`
	// ExpirationDate is the option expiration.
	ExpirationDate time.Time `json:"expiration_date"`
	// EntryDate is when the position was opened.
	EntryDate time.Time `json:"entry_date"`
	// Status is the current lifecycle state.
	Status Status `json:"status"`
	// CloseDate is when the position reached a terminal state.
	CloseDate time.Time `json:"close_date,omitzero"`
	// ClosePrice is the option buy-back price or assignment reference.
	ClosePrice float64 `json:"close_price,omitempty"`
	// CloseReason describes why the position closed.
	CloseReason string `json:"close_reason,omitempty"`
	// StockPrice is the underlying price at entry. Covered-call
	// assignment math needs it for the cost-basis gain.
	StockPrice float64 `json:"stock_price"`
	// CashRequired is the collateral for a cash-secured put
	// (strike x quantity x 100); zero for covered calls.
	CashRequired float64 `json:"cash_required"`
}

// Validate checks the draft invariants before it may enter a portfolio.
func (p *Position) Validate() error {
	if p.ID == "" || p.Symbol == "" {
		return core.ErrInvalidContract
	}
	if !p.Strategy.IsValid() {
		return core.ErrUnknownStrategy
	}
	if p.Quantity < 1 || p.Premium < 0 || p.Strike <= 0 {
		return core.ErrInvalidContract
	}
	return nil
}

// IsTerminal returns true once the position has closed or been assigned.
func (p *Position) IsTerminal() bool {
	return p.Status == StatusClosed || p.Status == StatusAssigned
}

// DaysToExpiration returns the remaining whole days, floored at zero.
func (p *Position) DaysToExpiration(now time.Time) int {
	return core.DaysToExpiration(p.ExpirationDate, now)
}

// PremiumIncome is the total dollar credit received for the position.
func (p *Position) PremiumIncome() float64 {
	return p.Premium * float64(p.Quantity) * core.SharesPerContract
}

// Shares is the number of shares the contracts control.
func (p *Position) Shares() int {
	return p.Quantity * core.SharesPerContract
}

// Close transitions an open position to closed. closePrice is the
// per-share cost paid to buy the option back (zero if it expired).
func (p *Position) Close(closeDate time.Time, closePrice float64, reason string) error {
	return p.terminate(StatusClosed, closeDate, closePrice, reason)
}

// Assign transitions an open position to assigned. referencePrice
// records the underlying price at assignment.
func (p *Position) Assign(closeDate time.Time, referencePrice float64) error {
	return p.terminate(StatusAssigned, closeDate, referencePrice, "assigned")
}

func (p *Position) terminate(status Status, closeDate time.Time, closePrice float64, reason string) error {
	if p.IsTerminal() {
		return core.ErrPositionClosed
	}
	if closeDate.Before(p.EntryDate) {
		return core.ErrInvalidCloseDate
	}
	p.Status = status
	p.CloseDate = closeDate
	p.ClosePrice = closePrice
	p.CloseReason = reason
	return nil
}

// RealizedPL is the profit on the option leg for closed positions:
// premium received minus the cost to buy back. Assigned positions
// realize their premium in full (the stock leg is accounted separately
// by the tax engine). Open positions have no realized P&L.
func (p *Position) RealizedPL() float64 {
	switch p.Status {
	case StatusClosed:
		return p.PremiumIncome() - p.ClosePrice*float64(p.Shares())
	case StatusAssigned:
		return p.PremiumIncome()
	default:
		return 0
	}
}

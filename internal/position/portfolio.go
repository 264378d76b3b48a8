package position

import (
	"sync"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/core"
)

// Holding is a stock holding available for covered calls.
type Holding struct {
	// Shares is the number of shares held.
	Shares int `json:"shares"`
	// CostBasis is the average cost per share.
	CostBasis float64 `json:"cost_basis"`
}

// Portfolio is the aggregate book: cash, stock holdings, and every
// position added through the risk gate. It is the single source of
// truth for the caller; mutations must be serialized by the caller in
// a multi-request context, but the internal lock keeps each operation
// consistent on its own.
type Portfolio struct {
	mu sync.RWMutex

	cash            float64
	maxPositionSize float64 // fraction of cash allowed per trade
	positions       map[string]*Position
	holdings        map[string]Holding
}

// NewPortfolio creates an empty portfolio with the given capital and
// per-trade size cap (a fraction in (0, 1]).
func NewPortfolio(initialCash, maxPositionSize float64) *Portfolio {
	return &Portfolio{
		cash:            initialCash,
		maxPositionSize: maxPositionSize,
		positions:       make(map[string]*Position),
		holdings:        make(map[string]Holding),
	}
}

// Cash returns the currently available (uncommitted) cash.
func (pf *Portfolio) Cash() float64 {
	pf.mu.RLock()
	defer pf.mu.RUnlock()
	return pf.cash
}

// MaxPositionSize returns the per-trade cap as a fraction of cash.
func (pf *Portfolio) MaxPositionSize() float64 {
	pf.mu.RLock()
	defer pf.mu.RUnlock()
	return pf.maxPositionSize
}

// SetHolding records a stock holding for a symbol, replacing any
// previous entry.
func (pf *Portfolio) SetHolding(symbol string, shares int, costBasis float64) {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	pf.holdings[symbol] = Holding{Shares: shares, CostBasis: costBasis}
}

// Holding returns the stock holding for a symbol, if any.
func (pf *Portfolio) Holding(symbol string) (Holding, bool) {
	pf.mu.RLock()
	defer pf.mu.RUnlock()
	h, ok := pf.holdings[symbol]
	return h, ok
}

// Holdings returns a copy of all stock holdings.
func (pf *Portfolio) Holdings() map[string]Holding {
	pf.mu.RLock()
	defer pf.mu.RUnlock()

	out := make(map[string]Holding, len(pf.holdings))
	for sym, h := range pf.holdings {
		out[sym] = h
	}
	return out
}

// AddPosition adds a risk-approved draft to the book. Cash-secured-put
// collateral is debited from cash immediately; the credit comes back
// when the position closes, or converts to shares on assignment.
// Covered calls require the underlying shares to already be held.
func (pf *Portfolio) AddPosition(p *Position) error {
	if err := p.Validate(); err != nil {
		return err
	}

	pf.mu.Lock()
	defer pf.mu.Unlock()

	if _, exists := pf.positions[p.ID]; exists {
		return core.ErrDuplicatePosition
	}

	switch p.Strategy {
	case core.StrategyCashSecuredPut:
		if p.CashRequired > pf.cash {
			return core.ErrInsufficientCash
		}
	case core.StrategyCoveredCall:
		h := pf.holdings[p.Symbol]
		if h.Shares < p.Shares() {
			return core.ErrInsufficientShares
		}
	}

	pf.cash -= p.CashRequired
	pf.positions[p.ID] = p
	return nil
}

// Restore loads previously saved positions without moving cash. The
// saved cash balance already reflects every debit and credit, so this
// skips the bookkeeping AddPosition does.
func (pf *Portfolio) Restore(positions []*Position) error {
	pf.mu.Lock()
	defer pf.mu.Unlock()

	for _, p := range positions {
		cp := *p
		if err := cp.Validate(); err != nil {
			return err
		}
		if _, exists := pf.positions[cp.ID]; exists {
			return core.ErrDuplicatePosition
		}
		pf.positions[cp.ID] = &cp
	}
	return nil
}

// Position returns a copy of the position with the given id.
func (pf *Portfolio) Position(id string) (*Position, error) {
	pf.mu.RLock()
	defer pf.mu.RUnlock()

	p, ok := pf.positions[id]
	if !ok {
		return nil, core.ErrPositionNotFound
	}
	cp := *p
	return &cp, nil
}

// Positions returns copies of every position in the book.
func (pf *Portfolio) Positions() []*Position {
	pf.mu.RLock()
	defer pf.mu.RUnlock()

	out := make([]*Position, 0, len(pf.positions))
	for _, p := range pf.positions {
		cp := *p
		out = append(out, &cp)
	}
	return out
}

// OpenPositions returns copies of the positions still open.
func (pf *Portfolio) OpenPositions() []*Position {
	pf.mu.RLock()
	defer pf.mu.RUnlock()

	var out []*Position
	for _, p := range pf.positions {
		if p.Status == StatusOpen {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out
}

// CommittedCash sums the collateral locked by open cash-secured puts.
func (pf *Portfolio) CommittedCash() float64 {
	pf.mu.RLock()
	defer pf.mu.RUnlock()

	var total float64
	for _, p := range pf.positions {
		if p.Status == StatusOpen {
			total += p.CashRequired
		}
	}
	return total
}

// ClosePosition closes an open position, crediting back any
// cash-secured-put collateral plus the realized option P&L.
func (pf *Portfolio) ClosePosition(id string, closeDate time.Time, closePrice float64, reason string) error {
	pf.mu.Lock()
	defer pf.mu.Unlock()

	p, ok := pf.positions[id]
	if !ok {
		return core.ErrPositionNotFound
	}
	if err := p.Close(closeDate, closePrice, reason); err != nil {
		return err
	}

	pf.cash += p.CashRequired + p.RealizedPL()
	return nil
}

// AssignPosition marks an open position assigned and settles the stock
// leg: a cash-secured put converts its collateral into shares at a
// premium-reduced cost basis; a covered call delivers the shares and
// credits the strike proceeds plus the premium.
func (pf *Portfolio) AssignPosition(id string, closeDate time.Time, referencePrice float64) error {
	pf.mu.Lock()
	defer pf.mu.Unlock()

	p, ok := pf.positions[id]
	if !ok {
		return core.ErrPositionNotFound
	}
	if err := p.Assign(closeDate, referencePrice); err != nil {
		return err
	}

	shares := p.Shares()
	switch p.Strategy {
	case core.StrategyCashSecuredPut:
		// Collateral stays spent: it bought the shares. Premium
		// reduces the cost basis of the acquired lot.
		h := pf.holdings[p.Symbol]
		totalCost := float64(h.Shares)*h.CostBasis + float64(shares)*(p.Strike-p.Premium)
		h.Shares += shares
		h.CostBasis = totalCost / float64(h.Shares)
		pf.holdings[p.Symbol] = h
	case core.StrategyCoveredCall:
		h := pf.holdings[p.Symbol]
		h.Shares -= shares
		if h.Shares <= 0 {
			delete(pf.holdings, p.Symbol)
		} else {
			pf.holdings[p.Symbol] = h
		}
		pf.cash += p.Strike*float64(shares) + p.PremiumIncome()
	}
	return nil
}

// RemovePosition deletes a terminal position from the book. Open
// positions must be closed or assigned first.
func (pf *Portfolio) RemovePosition(id string) error {
	pf.mu.Lock()
	defer pf.mu.Unlock()

	p, ok := pf.positions[id]
	if !ok {
		return core.ErrPositionNotFound
	}
	if !p.IsTerminal() {
		return core.ErrPositionOpen
	}
	delete(pf.positions, id)
	return nil
}

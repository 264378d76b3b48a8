// Package strategy defines the analyzer contract shared by the wheel
// strategies and the engine that dispatches to them.
package strategy

import (
	"fmt"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/position"
)

// Request carries one candidate contract into an analyzer. Quantity is
// strategy-dependent: contracts for a cash-secured put, shares held for
// a covered call.
type Request struct {
	Stock      core.Stock
	Quantity   int
	Strike     float64
	Premium    float64
	Expiration time.Time
	Now        time.Time
}

// Validate checks the fields every analyzer requires.
func (r Request) Validate() error {
	if !r.Stock.IsValid() {
		return core.ErrInvalidStock
	}
	if r.Strike <= 0 || r.Premium < 0 || r.Quantity < 1 {
		return core.ErrInvalidContract
	}
	return nil
}

// PutMetrics holds cash-secured-put specific results.
type PutMetrics struct {
	// CapitalAtRisk is the collateral backing the puts.
	CapitalAtRisk float64 `json:"capital_at_risk"`
	// DownsideProtection is how far the stock can fall before the
	// breakeven, as a percentage of the current price.
	DownsideProtection float64 `json:"downside_protection"`
}

// CallMetrics holds covered-call specific results.
type CallMetrics struct {
	// UpsideCap is how far the stock can still rise before being
	// called away, as a percentage of the current price.
	UpsideCap float64 `json:"upside_cap"`
	// DownsideProtection is the premium cushion as a percentage of
	// the current price.
	DownsideProtection float64 `json:"downside_protection"`
	// EstimatedDividends is the dividend income expected over the
	// holding period for the covered shares.
	EstimatedDividends float64 `json:"estimated_dividends"`
	// IfCalledReturn is the period return if assigned at the strike,
	// including premium and dividends, as a percentage.
	IfCalledReturn float64 `json:"if_called_return"`
	// IfCalledAnnualized is IfCalledReturn annualized.
	IfCalledAnnualized float64 `json:"if_called_annualized"`
}

// Analysis is a scored opportunity. Returns are percentages; dollar
// fields are totals across all contracts. Exactly one of Put or Call
// is set, matching Strategy.
type Analysis struct {
	Symbol           string            `json:"symbol"`
	Strategy         core.StrategyType `json:"strategy"`
	Contracts        int               `json:"contracts"`
	Strike           float64           `json:"strike"`
	Premium          float64           `json:"premium"`
	Expiration       time.Time         `json:"expiration"`
	DaysToExpiration int               `json:"days_to_expiration"`
	StockPrice       float64           `json:"stock_price"`

	PeriodReturn     float64 `json:"period_return"`
	AnnualizedReturn float64 `json:"annualized_return"`
	MaxProfit        float64 `json:"max_profit"`
	MaxLoss          float64 `json:"max_loss"`
	Breakeven        float64 `json:"breakeven"`

	QualityScore   float64             `json:"quality_score"`
	Recommendation core.Recommendation `json:"recommendation"`

	Put  *PutMetrics  `json:"put,omitempty"`
	Call *CallMetrics `json:"call,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Analyzer turns a quote plus candidate contract into a scored Analysis.
type Analyzer interface {
	Name() string
	Description() string
	Analyze(req Request) (*Analysis, error)
}

// NewPosition builds a draft position from an analysis. The draft is
// caller-owned until the risk gate approves it into a portfolio.
func NewPosition(a *Analysis, now time.Time) *position.Position {
	p := &position.Position{
		ID:             fmt.Sprintf("%s_%s_%d", a.Strategy.Prefix(), a.Symbol, now.Unix()),
		Symbol:         a.Symbol,
		Strategy:       a.Strategy,
		Strike:         a.Strike,
		Premium:        a.Premium,
		Quantity:       a.Contracts,
		ExpirationDate: a.Expiration,
		EntryDate:      now,
		Status:         position.StatusOpen,
		StockPrice:     a.StockPrice,
	}
	if a.Strategy == core.StrategyCashSecuredPut {
		p.CashRequired = a.Strike * float64(a.Contracts) * core.SharesPerContract
	}
	return p
}

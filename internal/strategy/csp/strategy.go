// Package csp implements the cash-secured-put analyzer.
package csp

import (
	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/strategy"
)

// CashSecuredPut analyzes selling puts backed by cash collateral.
type CashSecuredPut struct{}

// New creates a new cash-secured-put analyzer.
func New() *CashSecuredPut {
	return &CashSecuredPut{}
}

func (c *CashSecuredPut) Name() string { return string(core.StrategyCashSecuredPut) }

func (c *CashSecuredPut) Description() string {
	return "Sell puts backed by cash collateral, collecting premium while waiting to buy the stock at a discount"
}

// Analyze scores a candidate put. Request.Quantity is the number of
// contracts to sell.
func (c *CashSecuredPut) Analyze(req strategy.Request) (*strategy.Analysis, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	contracts := req.Quantity
	dte := core.DaysToExpiration(req.Expiration, req.Now)

	capitalAtRisk := req.Strike * core.SharesPerContract * float64(contracts)
	premiumIncome := req.Premium * core.SharesPerContract * float64(contracts)

	periodReturn := premiumIncome / capitalAtRisk * 100

	// Annualization is undefined for an expired contract.
	var annualized float64
	if dte > 0 {
		annualized = periodReturn * 365 / float64(dte)
	}

	breakeven := req.Strike - req.Premium
	protection := (req.Stock.CurrentPrice - breakeven) / req.Stock.CurrentPrice * 100

	score := strategy.CapScore(
		strategy.ScoreReturn(annualized) +
			strategy.ScoreStockQuality(req.Stock.MeetsCriteria) +
			strategy.ScoreDownsideProtection(protection) +
			strategy.ScoreDTE(dte),
	)

	return &strategy.Analysis{
		Symbol:           req.Stock.Symbol,
		Strategy:         core.StrategyCashSecuredPut,
		Contracts:        contracts,
		Strike:           req.Strike,
		Premium:          req.Premium,
		Expiration:       req.Expiration,
		DaysToExpiration: dte,
		StockPrice:       req.Stock.CurrentPrice,
		PeriodReturn:     periodReturn,
		AnnualizedReturn: annualized,
		MaxProfit:        premiumIncome,
		MaxLoss:          capitalAtRisk - premiumIncome,
		Breakeven:        breakeven,
		QualityScore:     score,
		Recommendation:   core.RecommendationFromScore(score),
		Put: &strategy.PutMetrics{
			CapitalAtRisk:      capitalAtRisk,
			DownsideProtection: protection,
		},
		GeneratedAt: req.Now,
	}, nil
}

// Package coveredcall implements the covered-call analyzer, the
// existing-holdings scanner, and the roll recommendation.
package coveredcall

import (
	"math"
	"sort"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/position"
	"github.com/adamdoherty-arc/magnus/internal/strategy"
)

// CoveredCall analyzes selling calls against shares already held.
type CoveredCall struct{}

// New creates a new covered-call analyzer.
func New() *CoveredCall {
	return &CoveredCall{}
}

func (c *CoveredCall) Name() string { return string(core.StrategyCoveredCall) }

func (c *CoveredCall) Description() string {
	return "Sell calls against shares already owned, collecting premium in exchange for capping the upside"
}

// Analyze scores a candidate call. Request.Quantity is the number of
// shares held; at least one round lot is a hard precondition.
func (c *CoveredCall) Analyze(req strategy.Request) (*strategy.Analysis, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Quantity < core.SharesPerContract {
		return nil, core.ErrInsufficientShares
	}

	contracts := req.Quantity / core.SharesPerContract
	coveredShares := contracts * core.SharesPerContract
	dte := core.DaysToExpiration(req.Expiration, req.Now)
	price := req.Stock.CurrentPrice

	premiumIncome := req.Premium * float64(coveredShares)
	marketValue := price * float64(coveredShares)

	periodReturn := premiumIncome / marketValue * 100

	var annualized float64
	if dte > 0 {
		annualized = periodReturn * 365 / float64(dte)
	}

	upsideCap := (req.Strike - price) / price * 100
	protection := req.Premium / price * 100

	// Whole quarterly ex-dividend dates expected inside the holding
	// period; the caller's yield is annual.
	quarters := dte / 90
	estDividends := price * req.Stock.DividendYield / 4 * float64(quarters) * float64(coveredShares)

	ifCalledGain := (req.Strike-price+req.Premium)*float64(coveredShares) + estDividends
	ifCalledReturn := ifCalledGain / marketValue * 100
	var ifCalledAnnualized float64
	if dte > 0 {
		ifCalledAnnualized = ifCalledReturn * 365 / float64(dte)
	}

	score := strategy.CapScore(
		strategy.ScoreReturn(annualized) +
			strategy.ScoreStockQuality(req.Stock.MeetsCriteria) +
			strategy.ScoreUpsideBand(upsideCap) +
			strategy.ScoreDTE(dte) +
			strategy.ScoreIfCalledBonus(ifCalledAnnualized),
	)

	return &strategy.Analysis{
		Symbol:           req.Stock.Symbol,
		Strategy:         core.StrategyCoveredCall,
		Contracts:        contracts,
		Strike:           req.Strike,
		Premium:          req.Premium,
		Expiration:       req.Expiration,
		DaysToExpiration: dte,
		StockPrice:       price,
		PeriodReturn:     periodReturn,
		AnnualizedReturn: annualized,
		MaxProfit:        (req.Strike - price + req.Premium) * float64(coveredShares),
		MaxLoss:          (price - req.Premium) * float64(coveredShares),
		Breakeven:        price - req.Premium,
		QualityScore:     score,
		Recommendation:   core.RecommendationFromScore(score),
		Call: &strategy.CallMetrics{
			UpsideCap:          upsideCap,
			DownsideProtection: protection,
			EstimatedDividends: estDividends,
			IfCalledReturn:     ifCalledReturn,
			IfCalledAnnualized: ifCalledAnnualized,
		},
		GeneratedAt: req.Now,
	}, nil
}

// Holding pairs a stock snapshot with the share count held.
type Holding struct {
	Stock  core.Stock
	Shares int
}

// ScanConfig controls the synthetic strike ladder used when scanning
// existing holdings.
type ScanConfig struct {
	// Rungs is the number of strikes to synthesize per holding.
	Rungs int
	// BandLow and BandHigh bound the ladder above the current price
	// as fractions (0.05 = 5%).
	BandLow  float64
	BandHigh float64
	// DTE is the synthetic expiration horizon in days.
	DTE int
}

// DefaultScanConfig returns the standard 5-rung ladder 5-15% above the
// current price at a 35-day horizon.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Rungs:    5,
		BandLow:  0.05,
		BandHigh: 0.15,
		DTE:      35,
	}
}

// ScanHoldings synthesizes a strike ladder over every eligible holding,
// analyzes each rung, and returns the BUY/CONSIDER results sorted by
// quality score descending (ties keep input order), truncated to
// maxResults.
func (c *CoveredCall) ScanHoldings(holdings []Holding, cfg ScanConfig, maxResults int, now time.Time) []*strategy.Analysis {
	if cfg.Rungs < 1 {
		cfg = DefaultScanConfig()
	}

	var results []*strategy.Analysis
	for _, h := range holdings {
		if h.Shares < core.SharesPerContract || !h.Stock.IsValid() {
			continue
		}

		expiration := now.AddDate(0, 0, cfg.DTE)
		for _, strike := range ladder(h.Stock.CurrentPrice, cfg) {
			premium := EstimatePremium(h.Stock.CurrentPrice, h.Stock.ImpliedVolatility, strike, cfg.DTE)

			analysis, err := c.Analyze(strategy.Request{
				Stock:      h.Stock,
				Quantity:   h.Shares,
				Strike:     strike,
				Premium:    premium,
				Expiration: expiration,
				Now:        now,
			})
			if err != nil {
				continue
			}
			if analysis.Recommendation != core.RecommendationBuy &&
				analysis.Recommendation != core.RecommendationConsider {
				continue
			}
			results = append(results, analysis)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].QualityScore > results[j].QualityScore
	})
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// ladder returns evenly spaced strikes across the configured band
// above the current price.
func ladder(price float64, cfg ScanConfig) []float64 {
	strikes := make([]float64, 0, cfg.Rungs)
	if cfg.Rungs == 1 {
		return append(strikes, price*(1+cfg.BandLow))
	}
	step := (cfg.BandHigh - cfg.BandLow) / float64(cfg.Rungs-1)
	for i := 0; i < cfg.Rungs; i++ {
		strikes = append(strikes, price*(1+cfg.BandLow+step*float64(i)))
	}
	return strikes
}

// EstimatePremium approximates an out-of-the-money call premium from
// volatility and time value. Not a pricing model; just good enough to
// rank candidate strikes.
func EstimatePremium(price, impliedVol, strike float64, dte int) float64 {
	moneyness := strike / price
	premium := price * impliedVol * math.Sqrt(float64(dte)/365) * math.Sqrt(moneyness) * 0.3
	if premium < 0.05 {
		premium = 0.05
	}
	return premium
}

// Roll describes whether replacing an expiring call with a later one
// is worth it.
type Roll struct {
	// Recommended is true when the roll collects a net credit.
	Recommended bool `json:"recommended"`
	// NetCredit is the new premium income minus the buy-back cost.
	NetCredit float64 `json:"net_credit"`
	// DaysGained is the additional time sold.
	DaysGained int `json:"days_gained"`
	// NewStrike echoes the proposed strike.
	NewStrike float64 `json:"new_strike"`
}

// ShouldRoll recommends rolling an open call when the new premium more
// than pays for buying back the current one. currentOptionCost and
// newPremium are per-share.
func ShouldRoll(p *position.Position, currentOptionCost, newStrike, newPremium float64, newExpiration time.Time) Roll {
	shares := float64(p.Shares())
	netCredit := (newPremium - currentOptionCost) * shares

	return Roll{
		Recommended: netCredit > 0,
		NetCredit:   netCredit,
		DaysGained:  int(newExpiration.Sub(p.ExpirationDate).Hours() / 24),
		NewStrike:   newStrike,
	}
}

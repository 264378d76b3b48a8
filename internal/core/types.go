package core

import "time"

// StrategyType identifies a wheel strategy leg.
type StrategyType string

const (
	StrategyCashSecuredPut StrategyType = "cash-secured-put"
	StrategyCoveredCall    StrategyType = "covered-call"
)

// IsValid reports whether the strategy type is one we know how to analyze.
func (s StrategyType) IsValid() bool {
	return s == StrategyCashSecuredPut || s == StrategyCoveredCall
}

// Prefix returns the short identifier used when generating position IDs.
func (s StrategyType) Prefix() string {
	switch s {
	case StrategyCashSecuredPut:
		return "csp"
	case StrategyCoveredCall:
		return "cc"
	default:
		return "pos"
	}
}

// Recommendation is the user-facing verdict for an analyzed opportunity.
type Recommendation string

const (
	RecommendationBuy      Recommendation = "BUY"
	RecommendationConsider Recommendation = "CONSIDER"
	RecommendationWeak     Recommendation = "WEAK"
	RecommendationAvoid    Recommendation = "AVOID"
)

// RecommendationFromScore maps a quality score to its verdict.
// The thresholds are the primary user-facing signal and must not drift.
func RecommendationFromScore(score float64) Recommendation {
	switch {
	case score >= 80:
		return RecommendationBuy
	case score >= 60:
		return RecommendationConsider
	case score >= 40:
		return RecommendationWeak
	default:
		return RecommendationAvoid
	}
}

// FilingStatus is a federal tax filing status.
type FilingStatus string

const (
	FilingSingle          FilingStatus = "single"
	FilingMarriedJoint    FilingStatus = "married_joint"
	FilingMarriedSeparate FilingStatus = "married_separate"
	FilingHeadOfHousehold FilingStatus = "head_of_household"
)

// Stock is a point-in-time snapshot of an underlying, supplied by an
// external market-data provider. The engine never fetches this itself.
type Stock struct {
	Symbol            string    `json:"symbol"`
	CurrentPrice      float64   `json:"current_price"`
	ImpliedVolatility float64   `json:"implied_volatility"`
	Beta              float64   `json:"beta"`
	DividendYield     float64   `json:"dividend_yield"` // annual, as a fraction (0.02 = 2%)
	Sector            string    `json:"sector"`
	MeetsCriteria     bool      `json:"meets_criteria"` // passed the caller's screening
	QuotedAt          time.Time `json:"quoted_at"`
}

// IsValid checks that the snapshot has the fields every analyzer needs.
func (s Stock) IsValid() bool {
	return s.Symbol != "" && s.CurrentPrice > 0
}

// SharesPerContract is the standard equity option multiplier.
const SharesPerContract = 100

// DaysToExpiration computes whole days remaining until expiration,
// floored at zero. It is always derived, never stored.
func DaysToExpiration(expiration, now time.Time) int {
	days := int(expiration.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

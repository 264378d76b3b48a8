package strategy

// Scoring tiers shared by both analyzers. Points are additive and the
// final score is capped at 100.

// ScoreReturn awards points for the annualized return tier.
func ScoreReturn(annualizedPct float64) float64 {
	switch {
	case annualizedPct >= 15:
		return 25
	case annualizedPct >= 12:
		return 20
	case annualizedPct >= 8:
		return 15
	case annualizedPct >= 6:
		return 10
	default:
		return 5
	}
}

// ScoreStockQuality awards points for passing the caller's screen.
func ScoreStockQuality(meetsCriteria bool) float64 {
	if meetsCriteria {
		return 25
	}
	return 15
}

// ScoreDTE awards points for the expiration sweet spot. 30-45 days
// balances theta decay against assignment risk.
func ScoreDTE(dte int) float64 {
	switch {
	case dte >= 30 && dte <= 45:
		return 15
	case dte >= 14 && dte <= 60:
		return 12
	default:
		return 8
	}
}

// upsideBandLow and upsideBandHigh bound the ideal covered-call upside
// cap: enough room to profit if called, not so much the premium is thin.
const (
	upsideBandLow  = 8.0
	upsideBandHigh = 15.0
	upsideBandFade = 7.0 // points of distance over which credit decays
)

// ScoreUpsideBand awards the full 20 points inside the ideal band and
// half credit fading linearly to zero outside it.
func ScoreUpsideBand(upsideCapPct float64) float64 {
	if upsideCapPct >= upsideBandLow && upsideCapPct <= upsideBandHigh {
		return 20
	}
	var dist float64
	if upsideCapPct < upsideBandLow {
		dist = upsideBandLow - upsideCapPct
	} else {
		dist = upsideCapPct - upsideBandHigh
	}
	if dist >= upsideBandFade {
		return 0
	}
	return 10 * (1 - dist/upsideBandFade)
}

// ScoreDownsideProtection awards the full 20 points at 3% or more of
// cushion, proportional credit below that.
func ScoreDownsideProtection(protectionPct float64) float64 {
	if protectionPct >= 3 {
		return 20
	}
	if protectionPct <= 0 {
		return 0
	}
	return 20 * protectionPct / 3
}

// ScoreIfCalledBonus awards the covered-call bonus for a strong
// if-called annualized return.
func ScoreIfCalledBonus(ifCalledAnnualizedPct float64) float64 {
	switch {
	case ifCalledAnnualizedPct >= 20:
		return 5
	case ifCalledAnnualizedPct >= 15:
		return 3
	default:
		return 0
	}
}

// CapScore clamps an additive score into [0, 100].
func CapScore(score float64) float64 {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

package tax

import (
	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/position"
	"go.uber.org/zap"
)

// Config holds the as-of tax-year settings for a Calculator.
type Config struct {
	// Year selects the bracket tables.
	Year int
	// FilingStatus selects the bracket column; unsupported values
	// fall back to single.
	FilingStatus core.FilingStatus
	// StateRate is a flat state tax rate applied to all realized
	// income (0.05 = 5%).
	StateRate float64
}

// Calculator computes taxes for one tax year and filing status.
type Calculator struct {
	config Config
	table  bracketTable
	logger *zap.Logger
}

// NewCalculator creates a Calculator for the configured year and
// filing status.
func NewCalculator(cfg Config, logger ...*zap.Logger) *Calculator {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.NewNop()
	}
	return &Calculator{
		config: cfg,
		table:  lookupBrackets(cfg.Year, cfg.FilingStatus),
		logger: l,
	}
}

// OrdinaryIncomeTax integrates the marginal brackets over the income:
// each bracket taxes the slice of income inside its range.
func (c *Calculator) OrdinaryIncomeTax(income float64) float64 {
	if income <= 0 {
		return 0
	}

	var tax float64
	for _, b := range c.table.ordinary {
		if income <= b.Min {
			break
		}
		top := income
		if top > b.Max {
			top = b.Max
		}
		tax += (top - b.Min) * b.Rate
	}
	return tax
}

// CapitalGainsTax applies the single bracket containing the taxpayer's
// total income to the full gain. Unlike OrdinaryIncomeTax it does not
// split the gain across brackets; the stacked lookup picks one rate.
func (c *Calculator) CapitalGainsTax(gains, ordinaryIncome float64) float64 {
	if gains <= 0 {
		return 0
	}

	total := ordinaryIncome + gains
	for _, b := range c.table.capitalGains {
		if total > b.Min && total <= b.Max {
			return gains * b.Rate
		}
	}
	top := c.table.capitalGains[len(c.table.capitalGains)-1]
	return gains * top.Rate
}

// OptionsTaxResult aggregates the realized tax picture for a set of
// positions.
type OptionsTaxResult struct {
	// PremiumIncome is the net option profit on closed positions,
	// always taxed as ordinary income regardless of holding period.
	PremiumIncome float64 `json:"premium_income"`
	// LongTermCapitalGains is the stock gain realized by assigned
	// covered calls (sale at strike plus premium over entry basis).
	LongTermCapitalGains float64 `json:"long_term_capital_gains"`
	// DeferredBasisReduction is the premium from assigned puts:
	// no tax now, it reduces the basis of the acquired shares.
	DeferredBasisReduction float64 `json:"deferred_basis_reduction"`
	// OrdinaryTax is the incremental federal tax on the premiums:
	// tax(other income + premiums) - tax(other income).
	OrdinaryTax float64 `json:"ordinary_tax"`
	// CapitalGainsTax is the federal tax on the long-term gains.
	CapitalGainsTax float64 `json:"capital_gains_tax"`
	// StateTax is the flat state rate on premiums plus gains.
	StateTax float64 `json:"state_tax"`
	// TotalTax is federal plus state.
	TotalTax float64 `json:"total_tax"`
}

// OptionsTax computes the tax consequences of a set of positions on
// top of otherIncome. Open positions contribute nothing.
func (c *Calculator) OptionsTax(positions []*position.Position, otherIncome float64) OptionsTaxResult {
	var result OptionsTaxResult

	for _, p := range positions {
		switch p.Status {
		case position.StatusClosed:
			result.PremiumIncome += p.RealizedPL()
		case position.StatusAssigned:
			switch p.Strategy {
			case core.StrategyCoveredCall:
				// Shares sold at strike; the premium folds into
				// the proceeds. Classified long-term here; the
				// holding-period check lives with the caller's
				// lot records, not the option ledger.
				gain := (p.Strike + p.Premium - p.StockPrice) * float64(p.Shares())
				result.LongTermCapitalGains += gain
			case core.StrategyCashSecuredPut:
				// No tax event: premium reduces the cost basis
				// of the acquired shares.
				result.DeferredBasisReduction += p.PremiumIncome()
			}
		}
	}

	result.OrdinaryTax = c.OrdinaryIncomeTax(otherIncome+result.PremiumIncome) - c.OrdinaryIncomeTax(otherIncome)
	result.CapitalGainsTax = c.CapitalGainsTax(result.LongTermCapitalGains, otherIncome+result.PremiumIncome)

	taxable := result.PremiumIncome + result.LongTermCapitalGains
	if taxable > 0 {
		result.StateTax = taxable * c.config.StateRate
	}
	result.TotalTax = result.OrdinaryTax + result.CapitalGainsTax + result.StateTax

	return result
}

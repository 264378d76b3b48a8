package tax

import (
	"fmt"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/position"
	"go.uber.org/zap"
)

// StrategyBreakdown summarizes one strategy's realized activity.
type StrategyBreakdown struct {
	Positions    int     `json:"positions"`
	TotalPremium float64 `json:"total_premium"`
	TotalPL      float64 `json:"total_pl"`
	Assignments  int     `json:"assignments"`
}

// Report is the full tax picture for one year.
type Report struct {
	Year         int               `json:"year"`
	FilingStatus core.FilingStatus `json:"filing_status"`

	OtherIncome float64 `json:"other_income"`
	OptionsTaxResult

	EffectiveRate float64 `json:"effective_rate"`

	ByStrategy      map[core.StrategyType]StrategyBreakdown `json:"by_strategy"`
	WashSales       []WashSale                              `json:"wash_sales"`
	Recommendations []string                                `json:"recommendations"`
}

// Marks carries current per-share buy-back costs by position id, used
// only for the tax-loss-harvesting recommendation on open positions.
// Positions without a mark are skipped.
type Marks map[string]float64

// GenerateReport builds the tax report for a year: positions whose
// entry date falls in the year and that have reached a terminal state
// feed the tax math; open positions only inform the year-end
// harvesting recommendation.
func (c *Calculator) GenerateReport(positions []*position.Position, otherIncome float64, year int, now time.Time, marks Marks) *Report {
	var realized []*position.Position
	byStrategy := make(map[core.StrategyType]StrategyBreakdown)

	for _, p := range positions {
		if p.EntryDate.Year() != year || !p.IsTerminal() {
			continue
		}
		realized = append(realized, p)

		b := byStrategy[p.Strategy]
		b.Positions++
		b.TotalPremium += p.PremiumIncome()
		b.TotalPL += p.RealizedPL()
		if p.Status == position.StatusAssigned {
			b.Assignments++
		}
		byStrategy[p.Strategy] = b
	}

	result := c.OptionsTax(realized, otherIncome)
	washSales := DetectWashSales(realized)

	report := &Report{
		Year:             year,
		FilingStatus:     c.config.FilingStatus,
		OtherIncome:      otherIncome,
		OptionsTaxResult: result,
		ByStrategy:       byStrategy,
		WashSales:        washSales,
	}

	totalIncome := otherIncome + result.PremiumIncome + result.LongTermCapitalGains
	if totalIncome > 0 {
		federalOnOther := c.OrdinaryIncomeTax(otherIncome)
		report.EffectiveRate = (result.TotalTax + federalOnOther) / totalIncome
	}

	report.Recommendations = c.recommendations(report, positions, now, marks)

	c.logger.Debug("tax report generated",
		zap.Int("year", year),
		zap.Int("realized_positions", len(realized)),
		zap.Int("wash_sales", len(washSales)),
		zap.Float64("total_tax", result.TotalTax),
	)

	return report
}

func (c *Calculator) recommendations(r *Report, all []*position.Position, now time.Time, marks Marks) []string {
	var recs []string

	if r.EffectiveRate > 0.30 {
		recs = append(recs, fmt.Sprintf(
			"Effective tax rate is %.1f%%. Consider running high-turnover wheel strategies in a tax-advantaged account.",
			r.EffectiveRate*100))
	}

	if len(r.WashSales) > 0 {
		recs = append(recs, fmt.Sprintf(
			"%d wash sale(s) detected: the disallowed losses cannot be deducted this year. Avoid re-entering a symbol within 30 days of realizing a loss.",
			len(r.WashSales)))
	}

	if now.Month() == time.November || now.Month() == time.December {
		var losers int
		for _, p := range all {
			if p.Status != position.StatusOpen {
				continue
			}
			mark, ok := marks[p.ID]
			if !ok {
				continue
			}
			// Buying back above the premium received realizes a loss.
			if mark > p.Premium {
				losers++
			}
		}
		if losers > 0 {
			recs = append(recs, fmt.Sprintf(
				"%d open position(s) carry unrealized losses. Closing before year end would realize losses that offset gains (watch the wash-sale window).",
				losers))
		}
	}

	return recs
}

package alert

import (
	"time"

	"github.com/adamdoherty-arc/magnus/internal/position"
)

// Alert is a fired rule for one position.
type Alert struct {
	PositionID string `json:"position_id"`
	Symbol     string `json:"symbol"`
	Rule       string `json:"rule"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
}

// Monitor evaluates alert rules over open positions. Custom rules
// replace the per-strategy defaults when set.
type Monitor struct {
	rules []Rule
}

// NewMonitor creates a monitor. With no rules it uses the built-in
// per-strategy defaults.
func NewMonitor(rules ...Rule) *Monitor {
	return &Monitor{rules: rules}
}

// Metrics builds the metric map for one position. The mark is the
// current stock price; zero when the caller has no quote, which
// disables price-based rules.
func Metrics(p *position.Position, mark float64, now time.Time) map[string]float64 {
	m := map[string]float64{
		"dte":     float64(p.DaysToExpiration(now)),
		"strike":  p.Strike,
		"premium": p.Premium,
	}
	if mark > 0 {
		m["stock_price"] = mark
		m["moneyness"] = mark / p.Strike
	}
	return m
}

// Evaluate runs the rules over every open position. Marks is an
// optional map of current stock prices by symbol.
func (mon *Monitor) Evaluate(positions []*position.Position, marks map[string]float64, now time.Time) []Alert {
	var alerts []Alert

	for _, p := range positions {
		if p.Status != position.StatusOpen {
			continue
		}

		rules := mon.rules
		if len(rules) == 0 {
			rules = DefaultRules(p.Strategy)
		}

		metrics := Metrics(p, marks[p.Symbol], now)
		for _, rule := range rules {
			if rule.Evaluate(metrics) {
				alerts = append(alerts, Alert{
					PositionID: p.ID,
					Symbol:     p.Symbol,
					Rule:       rule.Name,
					Severity:   rule.Severity,
					Message:    rule.FormatMessage(),
				})
			}
		}
	}
	return alerts
}

package alert

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/adamdoherty-arc/magnus/internal/core"
)

// Rule defines a position alert rule. Expr is a single comparison over
// the per-position metric map, e.g. "dte <= 7" or "moneyness < 1".
type Rule struct {
	Name     string `mapstructure:"name" json:"name"`
	Expr     string `mapstructure:"expr" json:"expr"`
	Severity string `mapstructure:"severity" json:"severity"`
	Message  string `mapstructure:"message" json:"message"`
}

var exprPattern = regexp.MustCompile(`^(\w+)\s*(>|<|>=|<=|==|!=)\s*([\d.]+)$`)

// Evaluate evaluates the rule expression against metrics.
func (r *Rule) Evaluate(metrics map[string]float64) bool {
	matches := exprPattern.FindStringSubmatch(strings.TrimSpace(r.Expr))
	if len(matches) != 4 {
		return false
	}

	metricName := matches[1]
	op := matches[2]
	threshold, err := strconv.ParseFloat(matches[3], 64)
	if err != nil {
		return false
	}

	value, exists := metrics[metricName]
	if !exists {
		return false
	}

	switch op {
	case ">":
		return value > threshold
	case "<":
		return value < threshold
	case ">=":
		return value >= threshold
	case "<=":
		return value <= threshold
	case "==":
		return value == threshold
	case "!=":
		return value != threshold
	default:
		return false
	}
}

// FormatMessage formats the alert message.
func (r *Rule) FormatMessage() string {
	return fmt.Sprintf("[%s] %s: %s", strings.ToUpper(r.Severity), r.Name, r.Message)
}

// DefaultRules returns the built-in rule set for a strategy. Moneyness
// is stock price over strike, so below 1 a short put is in the money
// and a short call is safe.
func DefaultRules(st core.StrategyType) []Rule {
	common := []Rule{
		{
			Name:     "expiring_soon",
			Expr:     "dte <= 7",
			Severity: "warning",
			Message:  "position expires within a week",
		},
	}

	switch st {
	case core.StrategyCashSecuredPut:
		return append(common, Rule{
			Name:     "assignment_risk",
			Expr:     "moneyness < 1",
			Severity: "warning",
			Message:  "stock below strike, put likely to be assigned",
		})
	case core.StrategyCoveredCall:
		return append(common, Rule{
			Name:     "call_away_risk",
			Expr:     "moneyness > 1",
			Severity: "info",
			Message:  "stock above strike, shares likely to be called away",
		})
	default:
		return common
	}
}

// Package risk gates candidate trades against portfolio-level limits.
// The manager only reports; it never mutates the portfolio.
package risk

import (
	"fmt"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/position"
	"go.uber.org/zap"
)

// Severity classifies a risk finding.
type Severity string

const (
	// SeverityBlocking findings reject the trade.
	SeverityBlocking Severity = "blocking"
	// SeverityWarning findings inform but do not reject.
	SeverityWarning Severity = "warning"
)

// Risk is a single finding from a validation pass.
type Risk struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Assessment is the outcome of validating one candidate trade.
type Assessment struct {
	// Approved is false when any blocking finding is present.
	Approved bool   `json:"approved"`
	Risks    []Risk `json:"risks"`
}

// Config holds portfolio-wide risk thresholds.
type Config struct {
	// MaxConcentrationPct caps collateral committed to one symbol as
	// a percentage of total cash.
	MaxConcentrationPct float64
	// ExpiryWarningDays marks positions close enough to expiration to
	// need attention.
	ExpiryWarningDays int
	// MaxDeployedPct warns when committed collateral exceeds this
	// percentage of total cash.
	MaxDeployedPct float64
}

// DefaultConfig returns conventional thresholds.
func DefaultConfig() Config {
	return Config{
		MaxConcentrationPct: 25.0,
		ExpiryWarningDays:   7,
		MaxDeployedPct:      80.0,
	}
}

// Manager validates trades and portfolios against risk limits.
type Manager struct {
	config Config
	logger *zap.Logger
}

// NewManager creates a Manager with the given thresholds.
func NewManager(config Config, logger ...*zap.Logger) *Manager {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.NewNop()
	}
	return &Manager{config: config, logger: l}
}

// ValidateTrade checks a draft position against the portfolio's limits.
// A rejection is data, not an error: the caller presents the findings
// to the user and must not add the position.
func (m *Manager) ValidateTrade(pf *position.Portfolio, draft *position.Position, stock core.Stock) Assessment {
	var risks []Risk

	cash := pf.Cash()
	sizeCap := pf.MaxPositionSize() * cash

	// Exposure the cap applies to: collateral for puts, covered stock
	// value for calls.
	exposure := draft.CashRequired
	if draft.Strategy == core.StrategyCoveredCall {
		exposure = stock.CurrentPrice * float64(draft.Shares())
	}

	if draft.Strategy == core.StrategyCashSecuredPut && draft.CashRequired > cash {
		risks = append(risks, Risk{
			Severity: SeverityBlocking,
			Message: fmt.Sprintf("insufficient capital: requires $%.2f, available $%.2f",
				draft.CashRequired, cash),
		})
	}

	if exposure > sizeCap {
		risks = append(risks, Risk{
			Severity: SeverityBlocking,
			Message: fmt.Sprintf("position too large: $%.2f exceeds cap of $%.2f (%.0f%% of cash)",
				exposure, sizeCap, pf.MaxPositionSize()*100),
		})
	}

	if draft.Strategy == core.StrategyCoveredCall {
		h, _ := pf.Holding(draft.Symbol)
		if h.Shares < draft.Shares() {
			risks = append(risks, Risk{
				Severity: SeverityBlocking,
				Message: fmt.Sprintf("insufficient shares: %d contracts need %d shares, holding %d",
					draft.Quantity, draft.Shares(), h.Shares),
			})
		}
	}

	approved := true
	for _, r := range risks {
		if r.Severity == SeverityBlocking {
			approved = false
			break
		}
	}

	if !approved {
		m.logger.Info("trade rejected",
			zap.String("symbol", draft.Symbol),
			zap.String("strategy", string(draft.Strategy)),
			zap.Int("findings", len(risks)),
		)
	}

	return Assessment{Approved: approved, Risks: risks}
}

// ValidatePortfolio runs the portfolio-wide checks: overall capital
// deployment, per-symbol concentration, and positions nearing
// expiration. All findings are warnings; the portfolio itself is never
// "rejected".
func (m *Manager) ValidatePortfolio(pf *position.Portfolio, now time.Time) []Risk {
	var risks []Risk

	committed := pf.CommittedCash()
	total := pf.Cash() + committed

	if total > 0 {
		deployedPct := committed / total * 100
		if deployedPct > m.config.MaxDeployedPct {
			risks = append(risks, Risk{
				Severity: SeverityWarning,
				Message: fmt.Sprintf("capital deployment high: %.1f%% of cash committed (limit %.0f%%)",
					deployedPct, m.config.MaxDeployedPct),
			})
		}
	}

	bySymbol := make(map[string]float64)
	var expiring int
	for _, p := range pf.OpenPositions() {
		bySymbol[p.Symbol] += p.CashRequired
		if p.DaysToExpiration(now) <= m.config.ExpiryWarningDays {
			expiring++
		}
	}

	if total > 0 {
		for symbol, committed := range bySymbol {
			pct := committed / total * 100
			if pct > m.config.MaxConcentrationPct {
				risks = append(risks, Risk{
					Severity: SeverityWarning,
					Message: fmt.Sprintf("concentration in %s: %.1f%% of capital (limit %.0f%%)",
						symbol, pct, m.config.MaxConcentrationPct),
				})
			}
		}
	}

	if expiring > 0 {
		risks = append(risks, Risk{
			Severity: SeverityWarning,
			Message: fmt.Sprintf("%d position(s) within %d days of expiration",
				expiring, m.config.ExpiryWarningDays),
		})
	}

	return risks
}

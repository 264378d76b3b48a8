package alert

import (
	"testing"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/position"
)

func openCSP(id string, strike float64, dte int, now time.Time) *position.Position {
	return &position.Position{
		ID:             id,
		Symbol:         "XYZ",
		Strategy:       core.StrategyCashSecuredPut,
		Strike:         strike,
		Premium:        1.2,
		Quantity:       1,
		ExpirationDate: now.AddDate(0, 0, dte),
		EntryDate:      now.AddDate(0, 0, -10),
		Status:         position.StatusOpen,
	}
}

func TestRule_Evaluate(t *testing.T) {
	tests := []struct {
		expr    string
		metrics map[string]float64
		want    bool
	}{
		{"dte <= 7", map[string]float64{"dte": 5}, true},
		{"dte <= 7", map[string]float64{"dte": 8}, false},
		{"moneyness < 1", map[string]float64{"moneyness": 0.96}, true},
		{"moneyness < 1", map[string]float64{"moneyness": 1.04}, false},
		{"dte == 0", map[string]float64{"dte": 0}, true},
		{"dte != 0", map[string]float64{"dte": 0}, false},
		{"missing > 1", map[string]float64{"dte": 5}, false},
		{"not an expr", map[string]float64{"dte": 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			r := Rule{Name: "test", Expr: tt.expr}
			if got := r.Evaluate(tt.metrics); got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestMonitor_ExpiringSoon(t *testing.T) {
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	mon := NewMonitor()

	alerts := mon.Evaluate([]*position.Position{openCSP("p1", 50, 5, now)}, nil, now)

	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Rule != "expiring_soon" {
		t.Errorf("expected expiring_soon, got %s", alerts[0].Rule)
	}
}

func TestMonitor_AssignmentRisk(t *testing.T) {
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	mon := NewMonitor()

	// Stock at 48 against a 50 strike put, 30 days out.
	alerts := mon.Evaluate([]*position.Position{openCSP("p1", 50, 30, now)},
		map[string]float64{"XYZ": 48}, now)

	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Rule != "assignment_risk" {
		t.Errorf("expected assignment_risk, got %s", alerts[0].Rule)
	}
}

func TestMonitor_NoMarkDisablesPriceRules(t *testing.T) {
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	mon := NewMonitor()

	alerts := mon.Evaluate([]*position.Position{openCSP("p1", 50, 30, now)}, nil, now)
	if len(alerts) != 0 {
		t.Errorf("expected no alerts without marks, got %d", len(alerts))
	}
}

func TestMonitor_CallAwayRisk(t *testing.T) {
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	p := &position.Position{
		ID:             "cc1",
		Symbol:         "AAPL",
		Strategy:       core.StrategyCoveredCall,
		Strike:         180,
		Premium:        2.5,
		Quantity:       2,
		ExpirationDate: now.AddDate(0, 0, 20),
		EntryDate:      now.AddDate(0, 0, -5),
		Status:         position.StatusOpen,
	}

	alerts := NewMonitor().Evaluate([]*position.Position{p},
		map[string]float64{"AAPL": 185}, now)

	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Rule != "call_away_risk" {
		t.Errorf("expected call_away_risk, got %s", alerts[0].Rule)
	}
}

func TestMonitor_SkipsTerminalPositions(t *testing.T) {
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	p := openCSP("p1", 50, 5, now)
	p.Status = position.StatusClosed

	alerts := NewMonitor().Evaluate([]*position.Position{p}, nil, now)
	if len(alerts) != 0 {
		t.Errorf("expected no alerts for closed positions, got %d", len(alerts))
	}
}

func TestMonitor_CustomRules(t *testing.T) {
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	mon := NewMonitor(Rule{
		Name:     "rich_premium",
		Expr:     "premium >= 1",
		Severity: "info",
		Message:  "premium above a dollar",
	})

	alerts := mon.Evaluate([]*position.Position{openCSP("p1", 50, 30, now)}, nil, now)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert from custom rule, got %d", len(alerts))
	}
	if alerts[0].Rule != "rich_premium" {
		t.Errorf("expected rich_premium, got %s", alerts[0].Rule)
	}
}

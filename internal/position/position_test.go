package position

import (
	"errors"
	"testing"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/core"
)

func testCSP() *Position {
	entry := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	return &Position{
		ID:             "csp_XYZ_1748822400",
		Symbol:         "XYZ",
		Strategy:       core.StrategyCashSecuredPut,
		Strike:         50,
		Premium:        1.2,
		Quantity:       1,
		ExpirationDate: entry.AddDate(0, 0, 35),
		EntryDate:      entry,
		Status:         StatusOpen,
		StockPrice:     52,
		CashRequired:   5000,
	}
}

func TestPosition_Validate(t *testing.T) {
	p := testCSP()
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := testCSP()
	bad.Quantity = 0
	if !errors.Is(bad.Validate(), core.ErrInvalidContract) {
		t.Error("zero quantity should be invalid")
	}

	bad = testCSP()
	bad.Premium = -0.5
	if !errors.Is(bad.Validate(), core.ErrInvalidContract) {
		t.Error("negative premium should be invalid")
	}

	bad = testCSP()
	bad.Strategy = "straddle"
	if !errors.Is(bad.Validate(), core.ErrUnknownStrategy) {
		t.Error("unknown strategy should be rejected")
	}
}

func TestPosition_PremiumIncome(t *testing.T) {
	p := testCSP()
	if got := p.PremiumIncome(); got != 120 {
		t.Errorf("expected 120, got %.2f", got)
	}

	p.Quantity = 3
	if got := p.PremiumIncome(); got != 360 {
		t.Errorf("expected 360, got %.2f", got)
	}
}

func TestPosition_Close(t *testing.T) {
	p := testCSP()
	closeDate := p.EntryDate.AddDate(0, 0, 20)

	if err := p.Close(closeDate, 0.4, "buyback at 50% profit"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Status != StatusClosed {
		t.Errorf("expected closed, got %s", p.Status)
	}
	// 120 received - 40 to buy back
	if got := p.RealizedPL(); got != 80 {
		t.Errorf("expected realized P&L 80, got %.2f", got)
	}
}

func TestPosition_Close_Terminal(t *testing.T) {
	p := testCSP()
	closeDate := p.EntryDate.AddDate(0, 0, 20)
	if err := p.Close(closeDate, 0, "expired"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Terminal states never transition again.
	if err := p.Close(closeDate.AddDate(0, 0, 1), 0, "again"); !errors.Is(err, core.ErrPositionClosed) {
		t.Errorf("expected ErrPositionClosed, got %v", err)
	}
	if err := p.Assign(closeDate.AddDate(0, 0, 1), 48); !errors.Is(err, core.ErrPositionClosed) {
		t.Errorf("expected ErrPositionClosed, got %v", err)
	}
}

func TestPosition_Close_BeforeEntry(t *testing.T) {
	p := testCSP()
	err := p.Close(p.EntryDate.AddDate(0, 0, -1), 0, "bad date")
	if !errors.Is(err, core.ErrInvalidCloseDate) {
		t.Errorf("expected ErrInvalidCloseDate, got %v", err)
	}
	if p.Status != StatusOpen {
		t.Error("failed close must not change status")
	}
}

func TestPosition_Assign(t *testing.T) {
	p := testCSP()
	closeDate := p.EntryDate.AddDate(0, 0, 35)

	if err := p.Assign(closeDate, 47.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != StatusAssigned {
		t.Errorf("expected assigned, got %s", p.Status)
	}
	// Assigned positions keep the full premium on the option leg.
	if got := p.RealizedPL(); got != 120 {
		t.Errorf("expected realized P&L 120, got %.2f", got)
	}
}

func TestPosition_DaysToExpiration(t *testing.T) {
	p := testCSP()

	if d := p.DaysToExpiration(p.EntryDate); d != 35 {
		t.Errorf("expected 35, got %d", d)
	}
	if d := p.DaysToExpiration(p.ExpirationDate.AddDate(0, 0, 10)); d != 0 {
		t.Errorf("expected 0 after expiry, got %d", d)
	}
}

func TestPosition_RealizedPL_Open(t *testing.T) {
	p := testCSP()
	if got := p.RealizedPL(); got != 0 {
		t.Errorf("open position should have zero realized P&L, got %.2f", got)
	}
}

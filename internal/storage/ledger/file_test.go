// internal/storage/ledger/file_test.go
package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/position"
)

func TestSaveAndLoadPositions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")

	pf := position.NewPortfolio(10000, 0.5)
	pf.SetHolding("AAPL", 200, 150)

	p := &position.Position{
		ID:             "csp_XYZ_1",
		Symbol:         "XYZ",
		Strategy:       core.StrategyCashSecuredPut,
		Strike:         50,
		Premium:        1.2,
		Quantity:       1,
		ExpirationDate: time.Date(2025, 7, 18, 0, 0, 0, 0, time.UTC),
		EntryDate:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Status:         position.StatusOpen,
		StockPrice:     52,
		CashRequired:   5000,
	}
	if err := pf.AddPosition(p); err != nil {
		t.Fatalf("AddPosition failed: %v", err)
	}

	if err := SavePositions(path, pf); err != nil {
		t.Fatalf("SavePositions failed: %v", err)
	}

	loaded, err := LoadPositions(path, 99999, 0.5)
	if err != nil {
		t.Fatalf("LoadPositions failed: %v", err)
	}

	// Saved cash wins over the initial-cash argument.
	if loaded.Cash() != 5000 {
		t.Errorf("expected cash 5000, got %.2f", loaded.Cash())
	}

	got, err := loaded.Position("csp_XYZ_1")
	if err != nil {
		t.Fatalf("Position failed: %v", err)
	}
	if got.Strike != 50 || got.Status != position.StatusOpen {
		t.Errorf("position did not round-trip: %+v", got)
	}

	h, ok := loaded.Holding("AAPL")
	if !ok || h.Shares != 200 {
		t.Errorf("holding did not round-trip: %+v", h)
	}
}

func TestLoadPositions_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	pf, err := LoadPositions(path, 25000, 0.2)
	if err != nil {
		t.Fatalf("LoadPositions failed: %v", err)
	}
	if pf.Cash() != 25000 {
		t.Errorf("expected fresh portfolio with 25000, got %.2f", pf.Cash())
	}
}

func TestLoadPositions_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadPositions(path, 1000, 0.2)
	if err == nil {
		t.Fatal("expected error for corrupt ledger")
	}
}

package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/config"
	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/position"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.Archive.Path = filepath.Join(t.TempDir(), "archive")
	return cfg
}

func TestNew_RegistersBothStrategies(t *testing.T) {
	a, err := New(testConfig(t), zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, ok := a.Engine.Get(core.StrategyCashSecuredPut); !ok {
		t.Error("expected cash-secured-put analyzer registered")
	}
	if _, ok := a.Engine.Get(core.StrategyCoveredCall); !ok {
		t.Error("expected covered-call analyzer registered")
	}
}

func TestNew_PortfolioFromConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Portfolio.InitialCash = 42000

	a, err := New(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a.Portfolio.Cash() != 42000 {
		t.Errorf("expected cash 42000, got %.2f", a.Portfolio.Cash())
	}
}

func TestNew_MetricsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Enabled = false

	a, err := New(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a.Metrics != nil {
		t.Error("expected nil metrics registry when disabled")
	}
}

func TestNew_UnknownArchiveType(t *testing.T) {
	cfg := testConfig(t)
	cfg.Archive.Type = "tape"

	if _, err := New(cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for unknown archive type")
	}
}

func TestSavePortfolio_RoundTrip(t *testing.T) {
	cfg := testConfig(t)
	cfg.Portfolio.InitialCash = 10000
	cfg.Portfolio.MaxPositionSize = 0.5
	cfg.Portfolio.LedgerPath = filepath.Join(t.TempDir(), "positions.json")

	a, err := New(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	p := &position.Position{
		ID:             "csp_XYZ_1",
		Symbol:         "XYZ",
		Strategy:       core.StrategyCashSecuredPut,
		Strike:         50,
		Premium:        1.2,
		Quantity:       1,
		ExpirationDate: time.Now().Add(30 * 24 * time.Hour),
		EntryDate:      time.Now(),
		Status:         position.StatusOpen,
		CashRequired:   5000,
	}
	if err := a.Portfolio.AddPosition(p); err != nil {
		t.Fatalf("AddPosition failed: %v", err)
	}
	if err := a.SavePortfolio(); err != nil {
		t.Fatalf("SavePortfolio failed: %v", err)
	}

	// A second app over the same config restores the book.
	b, err := New(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if b.Portfolio.Cash() != 5000 {
		t.Errorf("expected restored cash 5000, got %.2f", b.Portfolio.Cash())
	}
	if _, err := b.Portfolio.Position("csp_XYZ_1"); err != nil {
		t.Errorf("expected restored position: %v", err)
	}
}

package strategy_test

import (
	"errors"
	"testing"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/position"
	"github.com/adamdoherty-arc/magnus/internal/strategy"
)

var now = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

// stubAnalyzer returns a canned analysis or error.
type stubAnalyzer struct {
	analysis *strategy.Analysis
	err      error
}

func (s *stubAnalyzer) Name() string        { return "stub" }
func (s *stubAnalyzer) Description() string { return "stub analyzer" }
func (s *stubAnalyzer) Analyze(req strategy.Request) (*strategy.Analysis, error) {
	return s.analysis, s.err
}

func TestEngine_Analyze(t *testing.T) {
	e := strategy.NewEngine()
	want := &strategy.Analysis{Symbol: "XYZ", QualityScore: 85}
	e.Register(core.StrategyCashSecuredPut, &stubAnalyzer{analysis: want})

	got, err := e.Analyze(core.StrategyCashSecuredPut, strategy.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Error("expected the registered analyzer's result")
	}
}

func TestEngine_Analyze_UnknownStrategy(t *testing.T) {
	e := strategy.NewEngine()

	_, err := e.Analyze(core.StrategyCoveredCall, strategy.Request{})
	if !errors.Is(err, core.ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
}

func TestEngine_Analyze_PropagatesError(t *testing.T) {
	e := strategy.NewEngine()
	e.Register(core.StrategyCoveredCall, &stubAnalyzer{err: core.ErrInsufficientShares})

	_, err := e.Analyze(core.StrategyCoveredCall, strategy.Request{})
	if !errors.Is(err, core.ErrInsufficientShares) {
		t.Errorf("expected ErrInsufficientShares, got %v", err)
	}
}

func TestNewPosition_CashSecuredPut(t *testing.T) {
	a := &strategy.Analysis{
		Symbol:     "XYZ",
		Strategy:   core.StrategyCashSecuredPut,
		Contracts:  2,
		Strike:     50,
		Premium:    1.2,
		Expiration: now.AddDate(0, 0, 35),
		StockPrice: 52,
	}

	p := strategy.NewPosition(a, now)

	if p.ID != "csp_XYZ_1748822400" {
		t.Errorf("unexpected id: %s", p.ID)
	}
	if p.Status != position.StatusOpen {
		t.Errorf("draft must start open, got %s", p.Status)
	}
	if p.CashRequired != 10000 {
		t.Errorf("expected cash required 10000, got %.2f", p.CashRequired)
	}
	if p.EntryDate != now {
		t.Error("entry date should be the draft time")
	}
	if err := p.Validate(); err != nil {
		t.Errorf("draft should validate: %v", err)
	}
}

func TestNewPosition_CoveredCallNeedsNoCash(t *testing.T) {
	a := &strategy.Analysis{
		Symbol:     "ABC",
		Strategy:   core.StrategyCoveredCall,
		Contracts:  1,
		Strike:     110,
		Premium:    2,
		Expiration: now.AddDate(0, 0, 30),
		StockPrice: 100,
	}

	p := strategy.NewPosition(a, now)

	if p.ID != "cc_ABC_1748822400" {
		t.Errorf("unexpected id: %s", p.ID)
	}
	if p.CashRequired != 0 {
		t.Errorf("covered call requires no collateral, got %.2f", p.CashRequired)
	}
	if p.StockPrice != 100 {
		t.Errorf("entry stock price must be carried, got %.2f", p.StockPrice)
	}
}

func TestRequest_Validate(t *testing.T) {
	valid := strategy.Request{
		Stock:      core.Stock{Symbol: "XYZ", CurrentPrice: 52},
		Quantity:   1,
		Strike:     50,
		Premium:    1.2,
		Expiration: now.AddDate(0, 0, 35),
		Now:        now,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := valid
	bad.Premium = -1
	if !errors.Is(bad.Validate(), core.ErrInvalidContract) {
		t.Error("negative premium should be invalid")
	}
}

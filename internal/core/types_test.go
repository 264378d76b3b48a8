package core

import (
	"testing"
	"time"
)

func TestRecommendationFromScore_Thresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  Recommendation
	}{
		{100, RecommendationBuy},
		{80, RecommendationBuy},
		{79.9, RecommendationConsider},
		{60, RecommendationConsider},
		{59.9, RecommendationWeak},
		{40, RecommendationWeak},
		{39.9, RecommendationAvoid},
		{0, RecommendationAvoid},
	}

	for _, tt := range tests {
		if got := RecommendationFromScore(tt.score); got != tt.want {
			t.Errorf("score %.1f: expected %s, got %s", tt.score, tt.want, got)
		}
	}
}

func TestStrategyType_IsValid(t *testing.T) {
	if !StrategyCashSecuredPut.IsValid() {
		t.Error("cash-secured-put should be valid")
	}
	if !StrategyCoveredCall.IsValid() {
		t.Error("covered-call should be valid")
	}
	if StrategyType("iron-condor").IsValid() {
		t.Error("unknown strategy should be invalid")
	}
}

func TestStrategyType_Prefix(t *testing.T) {
	if StrategyCashSecuredPut.Prefix() != "csp" {
		t.Errorf("expected csp, got %s", StrategyCashSecuredPut.Prefix())
	}
	if StrategyCoveredCall.Prefix() != "cc" {
		t.Errorf("expected cc, got %s", StrategyCoveredCall.Prefix())
	}
}

func TestDaysToExpiration(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if d := DaysToExpiration(now.AddDate(0, 0, 30), now); d != 30 {
		t.Errorf("expected 30, got %d", d)
	}
	if d := DaysToExpiration(now.AddDate(0, 0, -5), now); d != 0 {
		t.Errorf("expired contract should report 0 days, got %d", d)
	}
	if d := DaysToExpiration(now, now); d != 0 {
		t.Errorf("same-day expiration should report 0 days, got %d", d)
	}
}

func TestStock_IsValid(t *testing.T) {
	valid := Stock{Symbol: "AAPL", CurrentPrice: 190.5}
	if !valid.IsValid() {
		t.Error("expected valid stock")
	}

	if (Stock{CurrentPrice: 10}).IsValid() {
		t.Error("stock without symbol should be invalid")
	}
	if (Stock{Symbol: "AAPL"}).IsValid() {
		t.Error("stock without price should be invalid")
	}
}

package domain

import (
	"errors"
	"testing"

	"github.com/joeymizrahi/personal-finance-app/internal/apperrors"
)

func TestComputeSale(t *testing.T) {
	holding := Holding{
		PageID:    "page-1",
		Ticker:    "VOO",
		AccountID: "acc-1",
		Quantity:  10,
		CostBasis: 1000,
	}

	sale, err := ComputeSale(holding, 4, 150, 10)
	if err != nil {
		t.Fatalf("ComputeSale failed: %v", err)
	}

	if sale.AvgCost != 100 {
		t.Errorf("AvgCost = %v, want 100", sale.AvgCost)
	}
	if sale.CostOfShares != 400 {
		t.Errorf("CostOfShares = %v, want 400", sale.CostOfShares)
	}
	if sale.Proceeds != 590 {
		t.Errorf("Proceeds = %v, want 590", sale.Proceeds)
	}
	if sale.RealizedGain != 190 {
		t.Errorf("RealizedGain = %v, want 190", sale.RealizedGain)
	}

	after := sale.After
	if after.Quantity != 6 {
		t.Errorf("After.Quantity = %v, want 6", after.Quantity)
	}
	if after.CostBasis != 600 {
		t.Errorf("After.CostBasis = %v, want 600", after.CostBasis)
	}
	if after.RealizedGain != 190 {
		t.Errorf("After.RealizedGain = %v, want 190", after.RealizedGain)
	}
	if after.Proceeds != 590 {
		t.Errorf("After.Proceeds = %v, want 590", after.Proceeds)
	}
	if after.PageID != "page-1" {
		t.Errorf("After.PageID = %q, want page-1", after.PageID)
	}
}

func TestComputeSale_Accumulates(t *testing.T) {
	holding := Holding{
		Ticker:       "VOO",
		Quantity:     6,
		CostBasis:    600,
		RealizedGain: 190,
		Proceeds:     590,
	}

	sale, err := ComputeSale(holding, 6, 110, 0)
	if err != nil {
		t.Fatalf("ComputeSale failed: %v", err)
	}

	// 6 shares at avg cost 100 sold for 660: gain 60 on top of the prior 190.
	if sale.After.RealizedGain != 250 {
		t.Errorf("After.RealizedGain = %v, want 250", sale.After.RealizedGain)
	}
	if sale.After.Proceeds != 1250 {
		t.Errorf("After.Proceeds = %v, want 1250", sale.After.Proceeds)
	}
	if sale.After.Quantity != 0 || sale.After.CostBasis != 0 {
		t.Errorf("Expected emptied position, got qty=%v basis=%v", sale.After.Quantity, sale.After.CostBasis)
	}
}

func TestComputeSale_Insufficient(t *testing.T) {
	holding := Holding{Ticker: "VOO", Quantity: 3, CostBasis: 300}

	_, err := ComputeSale(holding, 5, 100, 0)

	var insufficient *apperrors.InsufficientHoldingError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Expected InsufficientHoldingError, got %T: %v", err, err)
	}
	if insufficient.Requested != 5 || insufficient.Held != 3 {
		t.Errorf("Expected requested=5 held=3, got requested=%v held=%v",
			insufficient.Requested, insufficient.Held)
	}
}

func TestComputeSale_ZeroQuantityHolding(t *testing.T) {
	// A zero-quantity holding has no average cost; selling zero shares from it
	// must not divide by zero.
	sale, err := ComputeSale(Holding{Ticker: "VOO"}, 0, 100, 0)
	if err != nil {
		t.Fatalf("ComputeSale failed: %v", err)
	}
	if sale.AvgCost != 0 {
		t.Errorf("AvgCost = %v, want 0", sale.AvgCost)
	}
}

func TestTradeCost(t *testing.T) {
	if got := TradeCost(4, 150, 10); got != 610 {
		t.Errorf("TradeCost = %v, want 610", got)
	}
	if got := TradeCost(0.3, 0.1, 0); got != 0.03 {
		t.Errorf("TradeCost = %v, want exact 0.03", got)
	}
}

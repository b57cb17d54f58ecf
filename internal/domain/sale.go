package domain

import (
	"github.com/shopspring/decimal"

	"github.com/joeymizrahi/personal-finance-app/internal/apperrors"
)

// Sale is the outcome of applying a sell to a holding under average-cost-basis
// accounting. After holds the resulting running totals; the holding itself is
// not mutated until the remote patch succeeds.
type Sale struct {
	AvgCost      float64
	CostOfShares float64 // quantity sold × average cost
	Proceeds     float64 // quantity × price − fees
	RealizedGain float64 // proceeds − cost of sold shares
	After        Holding
}

// ComputeSale derives the realized gain of selling quantity shares at
// pricePerShare with the given fees, from the holding's current stored totals.
// The average cost is recomputed at sale time, never stored. Returns
// InsufficientHoldingError when the holding does not cover the quantity.
// Arithmetic runs in decimals so running totals do not drift across repeated
// float subtraction.
func ComputeSale(h Holding, quantity, pricePerShare, fees float64) (Sale, error) {
	if quantity > h.Quantity {
		return Sale{}, &apperrors.InsufficientHoldingError{
			Ticker:    h.Ticker,
			Requested: quantity,
			Held:      h.Quantity,
		}
	}

	qty := decimal.NewFromFloat(quantity)
	heldQty := decimal.NewFromFloat(h.Quantity)
	costBasis := decimal.NewFromFloat(h.CostBasis)
	price := decimal.NewFromFloat(pricePerShare)
	fee := decimal.NewFromFloat(fees)

	avgCost := decimal.Zero
	if !heldQty.IsZero() {
		avgCost = costBasis.Div(heldQty)
	}

	costOfShares := qty.Mul(avgCost)
	proceeds := qty.Mul(price).Sub(fee)
	gain := proceeds.Sub(costOfShares)

	return Sale{
		AvgCost:      avgCost.InexactFloat64(),
		CostOfShares: costOfShares.InexactFloat64(),
		Proceeds:     proceeds.InexactFloat64(),
		RealizedGain: gain.InexactFloat64(),
		After: Holding{
			PageID:       h.PageID,
			Ticker:       h.Ticker,
			AccountID:    h.AccountID,
			Quantity:     heldQty.Sub(qty).InexactFloat64(),
			CostBasis:    costBasis.Sub(costOfShares).InexactFloat64(),
			RealizedGain: decimal.NewFromFloat(h.RealizedGain).Add(gain).InexactFloat64(),
			Proceeds:     decimal.NewFromFloat(h.Proceeds).Add(proceeds).InexactFloat64(),
		},
	}, nil
}

// TradeCost is what a buy adds to the cost basis: quantity × price + fees.
func TradeCost(quantity, pricePerShare, fees float64) float64 {
	return decimal.NewFromFloat(quantity).
		Mul(decimal.NewFromFloat(pricePerShare)).
		Add(decimal.NewFromFloat(fees)).
		InexactFloat64()
}

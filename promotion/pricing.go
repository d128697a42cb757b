package promotion

import (
	"github.com/shopspring/decimal"
)

// StockView is the read-only slice of a price ledger the pricing pipeline
// needs. *ledger.Ledger satisfies it.
type StockView interface {
	// TotalValue returns the gross value of all units.
	TotalValue() decimal.Decimal
	// TotalQuantity returns the number of units.
	TotalQuantity() int
	// CheapestValue returns the combined value of the count cheapest units.
	CheapestValue(count int) decimal.Decimal
}

// NetValue computes the net payable amount for one reference's stock under
// the given active promotions.
//
// The evaluation order is fixed: the buy-N-get-one-free discount applies
// first, making the cheapest unit of each full pack free; the percentage
// discount then applies to the remaining amount, and its minimum threshold is
// compared against that post-bundle amount rather than the gross. Evaluating
// the bundle first lets the two discounts compound instead of the bundle
// masking the percentage threshold.
func NetValue(stock StockView, promos []Promotion) decimal.Decimal {
	net := stock.TotalValue()

	if bundle, ok := findKind(promos, KindBuyNGetOneFree); ok {
		freeCount := stock.TotalQuantity() / bundle.PackSize()
		net = net.Sub(stock.CheapestValue(freeCount))
	}

	if pct, ok := findKind(promos, KindPercentage); ok {
		if net.GreaterThanOrEqual(pct.MinThreshold) {
			net = net.Sub(net.Mul(pct.Percentage).Div(hundred))
		}
	}

	return net
}

// findKind returns the first promotion of the given kind. The registry's
// compatibility rule guarantees at most one per kind for a reference.
func findKind(promos []Promotion, kind Kind) (Promotion, bool) {
	for _, p := range promos {
		if p.Kind == kind {
			return p, true
		}
	}
	return Promotion{}, false
}

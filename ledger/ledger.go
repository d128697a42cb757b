// Package ledger implements a per-reference stock book partitioned by unit
// price. Units bought at different prices live in separate lots, and the book
// keeps its lots ordered from the most expensive to the cheapest so that
// removals always debit the most valuable stock first.
package ledger

import (
	"fmt"
	"sort"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for stock mutation input validation.
var (
	// ErrInvalidPrice is returned when a unit price is zero or negative.
	ErrInvalidPrice = errors.New("price must be greater than zero")
	// ErrInvalidQuantity is returned when a quantity is zero or negative.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
)

// InsufficientStockError indicates a removal asked for more units than the
// ledger currently holds.
type InsufficientStockError struct {
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}

// PriceNotFoundError indicates no lot exists at the requested unit price.
type PriceNotFoundError struct {
	Price decimal.Decimal
}

func (e *PriceNotFoundError) Error() string {
	return fmt.Sprintf("no stock at price %s", e.Price)
}

// Lot is a batch of identical units sharing one unit price.
type Lot struct {
	Price    decimal.Decimal
	Quantity int
}

// Ledger tracks the stock of a single product reference as price lots kept
// sorted by unit price, most expensive first. The zero value is not usable;
// call New.
type Ledger struct {
	// lots is sorted by Price descending and never contains a lot with a
	// non-positive quantity.
	lots []Lot

	// total caches the sum of all lot quantities.
	total int
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{}
}

// AddStock records quantity units bought at the given unit price. Units at a
// price already present merge into the existing lot; otherwise a new lot is
// inserted at its sorted position.
func (l *Ledger) AddStock(price decimal.Decimal, quantity int) error {
	if price.Sign() <= 0 {
		return ErrInvalidPrice
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	// Smallest index whose price is not above the new one; equal price
	// merges, anything lower means we insert here.
	i := sort.Search(len(l.lots), func(i int) bool {
		return !l.lots[i].Price.GreaterThan(price)
	})

	if i < len(l.lots) && l.lots[i].Price.Equal(price) {
		l.lots[i].Quantity += quantity
	} else {
		l.lots = append(l.lots, Lot{})
		copy(l.lots[i+1:], l.lots[i:])
		l.lots[i] = Lot{Price: price, Quantity: quantity}
	}

	l.total += quantity
	return nil
}

// RemoveStock debits quantity units from the ledger, consuming the most
// expensive lots first. A lot is deleted once fully drained; a partially
// consumed lot keeps its price with a reduced quantity.
func (l *Ledger) RemoveStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > l.total {
		return &InsufficientStockError{Requested: quantity, Available: l.total}
	}

	l.total -= quantity

	remaining := quantity
	drained := 0
	for i := range l.lots {
		if remaining < l.lots[i].Quantity {
			l.lots[i].Quantity -= remaining
			remaining = 0
			break
		}
		remaining -= l.lots[i].Quantity
		drained++
		if remaining == 0 {
			break
		}
	}
	if drained > 0 {
		l.lots = append(l.lots[:0], l.lots[drained:]...)
	}
	return nil
}

// TotalQuantity returns the number of units across all lots.
func (l *Ledger) TotalQuantity() int {
	return l.total
}

// TotalValue returns the sum of price times quantity across all lots.
// An empty ledger has a total value of exactly zero.
func (l *Ledger) TotalValue() decimal.Decimal {
	sum := decimal.Zero
	for _, lot := range l.lots {
		sum = sum.Add(lot.Price.Mul(decimal.NewFromInt(int64(lot.Quantity))))
	}
	return sum
}

// QuantityAtPrice returns the quantity held at exactly the given unit price.
// It returns a PriceNotFoundError when no lot exists at that price.
func (l *Ledger) QuantityAtPrice(price decimal.Decimal) (int, error) {
	if price.Sign() <= 0 {
		return 0, ErrInvalidPrice
	}
	for _, lot := range l.lots {
		if lot.Price.Equal(price) {
			return lot.Quantity, nil
		}
	}
	return 0, &PriceNotFoundError{Price: price}
}

// CheapestValue returns the combined value of the count cheapest units in the
// ledger, without mutating it. A count at or above the total quantity yields
// the full total value; a non-positive count yields zero.
func (l *Ledger) CheapestValue(count int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}

	sum := decimal.Zero
	remaining := count
	for i := len(l.lots) - 1; i >= 0 && remaining > 0; i-- {
		lot := l.lots[i]
		take := lot.Quantity
		if take > remaining {
			take = remaining
		}
		sum = sum.Add(lot.Price.Mul(decimal.NewFromInt(int64(take))))
		remaining -= take
	}
	return sum
}

// IsEmpty reports whether the ledger holds no units.
func (l *Ledger) IsEmpty() bool {
	return l.total == 0
}

// Prices returns a snapshot of the distinct unit prices in the ledger,
// most expensive first.
func (l *Ledger) Prices() []decimal.Decimal {
	prices := make([]decimal.Decimal, len(l.lots))
	for i, lot := range l.lots {
		prices[i] = lot.Price
	}
	return prices
}

// Lots returns a snapshot of the ledger's lots, most expensive first.
func (l *Ledger) Lots() []Lot {
	out := make([]Lot, len(l.lots))
	copy(out, l.lots)
	return out
}

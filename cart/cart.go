// Package cart implements a shopping cart whose stock is partitioned by unit
// price per product reference, with composable percentage and
// buy-N-get-one-free promotions layered over the totals.
package cart

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/juniortchinde/pricecart/ledger"
	"github.com/juniortchinde/pricecart/promotion"
)

// ErrEmptyReference is returned when a product reference is empty or blank.
var ErrEmptyReference = errors.New("reference must not be blank")

// UnknownReferenceError indicates an operation addressed a reference that is
// not in the cart.
type UnknownReferenceError struct {
	Reference string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("reference %q is not in the cart", e.Reference)
}

// Option configures a Cart.
type Option func(*Cart)

// WithLogger sets the logger the cart uses for debug-level mutation logging.
// The default is a no-op logger.
func WithLogger(lg *zap.Logger) Option {
	return func(c *Cart) {
		c.lg = lg
	}
}

// Cart holds per-reference price ledgers together with a promotion registry.
// Totals are recomputed from current state on every call; no discount state
// is cached.
//
// A Cart is not safe for concurrent use. Callers sharing one instance across
// goroutines must serialize access themselves.
type Cart struct {
	id       string
	ledgers  map[string]*ledger.Ledger
	registry *promotion.Registry
	lg       *zap.Logger
}

// New creates an empty Cart.
func New(opts ...Option) *Cart {
	c := &Cart{
		id:       uuid.NewString(),
		ledgers:  make(map[string]*ledger.Ledger),
		registry: promotion.NewRegistry(),
		lg:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lg = c.lg.With(zap.String("cart_id", c.id))
	return c
}

// ID returns the cart's unique identifier.
func (c *Cart) ID() string {
	return c.id
}

// AddItem adds quantity units of reference at the given unit price, creating
// the reference's ledger on first use.
func (c *Cart) AddItem(reference string, price decimal.Decimal, quantity int) error {
	if strings.TrimSpace(reference) == "" {
		return ErrEmptyReference
	}

	l, ok := c.ledgers[reference]
	if !ok {
		l = ledger.New()
	}
	if err := l.AddStock(price, quantity); err != nil {
		return err
	}
	c.ledgers[reference] = l

	c.lg.Debug("item added",
		zap.String("reference", reference),
		zap.String("price", price.String()),
		zap.Int("quantity", quantity))
	return nil
}

// RemoveItem removes quantity units of reference, debiting the most expensive
// price lots first. When the reference's ledger empties, its entry is removed
// from the cart.
func (c *Cart) RemoveItem(reference string, quantity int) error {
	l, ok := c.ledgers[reference]
	if !ok {
		return &UnknownReferenceError{Reference: reference}
	}
	if err := l.RemoveStock(quantity); err != nil {
		return err
	}
	if l.IsEmpty() {
		delete(c.ledgers, reference)
	}

	c.lg.Debug("item removed",
		zap.String("reference", reference),
		zap.Int("quantity", quantity))
	return nil
}

// Quantity returns the total number of units of reference across all prices.
func (c *Cart) Quantity(reference string) (int, error) {
	l, ok := c.ledgers[reference]
	if !ok {
		return 0, &UnknownReferenceError{Reference: reference}
	}
	return l.TotalQuantity(), nil
}

// QuantityAtPrice returns the number of units of reference held at exactly
// the given unit price.
func (c *Cart) QuantityAtPrice(reference string, price decimal.Decimal) (int, error) {
	l, ok := c.ledgers[reference]
	if !ok {
		return 0, &UnknownReferenceError{Reference: reference}
	}
	return l.QuantityAtPrice(price)
}

// SubTotal returns price times the quantity of reference held at that price.
func (c *Cart) SubTotal(reference string, price decimal.Decimal) (decimal.Decimal, error) {
	qty, err := c.QuantityAtPrice(reference, price)
	if err != nil {
		return decimal.Zero, err
	}
	return price.Mul(decimal.NewFromInt(int64(qty))), nil
}

// References returns a sorted snapshot of the references currently in the
// cart. Only references with remaining stock appear.
func (c *Cart) References() []string {
	refs := make([]string, 0, len(c.ledgers))
	for ref := range c.ledgers {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// PricesFor returns a snapshot of the distinct unit prices of reference,
// most expensive first.
func (c *Cart) PricesFor(reference string) ([]decimal.Decimal, error) {
	l, ok := c.ledgers[reference]
	if !ok {
		return nil, &UnknownReferenceError{Reference: reference}
	}
	return l.Prices(), nil
}

// IsEmpty reports whether the cart holds no stock at all.
func (c *Cart) IsEmpty() bool {
	return len(c.ledgers) == 0
}

// RegisterPercentagePromo registers a percentage promotion on reference under
// the given code. The promotion discounts percent off the reference's net
// value whenever that value reaches minThreshold; pass decimal.Zero for no
// threshold. Registering an existing code overwrites its definition and
// deactivates it; call ActivatePromo again to apply the new definition.
// Registration alone does not affect totals.
func (c *Cart) RegisterPercentagePromo(code, reference string, percent, minThreshold decimal.Decimal) error {
	p, err := promotion.NewPercentage(code, reference, percent, minThreshold)
	if err != nil {
		return err
	}
	c.registry.Register(p)

	c.lg.Debug("promotion registered",
		zap.String("code", code),
		zap.String("reference", reference),
		zap.String("kind", string(p.Kind)))
	return nil
}

// RegisterBuyNGetOneFree registers a bundle promotion on reference under the
// given code: for every n+1 units, the cheapest one is free. Registration
// alone does not affect totals.
func (c *Cart) RegisterBuyNGetOneFree(code, reference string, n int) error {
	p, err := promotion.NewBuyNGetOneFree(code, reference, n)
	if err != nil {
		return err
	}
	c.registry.Register(p)

	c.lg.Debug("promotion registered",
		zap.String("code", code),
		zap.String("reference", reference),
		zap.String("kind", string(p.Kind)))
	return nil
}

// ActivatePromo activates the promotion registered under code. It returns
// false, without error, when the code is unregistered or when another active
// promotion of the same kind already targets the same reference. Activating
// an already-active code returns true.
func (c *Cart) ActivatePromo(code string) bool {
	ok := c.registry.Activate(code)

	c.lg.Debug("promotion activation",
		zap.String("code", code),
		zap.Bool("activated", ok))
	return ok
}

// DeactivatePromo removes code from the active set, returning false when the
// code was not active.
func (c *Cart) DeactivatePromo(code string) bool {
	ok := c.registry.Deactivate(code)

	c.lg.Debug("promotion deactivation",
		zap.String("code", code),
		zap.Bool("deactivated", ok))
	return ok
}

// TotalAmount returns the cart's net payable amount: for each reference, the
// pricing pipeline applies that reference's active promotions to its ledger,
// and the cart sums the results. The amount is recomputed from scratch on
// every call.
func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for ref, l := range c.ledgers {
		promos := c.registry.ActiveFor(ref)
		total = total.Add(promotion.NetValue(l, promos))
	}
	return total
}

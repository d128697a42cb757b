// Package promotion defines composable discount promotions for a shopping
// cart, the registry that tracks which promotions are active, and the pricing
// pipeline that turns a reference's gross stock value into its net payable
// amount.
package promotion

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Kind enumerates the supported promotion strategies.
type Kind string

const (
	// KindPercentage takes a fixed percent off the net value once it meets
	// a minimum threshold.
	KindPercentage Kind = "percentage"
	// KindBuyNGetOneFree makes the cheapest unit of every pack of n+1 free.
	KindBuyNGetOneFree Kind = "buy_n_get_one_free"
)

// Validation errors for promotion definitions.
var (
	// ErrEmptyCode is returned when a promotion code is empty or blank.
	ErrEmptyCode = errors.New("promotion code must not be blank")
	// ErrEmptyReference is returned when the target reference is empty or blank.
	ErrEmptyReference = errors.New("promotion reference must not be blank")
	// ErrInvalidPercentage is returned when a percentage is outside the open
	// interval (0, 100).
	ErrInvalidPercentage = errors.New("percentage must be strictly between 0 and 100")
	// ErrNegativeThreshold is returned when a minimum threshold is negative.
	ErrNegativeThreshold = errors.New("minimum threshold must not be negative")
	// ErrInvalidBundleSize is returned when a buy-N-get-one-free N is below 1.
	ErrInvalidBundleSize = errors.New("bundle size must be at least 1")
)

var hundred = decimal.NewFromInt(100)

// Promotion is an immutable discount definition targeting one product
// reference. The Kind selects which payload fields are meaningful:
// Percentage and MinThreshold for KindPercentage, BuyN for
// KindBuyNGetOneFree.
type Promotion struct {
	Code      string
	Reference string
	Kind      Kind

	Percentage   decimal.Decimal
	MinThreshold decimal.Decimal

	BuyN int
}

// NewPercentage builds a percentage promotion discounting percent off the net
// value of the given reference whenever that value reaches minThreshold.
// A zero minThreshold means no threshold.
func NewPercentage(code, reference string, percent, minThreshold decimal.Decimal) (Promotion, error) {
	if strings.TrimSpace(code) == "" {
		return Promotion{}, ErrEmptyCode
	}
	if strings.TrimSpace(reference) == "" {
		return Promotion{}, ErrEmptyReference
	}
	if percent.Sign() <= 0 || !percent.LessThan(hundred) {
		return Promotion{}, ErrInvalidPercentage
	}
	if minThreshold.Sign() < 0 {
		return Promotion{}, ErrNegativeThreshold
	}

	return Promotion{
		Code:         code,
		Reference:    reference,
		Kind:         KindPercentage,
		Percentage:   percent,
		MinThreshold: minThreshold,
	}, nil
}

// NewBuyNGetOneFree builds a bundle promotion on the given reference: for
// every n+1 units, the cheapest one is free.
func NewBuyNGetOneFree(code, reference string, n int) (Promotion, error) {
	if strings.TrimSpace(code) == "" {
		return Promotion{}, ErrEmptyCode
	}
	if strings.TrimSpace(reference) == "" {
		return Promotion{}, ErrEmptyReference
	}
	if n < 1 {
		return Promotion{}, ErrInvalidBundleSize
	}

	return Promotion{
		Code:      code,
		Reference: reference,
		Kind:      KindBuyNGetOneFree,
		BuyN:      n,
	}, nil
}

// PackSize returns the number of units forming one bundle, meaningful only
// for KindBuyNGetOneFree.
func (p Promotion) PackSize() int {
	return p.BuyN + 1
}

package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Stock is a listed security. Fields are fixed at construction; use
// NewStock or NewPreferredStock to build one.
type Stock struct {
	name          string
	lastDividend  decimal.Decimal     // pennies
	parValue      decimal.Decimal     // pennies
	fixedDividend decimal.NullDecimal // fraction of par, 0-1
}

// NewStock builds a common stock that pays its last dividend.
func NewStock(name string, lastDividend, parValue decimal.Decimal) (Stock, error) {
	s := Stock{
		name:         strings.TrimSpace(name),
		lastDividend: lastDividend,
		parValue:     parValue,
	}
	if err := s.Validate(); err != nil {
		return Stock{}, err
	}
	return s, nil
}

// NewPreferredStock builds a stock whose dividend is a fixed fraction of
// its par value.
func NewPreferredStock(name string, lastDividend, parValue, fixedDividend decimal.Decimal) (Stock, error) {
	s := Stock{
		name:          strings.TrimSpace(name),
		lastDividend:  lastDividend,
		parValue:      parValue,
		fixedDividend: decimal.NewNullDecimal(fixedDividend),
	}
	if err := s.Validate(); err != nil {
		return Stock{}, err
	}
	return s, nil
}

// Validate checks the listing rules: non-empty name, last dividend >= 0,
// par value > 0 and a fixed dividend, if any, in [0, 1]. A Stock built
// as a zero-value literal fails it.
func (s Stock) Validate() error {
	if s.name == "" {
		return fmt.Errorf("%w: empty stock name", ErrInvalidInput)
	}
	if s.lastDividend.IsNegative() {
		return fmt.Errorf("%w: %s: last dividend %s is negative", ErrInvalidInput, s.name, s.lastDividend)
	}
	if !s.parValue.IsPositive() {
		return fmt.Errorf("%w: %s: par value %s must be positive", ErrInvalidInput, s.name, s.parValue)
	}
	if s.fixedDividend.Valid {
		f := s.fixedDividend.Decimal
		if f.IsNegative() || f.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: %s: fixed dividend %s outside [0, 1]", ErrInvalidInput, s.name, f)
		}
	}
	return nil
}

// Name returns the listing symbol.
func (s Stock) Name() string { return s.name }

// LastDividend returns the last dividend paid, in pennies.
func (s Stock) LastDividend() decimal.Decimal { return s.lastDividend }

// ParValue returns the par value in pennies.
func (s Stock) ParValue() decimal.Decimal { return s.parValue }

// FixedDividend returns the fixed dividend fraction, if the stock has one.
func (s Stock) FixedDividend() (decimal.Decimal, bool) {
	return s.fixedDividend.Decimal, s.fixedDividend.Valid
}

// IsPreferred reports whether the stock pays a fixed dividend.
func (s Stock) IsPreferred() bool { return s.fixedDividend.Valid }

// Dividend is the amount used by the yield and P/E formulas: fixed
// dividend times par for preferred stock, last dividend otherwise.
func (s Stock) Dividend() decimal.Decimal {
	if s.fixedDividend.Valid {
		return s.fixedDividend.Decimal.Mul(s.parValue)
	}
	return s.lastDividend
}

// DividendYield returns Dividend() / price. Price must be positive.
func (s Stock) DividendYield(price decimal.Decimal) (decimal.Decimal, error) {
	if err := checkQuotePrice(price); err != nil {
		return decimal.Zero, err
	}
	return s.Dividend().Div(price), nil
}

// PERatio returns price / Dividend(). A stock that pays no dividend has
// no P/E ratio; that is reported as ok == false, not as an error.
func (s Stock) PERatio(price decimal.Decimal) (ratio decimal.Decimal, ok bool, err error) {
	if err := checkQuotePrice(price); err != nil {
		return decimal.Zero, false, err
	}
	d := s.Dividend()
	if !d.IsPositive() {
		return decimal.Zero, false, nil
	}
	return price.Div(d), true, nil
}

func checkQuotePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidPrice, price)
	}
	return nil
}

func (s Stock) String() string {
	fixed := "none"
	if s.fixedDividend.Valid {
		fixed = s.fixedDividend.Decimal.String()
	}
	return fmt.Sprintf("stock(name=%s, last_dividend=%s, par=%s, fixed_dividend=%s)",
		s.name, s.lastDividend, s.parValue, fixed)
}

package chain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest magnitude an asset amount may hold.
const MaxAmount int64 = 1<<62 - 1

var amountPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

var (
	// ErrInvalidAsset is returned when an asset string cannot be parsed.
	ErrInvalidAsset = errors.New("invalid asset")
	// ErrSymbolMismatch is returned when combining assets of different symbols.
	ErrSymbolMismatch = errors.New("attempt to combine assets with different symbols")
	// ErrAmountOverflow is returned when an operation leaves the representable range.
	ErrAmountOverflow = errors.New("asset amount out of range")
)

// Asset is a fixed-precision token quantity. Amount is expressed in the
// smallest unit of Symbol, so 1.0000 TOK has Amount 10000.
type Asset struct {
	Amount int64
	Symbol Symbol
}

// NewAsset returns an asset of amount base units of symbol.
func NewAsset(amount int64, symbol Symbol) Asset {
	return Asset{Amount: amount, Symbol: symbol}
}

// MustParseAsset is like ParseAsset but panics on malformed input.
func MustParseAsset(s string) Asset {
	a, err := ParseAsset(s)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseAsset parses the "100.0000 TOK" form. The number of digits after the
// decimal point sets the symbol precision.
func ParseAsset(s string) (Asset, error) {
	amountStr, code, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return Asset{}, fmt.Errorf("%w: %q is missing a symbol", ErrInvalidAsset, s)
	}
	code = strings.TrimSpace(code)
	if !amountPattern.MatchString(amountStr) {
		return Asset{}, fmt.Errorf("%w: amount %q is not a plain decimal", ErrInvalidAsset, amountStr)
	}

	var precision int
	if _, frac, hasPoint := strings.Cut(amountStr, "."); hasPoint {
		if frac == "" {
			return Asset{}, fmt.Errorf("%w: %q has an empty fraction", ErrInvalidAsset, s)
		}
		precision = len(frac)
	}
	if precision > MaxPrecision {
		return Asset{}, fmt.Errorf("%w: precision %d exceeds %d", ErrInvalidAsset, precision, MaxPrecision)
	}

	sym, err := NewSymbol(uint8(precision), code)
	if err != nil {
		return Asset{}, err
	}

	d, err := decimal.NewFromString(amountStr)
	if err != nil {
		return Asset{}, fmt.Errorf("%w: amount %q: %v", ErrInvalidAsset, amountStr, err)
	}
	units := d.Shift(int32(precision)).BigInt()
	if !units.IsInt64() {
		return Asset{}, fmt.Errorf("%w: amount %q", ErrAmountOverflow, amountStr)
	}

	a := Asset{Amount: units.Int64(), Symbol: sym}
	if !a.amountInRange() {
		return Asset{}, fmt.Errorf("%w: amount %q", ErrAmountOverflow, amountStr)
	}
	return a, nil
}

// String returns the "100.0000 TOK" form.
func (a Asset) String() string {
	prec := int32(a.Symbol.Precision)
	return decimal.New(a.Amount, -prec).StringFixed(prec) + " " + a.Symbol.Code
}

// IsValid reports whether the amount is in range and the symbol is well formed.
func (a Asset) IsValid() bool {
	return a.amountInRange() && a.Symbol.IsValid()
}

// IsPositive reports whether the amount is strictly greater than zero.
func (a Asset) IsPositive() bool {
	return a.Amount > 0
}

// IsZero reports whether the amount is zero.
func (a Asset) IsZero() bool {
	return a.Amount == 0
}

// Add returns a+b. Both assets must share a symbol.
func (a Asset) Add(b Asset) (Asset, error) {
	if a.Symbol != b.Symbol {
		return Asset{}, fmt.Errorf("%w: %s and %s", ErrSymbolMismatch, a.Symbol, b.Symbol)
	}
	sum := Asset{Amount: a.Amount + b.Amount, Symbol: a.Symbol}
	if !sum.amountInRange() {
		return Asset{}, fmt.Errorf("%w: %s + %s", ErrAmountOverflow, a, b)
	}
	return sum, nil
}

// Sub returns a-b. Both assets must share a symbol.
func (a Asset) Sub(b Asset) (Asset, error) {
	if a.Symbol != b.Symbol {
		return Asset{}, fmt.Errorf("%w: %s and %s", ErrSymbolMismatch, a.Symbol, b.Symbol)
	}
	diff := Asset{Amount: a.Amount - b.Amount, Symbol: a.Symbol}
	if !diff.amountInRange() {
		return Asset{}, fmt.Errorf("%w: %s - %s", ErrAmountOverflow, a, b)
	}
	return diff, nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Asset) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Asset) UnmarshalText(text []byte) error {
	parsed, err := ParseAsset(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// amounts are limited to +/- MaxAmount so that a single Add of two valid
// assets can never wrap int64.
func (a Asset) amountInRange() bool {
	return a.Amount >= -MaxAmount && a.Amount <= MaxAmount
}

package chain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxPrecision is the largest number of decimal places a symbol may carry.
	MaxPrecision = 18

	maxSymbolCodeLength = 7
)

// ErrInvalidSymbol is returned when a symbol code or precision is malformed.
var ErrInvalidSymbol = errors.New("invalid symbol")

// Symbol is a token ticker paired with its decimal precision, e.g. 4,TOK.
type Symbol struct {
	Precision uint8
	Code      string
}

// NewSymbol builds a symbol and validates it.
func NewSymbol(precision uint8, code string) (Symbol, error) {
	s := Symbol{Precision: precision, Code: code}
	if err := s.Validate(); err != nil {
		return Symbol{}, err
	}
	return s, nil
}

// MustSymbol is like NewSymbol but panics on an invalid symbol.
func MustSymbol(precision uint8, code string) Symbol {
	s, err := NewSymbol(precision, code)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks the code is 1-7 upper case letters and the precision is in range.
func (s Symbol) Validate() error {
	if s.Precision > MaxPrecision {
		return fmt.Errorf("%w: precision %d exceeds %d", ErrInvalidSymbol, s.Precision, MaxPrecision)
	}
	if err := validateSymbolCode(s.Code); err != nil {
		return err
	}
	return nil
}

// IsValid reports whether Validate succeeds.
func (s Symbol) IsValid() bool {
	return s.Validate() == nil
}

// String returns the "precision,CODE" form.
func (s Symbol) String() string {
	return fmt.Sprintf("%d,%s", s.Precision, s.Code)
}

// MarshalText implements encoding.TextMarshaler.
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Symbol) UnmarshalText(text []byte) error {
	parsed, err := ParseSymbol(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSymbol parses the "precision,CODE" form.
func ParseSymbol(str string) (Symbol, error) {
	precStr, code, ok := strings.Cut(strings.TrimSpace(str), ",")
	if !ok {
		return Symbol{}, fmt.Errorf("%w: %q is not of the form precision,CODE", ErrInvalidSymbol, str)
	}
	prec, err := strconv.ParseUint(precStr, 10, 8)
	if err != nil {
		return Symbol{}, fmt.Errorf("%w: precision %q: %v", ErrInvalidSymbol, precStr, err)
	}
	return NewSymbol(uint8(prec), code)
}

func validateSymbolCode(code string) error {
	if code == "" || len(code) > maxSymbolCodeLength {
		return fmt.Errorf("%w: code %q must be 1-%d characters", ErrInvalidSymbol, code, maxSymbolCodeLength)
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return fmt.Errorf("%w: code %q must be upper case letters", ErrInvalidSymbol, code)
		}
	}
	return nil
}

// Package chain holds the account and asset primitives shared by the bridge:
// account names, token symbols and fixed-precision asset quantities.
package chain

import (
	"errors"
	"fmt"
)

const maxNameLength = 12

// ErrInvalidName is returned when an account name is malformed.
var ErrInvalidName = errors.New("invalid account name")

// Name identifies an account: up to 12 characters from a-z, 1-5 and '.'.
type Name string

// String returns the name as a string.
func (n Name) String() string {
	return string(n)
}

// IsEmpty reports whether the name is unset.
func (n Name) IsEmpty() bool {
	return n == ""
}

// Validate checks the character set and length of the name.
func (n Name) Validate() error {
	if n == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if len(n) > maxNameLength {
		return fmt.Errorf("%w: %q longer than %d characters", ErrInvalidName, n, maxNameLength)
	}
	for i := 0; i < len(n); i++ {
		c := n[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '1' && c <= '5':
		case c == '.':
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidName, n, c)
		}
	}
	if n[len(n)-1] == '.' {
		return fmt.Errorf("%w: %q ends with '.'", ErrInvalidName, n)
	}
	return nil
}

// ParseName validates s and returns it as a Name.
func ParseName(s string) (Name, error) {
	n := Name(s)
	if err := n.Validate(); err != nil {
		return "", err
	}
	return n, nil
}

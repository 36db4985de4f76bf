package bridge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chainsafe/icp-token/pkg/chain"
)

// DirectivePrefix marks a native transfer memo as a bridge request.
const DirectivePrefix = "icp "

// Directive is a bridge request carried in a native transfer memo of the
// form "icp <to> <expiration>".
type Directive struct {
	To         chain.Name
	Expiration uint32
}

// ParseDirective extracts a bridge directive from memo. It returns false when
// the memo does not carry one, in which case the transfer is a plain deposit.
// A memo with the prefix but a malformed body is an error.
func ParseDirective(memo string) (Directive, bool, error) {
	rest, ok := strings.CutPrefix(memo, DirectivePrefix)
	if !ok {
		return Directive{}, false, nil
	}

	to, exp, ok := strings.Cut(rest, " ")
	if !ok {
		return Directive{}, true, fmt.Errorf("%w: invalid icp token transfer memo %q", ErrInvalidMemo, memo)
	}

	name, err := chain.ParseName(to)
	if err != nil {
		return Directive{}, true, fmt.Errorf("%w: %w", ErrInvalidMemo, err)
	}

	expiration, err := strconv.ParseUint(exp, 10, 32)
	if err != nil {
		return Directive{}, true, fmt.Errorf("%w: expiration %q: %v", ErrInvalidMemo, exp, err)
	}

	return Directive{To: name, Expiration: uint32(expiration)}, true, nil
}

// ValidateMemo checks memo does not exceed maxBytes.
func ValidateMemo(memo string, maxBytes int) error {
	if len(memo) > maxBytes {
		return fmt.Errorf("%w: memo has more than %d bytes", ErrInvalidMemo, maxBytes)
	}
	return nil
}

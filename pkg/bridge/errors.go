package bridge

import "errors"

// Sentinel errors of the bridge protocol. The service wraps them in
// categorized service errors; callers match them with errors.Is.
var (
	ErrNotConfigured     = errors.New("channel contracts are not configured")
	ErrAlreadyConfigured = errors.New("contracts already exist")
	ErrUnauthorized      = errors.New("missing required authority")
	ErrInvalidMemo       = errors.New("invalid memo")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrSymbolMismatch    = errors.New("symbol precision mismatch")
	ErrTokenNotFound     = errors.New("token with symbol does not exist")
	ErrTokenExists       = errors.New("token with symbol already exists")
	ErrDepositNotFound   = errors.New("no deposit object found")
	ErrAccountNotFound   = errors.New("account does not exist")
	ErrOverdrawn         = errors.New("overdrawn balance")
	ErrSupplyOverflow    = errors.New("quantity exceeds available supply")
	ErrSupplyExceeded    = errors.New("quantity exceeds supply")
	ErrSelfTransfer      = errors.New("cannot transfer to self")
	ErrActionNotFound    = errors.New("outbox action does not exist")
	ErrActionNotFailed   = errors.New("outbox action has not failed")
)

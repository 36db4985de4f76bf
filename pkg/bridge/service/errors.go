package service

import (
	"errors"
	"fmt"

	apperrors "github.com/chainsafe/icp-token/pkg/app/errors"
	"github.com/chainsafe/icp-token/pkg/bridge"
	"github.com/chainsafe/icp-token/pkg/bridgestore"
	"github.com/chainsafe/icp-token/pkg/chain"
)

func unauthorized(err error) error {
	return apperrors.UnAuthorizedError(fmt.Errorf("%w: %w", bridge.ErrUnauthorized, err), err.Error())
}

func invalid(err error, msg string) error {
	return apperrors.BadRequestError(err, msg)
}

func validateName(field string, n chain.Name) error {
	if err := n.Validate(); err != nil {
		return invalid(err, fmt.Sprintf("invalid %s account name %q", field, n))
	}
	return nil
}

// validateQuantity checks q is a valid strictly positive asset. verb names
// the operation in the error message.
func validateQuantity(q chain.Asset, verb string) error {
	if !q.IsValid() {
		return invalid(bridge.ErrInvalidQuantity, "invalid quantity")
	}
	if !q.IsPositive() {
		return invalid(bridge.ErrInvalidQuantity, "must "+verb+" positive quantity")
	}
	return nil
}

func (e *execution) validateMemo(memo string) error {
	if err := bridge.ValidateMemo(memo, e.cfg.MemoMaxBytes); err != nil {
		return invalid(err, fmt.Sprintf("memo has more than %d bytes", e.cfg.MemoMaxBytes))
	}
	return nil
}

// lookupError maps a missing record to a not found service error carrying
// sentinel; other errors are storage failures.
func lookupError(err error, sentinel error, msg string) error {
	if errors.Is(err, bridgestore.ErrNotFound) {
		if sentinel == nil {
			sentinel = err
		}
		return apperrors.ResourceNotFoundError(sentinel, msg)
	}
	return fmt.Errorf("failed to read record: %w", err)
}

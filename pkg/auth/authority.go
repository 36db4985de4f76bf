// Package auth models the caller credential of bridge operations and the JWTs
// that carry it over HTTP.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chainsafe/icp-token/pkg/chain"
)

// DefaultPermission is assumed when a credential names no permission.
const DefaultPermission = "active"

// ErrMissingAuthority is returned when a caller lacks a required authority.
var ErrMissingAuthority = errors.New("missing required authority")

// Authority is the actor@permission a request is signed with.
type Authority struct {
	Actor      chain.Name `json:"actor"`
	Permission string     `json:"permission"`
}

// NewAuthority returns actor@permission, defaulting the permission to active.
func NewAuthority(actor chain.Name, permission string) Authority {
	if permission == "" {
		permission = DefaultPermission
	}
	return Authority{Actor: actor, Permission: permission}
}

// ParseAuthority parses "actor" or "actor@permission".
func ParseAuthority(s string) (Authority, error) {
	actor, perm, _ := strings.Cut(s, "@")
	name, err := chain.ParseName(actor)
	if err != nil {
		return Authority{}, fmt.Errorf("invalid authority %q: %w", s, err)
	}
	return NewAuthority(name, perm), nil
}

func (a Authority) String() string {
	return fmt.Sprintf("%s@%s", a.Actor, a.Permission)
}

// IsZero reports whether no credential is present.
func (a Authority) IsZero() bool {
	return a.Actor.IsEmpty()
}

// RequireAuth checks the caller signed as account with any permission.
func RequireAuth(caller Authority, account chain.Name) error {
	if caller.IsZero() || caller.Actor != account {
		return fmt.Errorf("%w of %s", ErrMissingAuthority, account)
	}
	return nil
}

// RequireAuth2 checks the caller signed as account with exactly permission.
func RequireAuth2(caller Authority, account chain.Name, permission string) error {
	if caller.IsZero() || caller.Actor != account || caller.Permission != permission {
		return fmt.Errorf("%w of %s@%s", ErrMissingAuthority, account, permission)
	}
	return nil
}

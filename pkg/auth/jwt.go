package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chainsafe/icp-token/pkg/chain"
)

// ErrInvalidToken is returned for tokens that fail validation
var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims of a bridge credential. The subject is the actor.
type Claims struct {
	jwt.RegisteredClaims
	Permission string `json:"perm,omitempty"`
}

// Signer issues HS256 tokens
type Signer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewSigner creates a signer for the shared secret
func NewSigner(secret []byte, issuer string) *Signer {
	return &Signer{secret: secret, issuer: issuer, now: time.Now}
}

// Sign issues a token for authority valid for ttl
func (s *Signer) Sign(a Authority, ttl time.Duration) (string, error) {
	if err := a.Actor.Validate(); err != nil {
		return "", err
	}
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.Actor.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Permission: a.Permission,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Validator validates HS256 tokens
type Validator struct {
	secret []byte
	issuer string
}

// NewValidator creates a validator for the shared secret. An empty issuer
// accepts any issuer.
func NewValidator(secret []byte, issuer string) *Validator {
	return &Validator{secret: secret, issuer: issuer}
}

// Validate parses tokenString and returns the authority it carries
func (v *Validator) Validate(tokenString string) (Authority, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := new(Claims)
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return Authority{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	actor, err := chain.ParseName(claims.Subject)
	if err != nil {
		return Authority{}, fmt.Errorf("%w: subject: %w", ErrInvalidToken, err)
	}
	return NewAuthority(actor, claims.Permission), nil
}

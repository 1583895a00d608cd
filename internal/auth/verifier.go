package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken is returned when no bearer token is present.
	ErrMissingToken = errors.New("missing authorization token")

	// ErrInvalidToken is returned when the token does not verify or carries no subject.
	ErrInvalidToken = errors.New("invalid authorization token")
)

// Identity is the caller resolved from a bearer token.
type Identity struct {
	UserID string
	Email  string
}

// Claims are the JWT claims issued by the identity provider.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier resolves HMAC-signed bearer tokens to identities.
type Verifier struct {
	secret string
}

// NewVerifier creates a verifier for tokens signed with the given shared secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

// Verify parses and validates a raw token string, returning the caller identity.
func (v *Verifier) Verify(tokenString string) (Identity, error) {
	if v.secret == "" {
		return Identity{}, ErrInvalidToken
	}
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Identity{}, ErrMissingToken
	}

	claims := Claims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(v.secret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: claims.Subject, Email: claims.Email}, nil
}

// FromBearerHeader extracts and verifies the token in an Authorization header value.
func (v *Verifier) FromBearerHeader(header string) (Identity, error) {
	if header == "" {
		return Identity{}, ErrMissingToken
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return Identity{}, ErrInvalidToken
	}
	return v.Verify(strings.TrimPrefix(header, "Bearer "))
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a context carrying the resolved identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the caller identity if present.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

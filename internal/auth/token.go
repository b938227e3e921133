// ABOUTME: JWT session credential issue and verification
// ABOUTME: Uses HS256 signing with a configured secret, no default permitted

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token errors. Verification failures map to exactly one of these; callers
// collapse all three to an unauthenticated verdict and keep the specific
// kind for logging only.
var (
	ErrMalformedToken = errors.New("malformed token")
	ErrBadSignature   = errors.New("bad token signature")
	ErrExpiredToken   = errors.New("token expired")
)

// MinSecretLength is the minimum accepted signing secret length in bytes.
const MinSecretLength = 32

// DefaultTokenTTL is the credential lifetime used when no TTL is configured.
const DefaultTokenTTL = 24 * time.Hour

// Claims is the payload carried by a session credential.
type Claims struct {
	PrincipalID int64  `json:"uid"`
	Email       string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed stateless session credentials.
// It is pure given its secret: no store or network access, safe for
// concurrent use without synchronization.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service with the given signing secret and
// credential lifetime. A zero ttl selects DefaultTokenTTL. The secret must
// be at least MinSecretLength bytes; there is deliberately no fallback.
func NewTokenService(secret []byte, ttl time.Duration) (*TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("signing secret must be at least %d bytes, got %d", MinSecretLength, len(secret))
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: secret, ttl: ttl}, nil
}

// TTL returns the configured credential lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed credential for the given principal, valid from now
// until now + TTL. Issued credentials are not tracked server-side and
// cannot be revoked before expiry.
func (s *TokenService) Issue(principalID int64, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		PrincipalID: principalID,
		Email:       email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify validates the credential's signature and expiry and returns its
// claims. It fails with ErrMalformedToken, ErrBadSignature, or
// ErrExpiredToken; no other error values escape.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		// Validate the signing method is HS256
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformedToken
		default:
			return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
		}
	}

	if !token.Valid {
		return nil, ErrBadSignature
	}

	if claims.PrincipalID == 0 {
		return nil, fmt.Errorf("%w: missing principal id", ErrMalformedToken)
	}

	return &claims, nil
}

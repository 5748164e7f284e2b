package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for any token that must not authenticate a request:
// bad signature, unexpected algorithm, malformed payload, missing subject or expired.
var ErrInvalidToken = errors.New("invalid token")

// Token is a signed access token together with its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// TokenService issues and verifies HMAC-signed access tokens.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	skew   time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService for the given secret and HMAC algorithm (HS256, HS384 or HS512).
// skew is how far in the future a token's iat may lie before the token is rejected.
func NewTokenService(secret, algorithm string, skew time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &TokenService{
		secret: []byte(secret),
		method: method,
		skew:   skew,
		now:    time.Now,
	}, nil
}

// WithClock replaces the time source. Intended for tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	if now != nil {
		s.now = now
	}
	return s
}

// Issue signs a token for subject that expires ttl from now.
func (s *TokenService) Issue(subject string, ttl time.Duration) (Token, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return Token{Value: signed, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Verify checks the signature and expiry of tokenStr and returns its subject.
// A token is valid only while now < exp; there is no leeway on expiry.
func (s *TokenService) Verify(tokenStr string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	// iat from a peer whose clock runs ahead is tolerated up to skew
	if claims.IssuedAt != nil && claims.IssuedAt.After(s.now().Add(s.skew)) {
		return "", fmt.Errorf("%w: issued in the future", ErrInvalidToken)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}

package auth

import (
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/enums"
)

const defaultLeeway = 30 * time.Second

// JWTManager verifies HS256 access tokens issued by the login service.
// GenerateAccessToken exists for that service's tests and local tooling.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	leeway    time.Duration
	now       func() time.Time
}

type Option func(*JWTManager)

// WithIssuer pins the "iss" claim: tokens from any other issuer are rejected
// and generated tokens carry it.
func WithIssuer(issuer string) Option {
	return func(m *JWTManager) {
		m.issuer = strings.TrimSpace(issuer)
	}
}

// WithLeeway sets the clock skew tolerated on exp and nbf.
func WithLeeway(leeway time.Duration) Option {
	return func(m *JWTManager) {
		if leeway >= 0 {
			m.leeway = leeway
		}
	}
}

type attendeeClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func NewJWTManager(secret string, accessTTL time.Duration, opts ...Option) *JWTManager {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}

	m := &JWTManager{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		leeway:    defaultLeeway,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *JWTManager) GenerateAccessToken(userID, role string) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("jwt secret is empty")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", time.Time{}, fmt.Errorf("access token subject is required")
	}

	issuedAt := m.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(m.accessTTL)
	claims := attendeeClaims{
		Role: string(enums.ParseRole(role)),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseAccessToken returns the subject and role of a valid token. Every
// failure is ErrUnauthorized; the cause is not exposed to callers.
func (m *JWTManager) ParseAccessToken(raw string) (AccessClaims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(m.secret) == 0 {
		return AccessClaims{}, ErrUnauthorized
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(m.leeway),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(m.issuer))
	}

	claims := &attendeeClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (any, error) {
		return m.secret, nil
	}, parserOpts...)
	if err != nil || !token.Valid {
		return AccessClaims{}, ErrUnauthorized
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return AccessClaims{}, ErrUnauthorized
	}

	return AccessClaims{
		UserID:    subject,
		Role:      string(enums.ParseRole(claims.Role)),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Package auth issues and verifies the signed session tokens carried by API
// clients. Tokens are self-contained: identity claims travel in the signed
// payload and no server-side session state exists.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the identity claims embedded in every issued token. All three
// identity fields are required; Verify rejects tokens missing any of them.
// Type distinguishes access tokens from refresh tokens.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	ID    string `json:"id"`
	Type  string `json:"token_type"`
	jwt.RegisteredClaims
}

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenPair is an access token (short-lived) and a refresh token
// (longer-lived), both carrying the same claims.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type JWTManager struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	issuer        string
}

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

func NewJWTManager(secret string, accessExpiry, refreshExpiry time.Duration, issuer string) *JWTManager {
	return &JWTManager{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		issuer:        issuer,
	}
}

// Issue signs an access/refresh token pair for the given identity.
func (m *JWTManager) Issue(email, role, id string) (TokenPair, error) {
	if email == "" || role == "" || id == "" {
		return TokenPair{}, ErrInvalidToken
	}

	access, err := m.sign(email, role, id, tokenTypeAccess, m.accessExpiry)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := m.sign(email, role, id, tokenTypeRefresh, m.refreshExpiry)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (m *JWTManager) sign(email, role, id, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		Role:  role,
		ID:    id,
		Type:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates an access token, returning its claims. Expired
// tokens yield ErrTokenExpired; anything else wrong with the token (bad
// signature, malformed payload, absent identity claims, a refresh token
// presented where an access token belongs) yields ErrInvalidToken.
func (m *JWTManager) Verify(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrMissingToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" || claims.Role == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	if claims.Type != tokenTypeAccess {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TokenFromHeader extracts the bearer token from an Authorization header.
func TokenFromHeader(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(parts[1]), nil
}

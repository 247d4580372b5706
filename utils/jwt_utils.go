package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/romilkhanna/turing-backend/apperrors"
)

const bearerPrefix = "Bearer "

type customerClaims struct {
	CustomerID int `json:"customer_id"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies the customer access tokens.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source, used by tests to move past expiry.
func (m *JWTManager) WithClock(now func() time.Time) *JWTManager {
	m.now = now
	return m
}

func (m *JWTManager) TTL() time.Duration {
	return m.ttl
}

// IssueToken returns a signed token for customerID and how long it stays valid.
func (m *JWTManager) IssueToken(customerID int) (string, time.Duration, error) {
	issuedAt := m.now()
	claims := customerClaims{
		CustomerID: customerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", 0, err
	}
	return token, m.ttl, nil
}

// VerifyCredential checks a "Bearer <token>" credential.
func (m *JWTManager) VerifyCredential(credential string) (int, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" || !strings.HasPrefix(credential, bearerPrefix) {
		return 0, apperrors.Auth(apperrors.ReasonInvalidScheme, "authorization credential must use the Bearer scheme")
	}
	return m.ParseToken(strings.TrimSpace(strings.TrimPrefix(credential, bearerPrefix)))
}

func (m *JWTManager) ParseToken(tokenString string) (int, error) {
	claims := &customerClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, apperrors.Auth(apperrors.ReasonInvalidOrExpired, "access token has expired")
		}
		return 0, apperrors.Auth(apperrors.ReasonInvalidOrExpired, "access token is invalid")
	}
	if claims.CustomerID <= 0 {
		return 0, apperrors.Auth(apperrors.ReasonInvalidOrExpired, "access token is invalid")
	}
	return claims.CustomerID, nil
}

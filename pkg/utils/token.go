package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// AccessClaims are the claims carried by an access token. The registered ID
// (jti) is the id of the session row backing the token.
type AccessClaims struct {
	IsStaff bool `json:"staff"`
	jwt.RegisteredClaims
}

type AccessToken struct {
	Token     string
	SessionID uuid.UUID
	ExpiresAt time.Time
}

// NewAccessToken signs an HS256 token for userID bound to sessionID.
func NewAccessToken(secret string, userID, sessionID uuid.UUID, isStaff bool, now time.Time, ttl time.Duration) (AccessToken, error) {
	exp := now.Add(ttl)
	claims := AccessClaims{
		IsStaff: isStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        sessionID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, fmt.Errorf("sign access token: %w", err)
	}
	return AccessToken{Token: signed, SessionID: sessionID, ExpiresAt: exp}, nil
}

// ParseAccessToken verifies raw at the instant now and returns the user and
// session ids it carries.
func ParseAccessToken(secret, raw string, now time.Time) (userID, sessionID uuid.UUID, err error) {
	claims := &AccessClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !tok.Valid {
		return uuid.Nil, uuid.Nil, ErrInvalidToken
	}

	userID, err = uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, uuid.Nil, ErrInvalidToken
	}
	sessionID, err = uuid.Parse(claims.ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, ErrInvalidToken
	}
	return userID, sessionID, nil
}

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// SessionClaims carries only the user identifier. Role is deliberately not
// embedded; it is re-read from storage on every request so a token can never
// carry a stale role.
type SessionClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed HS256 session token for the given user.
func GenerateToken(secret, userID string, expiry time.Duration) (string, error) {
	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies signature and expiry and returns the embedded user id.
func ParseToken(secret, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

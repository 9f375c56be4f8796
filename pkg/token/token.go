package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by a scorer's access token.
type Claims struct {
	ScorerID uint   `json:"scorer_id"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateJWT mints a signed token for a scorer.
func GenerateJWT(scorerID uint, name string, secret string, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		ScorerID: scorerID,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ValidateJWT parses and verifies a token string, returning its claims.
func ValidateJWT(tokenString string, secret string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token has expired")
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !t.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

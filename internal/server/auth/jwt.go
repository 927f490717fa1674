// Package auth issues and verifies daybook access keys. An access key is an
// HS256 JWT carrying the caller's role; clients send it with every request.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Roles recognised by the service.
const (
	RoleAnon    = "anon"
	RoleService = "service"
)

// Claims are the registered claims plus the caller's role.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// GenerateAccessKey signs a key for role. A zero validity produces a key
// without expiry.
func GenerateAccessKey(role string, secretKey []byte, validityDuration time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   "daybook",
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Role: role,
	}
	if validityDuration != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(validityDuration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseAccessKey validates the key and returns its role.
func ParseAccessKey(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Role == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Role, nil
}

// Package auth issues and parses the bearer tokens the HTTP API runs on.
// Tokens are stateless HS256 JWTs; the only custom claim is the identifier
// of the signed-in identity.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/socialbattery/internal/common"
)

// Claims carries the registered claims plus the identity the token speaks
// for.
type Claims struct {
	jwt.RegisteredClaims
	Identifier string
}

func GenerateToken(identifier string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Identifier: identifier,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GetIdentifierFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.Identifier, nil
}

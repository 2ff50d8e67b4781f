// Package auth mints and verifies the HS256 service tokens that scope every
// store request to an account. This is identity propagation only; session
// issuance lives outside this system.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/plannly/guestsync/internal/common"
)

// Claims carries the standard registered claims plus the calling account id.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string
}

// GenerateToken signs a token naming accountID, valid for validityDuration.
func GenerateToken(accountID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		AccountID: accountID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// AccountIDFromToken verifies tokenString and returns the embedded account id.
func AccountIDFromToken(tokenString string, secretKey []byte) (string, error) {
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

	return claims.AccountID, nil
}

// Package auth mints and verifies the portal's session tokens: HS256 JWTs
// carrying the account id and email, valid for a fixed period from issuance.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/placementportal/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenValidity is the fixed session token lifetime.
const TokenValidity = 7 * 24 * time.Hour

// Claims is the signed claim set: the standard registered claims (iat, exp,
// jti) plus the account id and email.
type Claims struct {
	jwt.RegisteredClaims
	AccountID int64  `json:"id"`
	Email     string `json:"email"`
}

// GenerateToken signs a token for the account that expires validityDuration
// after now. Every token gets a random jti, so two tokens minted in the same
// second still differ.
func GenerateToken(accountID int64, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		AccountID: accountID,
		Email:     email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature, algorithm and expiry of tokenString.
// Expired tokens yield common.ErrTokenExpired; anything else that fails
// verification yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.AccountID <= 0 {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

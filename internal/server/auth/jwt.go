// Package auth implements the token codec: HS256-signed JWTs binding a user
// id to a token purpose. Tokens carry no expiry; revocation is handled by the
// user's stored token list, not by the codec.
package auth

import (
	"github.com/dmitrijs2005/todoserver/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload. RegisteredClaims stays empty so that issuing
// is a pure function of user id, purpose and secret.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"_id"`
	Access string `json:"access"`
}

func GenerateToken(userID string, purpose string, secretKey []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Access: purpose,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and returns the embedded claims.
// Any failure, including a valid signature over an incomplete payload,
// yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	if claims.UserID == "" || claims.Access == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token purposes keep session and verification tokens from being swapped.
const (
	PurposeSession      = "session"
	PurposeVerification = "email_verification"
)

type Claims struct {
	UserID  uint   `json:"user_id"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// GenerateJWT signs a token for userID. jti becomes the registered ID claim.
func GenerateJWT(userID uint, purpose, jti string, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateJWT validates and parses a JWT token issued for purpose
func ValidateJWT(tokenString, purpose, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Purpose != purpose {
		return nil, fmt.Errorf("token issued for %q, not %q", claims.Purpose, purpose)
	}

	return claims, nil
}

package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

const RoleAdmin = "admin"

var ErrJWTSecretMissing = errors.New("jwt secret is not configured")

// GenerateToken creates a signed HS256 token for subject with the given role.
// The token expires after the specified duration.
func GenerateToken(secret, subject, role string, duration time.Duration) (string, error) {
	if secret == "" {
		return "", ErrJWTSecretMissing
	}
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and validates a token string and returns its claims.
func ValidateToken(secret, tokenString string) (jwt.MapClaims, error) {
	if secret == "" {
		return nil, ErrJWTSecretMissing
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

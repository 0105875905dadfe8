package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// JwtIssuer is issuer claim of every access token
const JwtIssuer = "GradLinkUp"

// AccessTokenTTL is lifetime of an access token
const AccessTokenTTL = time.Hour

// ContextClaimsKey is gin context key holding *jwt.RegisteredClaims of the request
const ContextClaimsKey = "claims"

var (
	secretMu  sync.RWMutex
	secretKey []byte
)

// ConfigureSecret set HMAC key used to sign and verify access tokens
func ConfigureSecret(secret string) {
	secretMu.Lock()
	defer secretMu.Unlock()
	secretKey = []byte(secret)
}

func signingKey() ([]byte, error) {
	secretMu.RLock()
	defer secretMu.RUnlock()
	if len(secretKey) == 0 {
		return nil, errors.New("secret key is not configured")
	}
	return secretKey, nil
}

// GenerateStandardToken issue HS256 access token with id as subject
func GenerateStandardToken(id uuid.UUID) (string, error) {
	key, err := signingKey()
	if err != nil {
		return "", err
	}

	now := time.Now()
	generatedAccessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    JwtIssuer,
		Subject:   id.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signedToken, err := generatedAccessToken.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("Failed to sign token: %s", err)
	}

	return signedToken, nil
}

// ValidatedToken parse and verify access token, claims are *jwt.RegisteredClaims
func ValidatedToken(encodeToken string) (*jwt.Token, error) {
	key, err := signingKey()
	if err != nil {
		return nil, err
	}
	return jwt.ParseWithClaims(encodeToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("Invalid token")
		}
		return key, nil
	})
}

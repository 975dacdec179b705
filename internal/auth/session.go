package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims represents the session token claims. The session ID lives in
// the registered JTI claim; there is nothing else to carry, since the
// app has a single shared PIN instead of user accounts.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenExpiry caps the signed token lifetime. The cookie itself is
// browser-session scoped, so in practice sessions end when the browser
// closes.
const TokenExpiry = 7 * 24 * time.Hour

// HashPIN hashes the configured PIN so the plaintext doesn't have to
// be kept around after startup.
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing PIN: %w", err)
	}
	return string(hash), nil
}

// CheckPIN reports whether the submitted PIN matches the hash.
func CheckPIN(hash, submitted string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(submitted)) == nil
}

// GenerateSessionToken creates a signed session token with a fresh
// session ID, returning both.
func GenerateSessionToken(secret string) (token, sessionID string, err error) {
	sessionID, err = generateSessionID()
	if err != nil {
		return "", "", fmt.Errorf("generating session ID: %w", err)
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", "", fmt.Errorf("signing token: %w", err)
	}
	return signed, sessionID, nil
}

// ValidateSessionToken parses and validates a session token, returning
// the session ID.
func ValidateSessionToken(secret, tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return "", fmt.Errorf("invalid token")
	}

	return claims.ID, nil
}

// generateSessionID creates a random session ID.
func generateSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

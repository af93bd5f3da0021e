package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidShareToken = errors.New("sec: invalid share token")

// ShareClaims grants read access to one saved invoice
type ShareClaims struct {
	jwt.RegisteredClaims
	Number string `json:"num"`
}

// IssueShareToken signs an HS256 token for the saved invoice number, valid for ttl
func IssueShareToken(secret []byte, issuer string, number string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("sec: empty share secret")
	}
	jti, err := GenerateOpaqueToken(12)
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := ShareClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   HashHexSHA256(number),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Number: number,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseShareToken verifies signature, algorithm, issuer and expiry, and returns the invoice number
func ParseShareToken(secret []byte, issuer string, signedToken string) (string, error) {
	claims := &ShareClaims{}
	token, err := jwt.ParseWithClaims(signedToken, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidShareToken, err)
	}
	if !token.Valid || claims.Number == "" || claims.Subject != HashHexSHA256(claims.Number) {
		return "", ErrInvalidShareToken
	}
	return claims.Number, nil
}

// GenerateOpaqueToken generates a Base64-encoded, URL-safe, opaque random string
func GenerateOpaqueToken(byteLength int) (string, error) {
	if byteLength <= 0 {
		byteLength = 32 // default 32 bytes (256 bits)
	}
	bytes := make([]byte, byteLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("rand.Read: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func HashHexSHA256(data string) string {
	// SHA256 checksum (digest) of the data
	checksum := sha256.Sum256([]byte(data))
	// hexadecimal encoding
	return hex.EncodeToString(checksum[:])
}

// Package token signs and verifies share links for ads.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalid = errors.New("invalid token")
	ErrExpired = errors.New("token expired")
)

// MaxIDLength bounds the identifiers embedded in a token to keep links short.
const MaxIDLength = 128

// payload structure for encoding/decoding
type payload struct {
	AdID   string `json:"a"`
	UserID string `json:"u"`           // user who shared
	Method string `json:"m,omitempty"` // share or clipboard
	TS     int64  `json:"t"`
}

// Link is the verified content of a share token.
type Link struct {
	AdID     string
	UserID   string
	Method   string
	IssuedAt time.Time
}

func validateIDs(ids map[string]string) error {
	for name, v := range ids {
		if len(v) > MaxIDLength {
			return fmt.Errorf("%s too long: %d chars, max %d", name, len(v), MaxIDLength)
		}
	}
	if ids["ad id"] == "" {
		return fmt.Errorf("ad id cannot be empty")
	}
	return nil
}

// Generate creates a signed share token for adID shared by userID.
func Generate(adID, userID string, secret []byte) (string, error) {
	return GenerateWithMethod(adID, userID, "", secret)
}

// GenerateWithMethod creates a signed share token that also records how the
// link was handed out.
func GenerateWithMethod(adID, userID, method string, secret []byte) (string, error) {
	if err := validateIDs(map[string]string{"ad id": adID, "user id": userID, "method": method}); err != nil {
		return "", fmt.Errorf("share token validation failed: %w", err)
	}

	pl := payload{
		AdID:   adID,
		UserID: userID,
		Method: method,
		TS:     time.Now().Unix(),
	}
	data, err := json.Marshal(pl)
	if err != nil {
		return "", err
	}

	enc := base64.RawURLEncoding
	return enc.EncodeToString(data) + "." + enc.EncodeToString(sign(data, secret)), nil
}

func sign(data, secret []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(data)
	return mac.Sum(nil)
}

// Verify checks the token integrity and expiry. A ttl of zero disables the
// expiry check.
func Verify(token string, secret []byte, ttl time.Duration) (Link, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return Link{}, ErrInvalid
	}
	enc := base64.RawURLEncoding
	data, err := enc.DecodeString(parts[0])
	if err != nil {
		return Link{}, ErrInvalid
	}
	sig, err := enc.DecodeString(parts[1])
	if err != nil {
		return Link{}, ErrInvalid
	}
	if !hmac.Equal(sign(data, secret), sig) {
		return Link{}, ErrInvalid
	}

	var pl payload
	if err := json.Unmarshal(data, &pl); err != nil || pl.AdID == "" {
		return Link{}, ErrInvalid
	}
	issued := time.Unix(pl.TS, 0)
	if ttl > 0 && time.Since(issued) > ttl {
		return Link{}, ErrExpired
	}
	return Link{
		AdID:     pl.AdID,
		UserID:   pl.UserID,
		Method:   pl.Method,
		IssuedAt: issued,
	}, nil
}

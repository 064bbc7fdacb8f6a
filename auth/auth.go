// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingAuthHeader   = errors.New("missing authorization header")
	ErrMalformedAuthHeader = errors.New("malformed authorization header")
	ErrInvalidToken        = errors.New("invalid token")
	ErrExpiredToken        = errors.New("token expired")
)

// User is the identity carried by a verified bearer token.
type User struct {
	ID    string
	Email string
}

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// IssueToken creates a signed bearer token for a user.
// Format: base64url(userID \n email \n expiryUnix) "." base64url(HMAC-SHA256).
func IssueToken(userID, email string, ttl time.Duration, secret string) string {
	exp := time.Now().Add(ttl).Unix()
	payload := userID + "\n" + email + "\n" + strconv.FormatInt(exp, 10)
	sig := signPayload(payload, secret)
	return encode([]byte(payload)) + "." + encode(sig)
}

// VerifyToken checks the token signature and expiry and returns the user.
func VerifyToken(token, secret string) (User, error) {
	payloadPart, sigPart, ok := strings.Cut(token, ".")
	if !ok {
		return User{}, ErrInvalidToken
	}

	payload, err := decode(payloadPart)
	if err != nil {
		return User{}, ErrInvalidToken
	}
	sig, err := decode(sigPart)
	if err != nil {
		return User{}, ErrInvalidToken
	}

	expected := signPayload(string(payload), secret)
	if !hmac.Equal(sig, expected) {
		return User{}, ErrInvalidToken
	}

	parts := strings.Split(string(payload), "\n")
	if len(parts) != 3 {
		return User{}, ErrInvalidToken
	}

	exp, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return User{}, ErrInvalidToken
	}
	if time.Now().Unix() > exp {
		return User{}, ErrExpiredToken
	}

	return User{ID: parts[0], Email: parts[1]}, nil
}

// UserFromRequest extracts and verifies the bearer token on a request.
// Every returned error maps to HTTP 401 at the handler boundary.
func UserFromRequest(r *http.Request, secret string) (User, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return User{}, ErrMissingAuthHeader
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return User{}, ErrMalformedAuthHeader
	}

	return VerifyToken(token, secret)
}

// GenerateShareCode creates a short, deterministic URL code for a session
// Uses HMAC for determinism and base62 encoding for URL-friendliness
func GenerateShareCode(sessionID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(sessionID))
	sum := h.Sum(nil)

	// Take first 8 bytes for a shorter code
	shortHash := sum[:8]

	// Convert to base62 (alphanumeric only, no special chars)
	return base62Encode(shortHash)
}

func signPayload(payload, secret string) []byte {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(payload))
	return h.Sum(nil)
}

func encode(b []byte) string {
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "=")
}

func decode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}

// base62Encode converts bytes to base62 (0-9, a-z, A-Z)
// This creates URL-friendly codes without special characters
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// Convert bytes to a big integer
	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	// Convert to base62
	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	// Reverse the string
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}

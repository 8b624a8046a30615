package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
)

// Encoding selects how the raw HMAC sum is rendered.
type Encoding int

const (
	// Hex renders the sum as lowercase hex.
	Hex Encoding = iota
	// Base64 renders the sum as standard padded base64.
	Base64
)

// HMACSHA256 computes HMAC-SHA256 digests with a fixed secret.
type HMACSHA256 struct {
	secret   []byte
	encoding Encoding
}

// NewHMACSHA256 creates a hex-encoding hasher.
func NewHMACSHA256(secret string) *HMACSHA256 {
	return &HMACSHA256{secret: []byte(secret), encoding: Hex}
}

// NewHMACSHA256Base64 creates a base64-encoding hasher.
func NewHMACSHA256Base64(secret string) *HMACSHA256 {
	return &HMACSHA256{secret: []byte(secret), encoding: Base64}
}

// Hash returns the encoded digest of str.
func (s *HMACSHA256) Hash(str string) ([]byte, error) {
	return s.gen(str), nil
}

// String is Hash without the error, for call sites that build request fields.
func (s *HMACSHA256) String(str string) string {
	return string(s.gen(str))
}

// Verify checks whether hashed is the digest of str.
func (s *HMACSHA256) Verify(hashed, str string) bool {
	return subtle.ConstantTimeCompare([]byte(hashed), s.gen(str)) == 1
}

func (s *HMACSHA256) gen(str string) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(str))
	sum := h.Sum(nil)

	if s.encoding == Base64 {
		out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
		base64.StdEncoding.Encode(out, sum)
		return out
	}

	out := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(out, sum)
	return out
}

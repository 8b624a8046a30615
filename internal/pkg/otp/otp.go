package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"io"
	"math/big"
	"strconv"
)

// Generator produces one-time codes.
type Generator interface {
	Generate() (string, error)
}

// Numeric draws codes of a fixed number of digits, uniformly over
// [10^(digits-1), 10^digits - 1], so codes never start with zero.
type Numeric struct {
	low  *big.Int
	span *big.Int
	rand io.Reader
}

// NewNumeric returns a Numeric generator backed by crypto/rand. Digits outside
// 4..10 fall back to 6.
func NewNumeric(digits int) *Numeric {
	if digits < 4 || digits > 10 {
		digits = 6
	}

	low := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits-1)), nil)
	high := new(big.Int).Mul(low, big.NewInt(10))

	return &Numeric{
		low:  low,
		span: new(big.Int).Sub(high, low),
		rand: rand.Reader,
	}
}

// Generate returns a fresh code.
func (n *Numeric) Generate() (string, error) {
	v, err := rand.Int(n.rand, n.span)
	if err != nil {
		return "", err
	}

	return v.Add(v, n.low).String(), nil
}

// Equal reports whether submitted is exactly expected. It is case-sensitive
// and does no trimming; only the timing differs from ==.
func Equal(expected, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(submitted)) == 1
}

// IsCode reports whether s is exactly digits ASCII digits.
func IsCode(s string, digits int) bool {
	if len(s) != digits {
		return false
	}
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

package otp

import (
	"bytes"
	"strconv"
	"testing"
)

func TestNumericGenerate(t *testing.T) {
	gen := NewNumeric(6)

	for i := 0; i < 2000; i++ {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 characters", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d out of range", n)
		}
	}
}

func TestNumericGenerateReaderError(t *testing.T) {
	// Arrange
	gen := NewNumeric(6)
	gen.rand = bytes.NewReader(nil)

	// Act
	_, err := gen.Generate()

	// Assert
	if err == nil {
		t.Fatalf("expected error from exhausted reader")
	}
}

func TestNewNumericFallsBackToSixDigits(t *testing.T) {
	code, err := NewNumeric(1).Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("len = %d, want 6", len(code))
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		expected  string
		submitted string
		want      bool
	}{
		{"481290", "481290", true},
		{"481290", "481291", false},
		{"481290", " 481290", false},
		{"481290", "48129", false},
		{"", "", true},
		{"AbC", "abc", false},
	}

	for _, tt := range tests {
		if got := Equal(tt.expected, tt.submitted); got != tt.want {
			t.Fatalf("Equal(%q, %q) = %v, want %v", tt.expected, tt.submitted, got, tt.want)
		}
	}
}

func TestIsCode(t *testing.T) {
	if !IsCode("012345", 6) {
		t.Fatalf("leading zero should still be a code")
	}
	for _, bad := range []string{"12345", "1234567", "12a456", "+12345", ""} {
		if IsCode(bad, 6) {
			t.Fatalf("IsCode(%q) should be false", bad)
		}
	}
}

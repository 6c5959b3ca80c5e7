package helpers

import (
	"strings"
	"testing"
)

func TestGenerateBookingCode(t *testing.T) {
	code := GenerateBookingCode()
	if len(code) != bookingCodeLength {
		t.Fatalf("length: got %d, want %d", len(code), bookingCodeLength)
	}
	for _, ch := range code {
		if !strings.ContainsRune(codeAlphabet, ch) {
			t.Errorf("unexpected character %q in code %s", ch, code)
		}
	}
}

func TestGenerateBookingCodeDistinct(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		code := GenerateBookingCode()
		if seen[code] {
			t.Fatalf("duplicate code %s after %d generations", code, i)
		}
		seen[code] = true
	}
}

package helpers

import "crypto/rand"

// Uppercase alphabet without lookalike characters, safe to read aloud.
// 32 characters, so a random byte maps onto it without modulo bias.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const bookingCodeLength = 10

func randomCode(n int) string {
	b := make([]byte, n)
	// crypto/rand.Read cannot fail on supported platforms.
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b)
}

// GenerateBookingCode returns a human-shareable code for a placed bet
// or a saved betslip. Uniqueness is enforced by the bet table's unique
// index for placed bets and by set-if-absent writes for saved slips.
func GenerateBookingCode() string {
	return randomCode(bookingCodeLength)
}

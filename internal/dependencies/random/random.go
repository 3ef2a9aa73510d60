package random

import "crypto/rand"

// Random provides random byte generation that can be mocked for testing
type Random interface {
	// Bytes returns n random bytes
	Bytes(n int) []byte
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Bytes returns n cryptographically random bytes
func (r *CryptoRandom) Bytes(n int) []byte {
	b := make([]byte, n)
	// crypto/rand.Read never fails on supported platforms
	_, _ = rand.Read(b)
	return b
}

package mocks

import (
	"github.com/playerbase/playerbase/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// BytesResults is a queue of results to return from Bytes
	BytesResults [][]byte
	bytesIndex   int
	callCount    int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Bytes returns the next queued result, padded or truncated to n bytes.
// If nothing is queued it returns n copies of a per-call counter, so
// successive unqueued calls still yield distinct values.
func (r *MockRandom) Bytes(n int) []byte {
	out := make([]byte, n)
	if r.bytesIndex < len(r.BytesResults) {
		copy(out, r.BytesResults[r.bytesIndex])
		r.bytesIndex++
		return out
	}
	r.callCount++
	for i := range out {
		out[i] = byte(r.callCount)
	}
	return out
}

// QueueBytes adds values to the Bytes result queue
func (r *MockRandom) QueueBytes(values ...[]byte) {
	r.BytesResults = append(r.BytesResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.BytesResults = nil
	r.bytesIndex = 0
	r.callCount = 0
}

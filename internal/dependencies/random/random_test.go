package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededSourceIsReproducible(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(7), b.Intn(7))
	}
	assert.Equal(t, uint64(42), a.Seed())
}

func TestIntnRange(t *testing.T) {
	r := New()
	counts := make([]int, 7)
	for i := 0; i < 7000; i++ {
		n := r.Intn(7)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 7)
		counts[n]++
	}
	for kind, count := range counts {
		assert.Positive(t, count, "value %d never drawn", kind)
	}
	assert.Equal(t, 0, r.Intn(0))
}

func TestString(t *testing.T) {
	r := NewSeeded(1)
	s := r.String(12, "AB")
	assert.Len(t, s, 12)
	for _, c := range s {
		assert.Contains(t, "AB", string(c))
	}
	assert.Empty(t, r.String(0, "AB"))
	assert.Empty(t, r.String(5, ""))
}

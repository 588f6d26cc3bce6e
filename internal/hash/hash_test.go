package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, Sum([]byte(tt.data)))
		})
	}
}

func TestFingerprint(t *testing.T) {
	base := NewFingerprint("layout").Int(4).Ints([]int{0, 1, 2}).Sum64()

	t.Run("deterministic", func(t *testing.T) {
		require.Equal(t, base, NewFingerprint("layout").Int(4).Ints([]int{0, 1, 2}).Sum64())
	})

	t.Run("order sensitive", func(t *testing.T) {
		require.NotEqual(t, base, NewFingerprint("layout").Int(4).Ints([]int{2, 1, 0}).Sum64())
	})

	t.Run("domain separated", func(t *testing.T) {
		require.NotEqual(t, base, NewFingerprint("schedule").Int(4).Ints([]int{0, 1, 2}).Sum64())
	})

	t.Run("length prefixed", func(t *testing.T) {
		a := NewFingerprint("x").Ints([]int{1}).Ints([]int{2, 3}).Sum64()
		b := NewFingerprint("x").Ints([]int{1, 2}).Ints([]int{3}).Sum64()
		require.NotEqual(t, a, b)
	})
}

func BenchmarkFingerprint(b *testing.B) {
	support := make([]int, 64)
	for i := range support {
		support[i] = i
	}
	b.ResetTimer()
	for b.Loop() {
		NewFingerprint("layout").Int(62).Ints(support).Sum64()
	}
}

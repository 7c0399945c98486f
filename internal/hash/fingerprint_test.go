package hash

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
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
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestFingerprint_Ints(t *testing.T) {
	a := Fingerprint([]int64{1, 2, 3})
	b := Fingerprint([]int64{1, 2, 3})
	c := Fingerprint([]int64{1, 2, 4})

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.NotEqual(t, a, Fingerprint([]int64{3, 2, 1}))
}

func TestFingerprint_Time(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	keys := []time.Time{base, base.Add(time.Second)}
	shifted := []time.Time{base, base.Add(2 * time.Second)}

	require.Equal(t, Fingerprint(keys), Fingerprint([]time.Time{base, base.Add(time.Second)}))
	require.NotEqual(t, Fingerprint(keys), Fingerprint(shifted))
}

func TestFingerprint_Strings(t *testing.T) {
	// the separator keeps ["ab", "c"] and ["a", "bc"] apart
	require.NotEqual(t, Fingerprint([]string{"ab", "c"}), Fingerprint([]string{"a", "bc"}))
}

func TestFingerprint_Fallback(t *testing.T) {
	type key struct{ A, B int }

	require.Equal(t, Fingerprint([]key{{1, 2}}), Fingerprint([]key{{1, 2}}))
	require.NotEqual(t, Fingerprint([]key{{1, 2}}), Fingerprint([]key{{2, 1}}))
}

func BenchmarkFingerprint(b *testing.B) {
	keys := make([]int64, 1024)
	for i := range keys {
		keys[i] = int64(i) * 1000
	}

	b.ResetTimer()
	for b.Loop() {
		Fingerprint(keys)
	}
}

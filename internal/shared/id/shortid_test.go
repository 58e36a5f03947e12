package id

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Length(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		expected int
	}{
		{"default length for zero", 0, DefaultLength},
		{"default length for negative", -3, DefaultLength},
		{"explicit length 8", 8, 8},
		{"explicit length 12", 12, 12},
		{"long token", 64, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.length)
			require.NoError(t, err)
			assert.Len(t, got, tt.expected)
		})
	}
}

func TestGenerate_Alphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		got, err := Generate(16)
		require.NoError(t, err)
		for _, r := range got {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q in %q", r, got)
		}
	}
}

func TestGenerate_ConcurrentUniqueness(t *testing.T) {
	const n = 10000

	var mu sync.Mutex
	seen := make(map[string]struct{}, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Generate(DefaultLength)
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			seen[got] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n, "concurrent generation produced collisions")
}

func TestMustGenerate(t *testing.T) {
	assert.Len(t, MustGenerate(10), 10)
}

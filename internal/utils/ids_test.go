package utils

import (
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDFormat(t *testing.T) {
	id := NewID(PrefixWallet)

	require.True(t, strings.HasPrefix(id, "WLT-"))
	millis, err := strconv.ParseInt(strings.TrimPrefix(id, "WLT-"), 10, 64)
	require.NoError(t, err)
	assert.Greater(t, millis, int64(0))
}

func TestNewIDStrictlyIncreasing(t *testing.T) {
	// Generating faster than the clock ticks forces the collision path.
	prev := NewID(PrefixTransaction)
	for i := 0; i < 1000; i++ {
		next := NewID(PrefixTransaction)
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestNewIDConcurrentUniqueness(t *testing.T) {
	const goroutines = 8
	const perGoroutine = 200

	var mu sync.Mutex
	seen := make(map[string]struct{}, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				id := NewID(PrefixGoal)
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, goroutines*perGoroutine)
}

package unittest

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// RequireReturnsBefore requires that the given function returns before the
// duration expires.
func RequireReturnsBefore(t testing.TB, f func(), duration time.Duration) {
	done := make(chan struct{})

	go func() {
		f()
		close(done)
	}()

	select {
	case <-time.After(duration):
		require.Fail(t, "function did not return in time")
	case <-done:
		return
	}
}

// RequireConcurrentCallsReturnBefore runs f(0) to f(count-1) in their own
// goroutines and requires all of them to return before the duration expires.
func RequireConcurrentCallsReturnBefore(t testing.TB, f func(i int), count int, duration time.Duration) {
	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func(i int) {
			defer wg.Done()
			f(i)
		}(i)
	}

	RequireReturnsBefore(t, wg.Wait, duration)
}

// Package leaktest fails tests that leave goroutines running
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// settle is how long Track waits for goroutines to wind down before failing
const settle = time.Second

// Track records the current goroutine count and, when the test finishes,
// fails it if more than tolerance extra goroutines are still alive.
// Register it before anything that starts goroutines so it runs last.
func Track(t testing.TB, tolerance int) {
	t.Helper()
	runtime.Gosched()
	before := runtime.NumGoroutine()

	t.Cleanup(func() {
		deadline := time.Now().Add(settle)
		var after int
		for {
			runtime.GC()
			after = runtime.NumGoroutine()
			if after-before <= tolerance || time.Now().After(deadline) {
				break
			}
			time.Sleep(10 * time.Millisecond)
		}
		if leaked := after - before; leaked > tolerance {
			t.Errorf("goroutine leak: before=%d after=%d leaked=%d (tolerance=%d)", before, after, leaked, tolerance)
		}
	})
}

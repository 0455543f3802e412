package ratelimit

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestForAPIKey(t *testing.T) {
	t.Run("with key allows 10 req/sec", func(t *testing.T) {
		l := ForAPIKey(true)
		assert.Equal(t, IntervalWithKey, l.Interval())
	})

	t.Run("without key allows 3 req/sec", func(t *testing.T) {
		l := ForAPIKey(false)
		assert.Equal(t, IntervalAnon, l.Interval())
	})
}

func TestAcquireSpacing(t *testing.T) {
	const (
		interval = 20 * time.Millisecond
		callers  = 8
	)

	l := New(interval)
	ctx := context.Background()

	var mu sync.Mutex
	grants := make([]time.Time, 0, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, l.Acquire(ctx))
			mu.Lock()
			grants = append(grants, time.Now())
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, grants, callers)
	sort.Slice(grants, func(i, j int) bool { return grants[i].Before(grants[j]) })

	// Timer granularity can shave a little off the observed gap; the
	// reservation itself is exact.
	const slack = 5 * time.Millisecond
	for i := 1; i < len(grants); i++ {
		gap := grants[i].Sub(grants[i-1])
		assert.GreaterOrEqual(t, gap, interval-slack,
			"grants %d and %d too close: %v", i-1, i, gap)
	}
}

func TestAcquireFirstCallImmediate(t *testing.T) {
	l := New(time.Second)

	start := time.Now()
	require.NoError(t, l.Acquire(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond,
		"first acquisition should not wait")
}

func TestAcquireContextCancelled(t *testing.T) {
	l := New(time.Hour)
	ctx := context.Background()

	// Consume the immediate slot so the next caller must wait.
	require.NoError(t, l.Acquire(ctx))

	cancelCtx, cancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() {
		errCh <- l.Acquire(cancelCtx)
	}()

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Acquire did not return after context cancellation")
	}
}

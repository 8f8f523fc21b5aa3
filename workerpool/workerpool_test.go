package workerpool_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gettranslated/gettranslated-go/workerpool"
)

func TestSubmitRunsTask(t *testing.T) {
	ctx := context.Background()
	pool, err := workerpool.New(ctx, workerpool.WithCapacity(2))
	require.NoError(t, err)
	defer pool.Shutdown()

	done := make(chan struct{})
	require.NoError(t, pool.Submit(ctx, func() { close(done) }))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}
}

func TestSubmitRejectsCanceledContext(t *testing.T) {
	ctx := context.Background()
	pool, err := workerpool.New(ctx, workerpool.WithCapacity(2))
	require.NoError(t, err)
	defer pool.Shutdown()

	canceled, cancel := context.WithCancel(ctx)
	cancel()

	err = pool.Submit(canceled, func() {
		t.Error("task must not run")
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSaturatedPoolErrorsInsteadOfBlocking(t *testing.T) {
	ctx := context.Background()
	pool, err := workerpool.New(ctx, workerpool.WithCapacity(1))
	require.NoError(t, err)
	defer pool.Shutdown()

	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, pool.Submit(ctx, func() {
		defer wg.Done()
		<-release
	}))

	err = pool.Submit(ctx, func() {})
	require.Error(t, err)

	close(release)
	wg.Wait()
}

func TestPanicHandler(t *testing.T) {
	ctx := context.Background()

	caught := make(chan any, 1)
	pool, err := workerpool.New(ctx,
		workerpool.WithCapacity(1),
		workerpool.WithPanicHandler(func(v any) { caught <- v }),
	)
	require.NoError(t, err)
	defer pool.Shutdown()

	require.NoError(t, pool.Submit(ctx, func() { panic("boom") }))

	select {
	case v := <-caught:
		require.Equal(t, "boom", v)
	case <-time.After(2 * time.Second):
		t.Fatal("panic handler not invoked")
	}
}

func TestSubmitAfterShutdown(t *testing.T) {
	ctx := context.Background()
	pool, err := workerpool.New(ctx, workerpool.WithCapacity(1))
	require.NoError(t, err)

	pool.Shutdown()
	require.Error(t, pool.Submit(ctx, func() {}))
}

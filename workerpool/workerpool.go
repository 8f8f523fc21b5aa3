// Package workerpool wraps an ants pool behind the small interface
// the SDK schedules its background work on: translation fetches, sync
// rounds and fire-and-forget notifications.
package workerpool

import (
	"context"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/pitabwire/util"
)

// Pool runs background tasks for the SDK.
type Pool interface {
	// Submit schedules a task, returning an error if the pool cannot
	// accept it. It never blocks the caller.
	Submit(ctx context.Context, task func()) error

	// Shutdown releases the pool. Pending tasks are abandoned.
	Shutdown()
}

// Options defines configurable options for the worker pool.
type Options struct {
	Capacity       int
	ExpiryDuration time.Duration
	PreAlloc       bool
	PanicHandler   func(any)
	Logger         *util.LogEntry
}

// Option defines a function that configures worker pool options.
type Option func(*Options)

// WithCapacity sets the maximum number of concurrent workers.
func WithCapacity(capacity int) Option {
	return func(opts *Options) {
		opts.Capacity = capacity
	}
}

// WithExpiryDuration sets the expiry duration for idle workers.
func WithExpiryDuration(duration time.Duration) Option {
	return func(opts *Options) {
		opts.ExpiryDuration = duration
	}
}

// WithPreAlloc pre-allocates memory for the pool.
func WithPreAlloc(preAlloc bool) Option {
	return func(opts *Options) {
		opts.PreAlloc = preAlloc
	}
}

// WithPanicHandler sets a panic handler for the pool.
func WithPanicHandler(handler func(any)) Option {
	return func(opts *Options) {
		opts.PanicHandler = handler
	}
}

// WithLogger sets a logger for the pool.
func WithLogger(logger *util.LogEntry) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

const defaultCapacity = 16

// New creates a worker pool.
func New(ctx context.Context, opts ...Option) (Pool, error) {
	wopts := &Options{
		Capacity: defaultCapacity,
		Logger:   util.Log(ctx),
	}
	for _, opt := range opts {
		opt(wopts)
	}

	antsOpts := []ants.Option{
		// Nonblocking so a saturated pool surfaces an error instead of
		// stalling the submitting goroutine.
		ants.WithNonblocking(true),
		ants.WithLogger(wopts.Logger),
	}
	if wopts.ExpiryDuration > 0 {
		antsOpts = append(antsOpts, ants.WithExpiryDuration(wopts.ExpiryDuration))
	}
	if wopts.PreAlloc {
		antsOpts = append(antsOpts, ants.WithPreAlloc(wopts.PreAlloc))
	}
	if wopts.PanicHandler != nil {
		antsOpts = append(antsOpts, ants.WithPanicHandler(wopts.PanicHandler))
	}

	p, err := ants.NewPool(wopts.Capacity, antsOpts...)
	if err != nil {
		return nil, err
	}
	return &poolWrapper{pool: p}, nil
}

// poolWrapper adapts *ants.Pool to the Pool interface.
type poolWrapper struct {
	pool *ants.Pool
}

func (w *poolWrapper) Submit(ctx context.Context, task func()) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	return w.pool.Submit(task)
}

func (w *poolWrapper) Shutdown() {
	w.pool.Release()
}

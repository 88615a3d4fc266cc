// Package batcher groups items into bulk writes flushed by size or age.
package batcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// ErrStopped is returned by Add once the batcher no longer accepts items.
var ErrStopped = errors.New("batcher stopped")

const (
	DefaultFlushSize     = 500
	DefaultFlushInterval = time.Second
	DefaultFlushTimeout  = 30 * time.Second
)

// FlushFunc writes one batch. It must not retain items after returning.
type FlushFunc[T any] func(ctx context.Context, items []T) error

type options struct {
	size     int
	interval time.Duration
	timeout  time.Duration
	rps      int
}

type Option func(*options)

func WithFlushSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.size = n
		}
	}
}

func WithFlushInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithFlushTimeout bounds a single flush call.
func WithFlushTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithRate caps flushes per second. rps <= 0 removes the cap.
func WithRate(rps int) Option {
	return func(o *options) {
		o.rps = rps
	}
}

// Batcher buffers items and flushes them either by size or interval.
// Items still queued when it stops are flushed before Stop returns.
type Batcher[T any] struct {
	flush    FlushFunc[T]
	items    chan T
	size     int
	interval time.Duration
	timeout  time.Duration
	limiter  ratelimit.Limiter
	logger   *zap.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	started   chan struct{}
	stop      chan struct{}
	done      chan struct{}
}

func New[T any](flush FlushFunc[T], logger *zap.Logger, opts ...Option) *Batcher[T] {
	o := options{
		size:     DefaultFlushSize,
		interval: DefaultFlushInterval,
		timeout:  DefaultFlushTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	limiter := ratelimit.NewUnlimited()
	if o.rps > 0 {
		limiter = ratelimit.New(o.rps)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Batcher[T]{
		flush:    flush,
		items:    make(chan T, o.size*2),
		size:     o.size,
		interval: o.interval,
		timeout:  o.timeout,
		limiter:  limiter,
		logger:   logger,
		started:  make(chan struct{}),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the background flushing loop. Canceling ctx stops the batcher
// like Stop does.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.startOnce.Do(func() {
		close(b.started)
		go b.run(ctx)
	})
}

// Stop flushes what is buffered and waits for the loop to exit.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() {
		close(b.stop)
	})
	select {
	case <-b.started:
		<-b.done
	default:
	}
}

// Add queues items, blocking while the queue is full.
func (b *Batcher[T]) Add(ctx context.Context, items ...T) error {
	for _, item := range items {
		select {
		case <-b.stop:
			return ErrStopped
		case <-b.done:
			return ErrStopped
		default:
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-b.stop:
			return ErrStopped
		case <-b.done:
			return ErrStopped
		case b.items <- item:
		}
	}
	return nil
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer close(b.done)

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	// Flushes outlive ctx so a shutdown does not drop the final batch.
	flushCtx := context.WithoutCancel(ctx)
	buf := make([]T, 0, b.size)

	flush := func() {
		if len(buf) == 0 {
			return
		}
		b.limiter.Take()

		fctx, cancel := context.WithTimeout(flushCtx, b.timeout)
		err := b.flush(fctx, buf)
		cancel()
		if err != nil {
			b.logger.Error("batch not flushed", zap.Int("size", len(buf)), zap.Error(err))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = buf[:0]
	}
	drain := func() {
		for {
			select {
			case item := <-b.items:
				buf = append(buf, item)
				if len(buf) >= b.size {
					flush()
				}
			default:
				flush()
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			drain()
			return

		case <-b.stop:
			drain()
			return

		case item := <-b.items:
			buf = append(buf, item)
			if len(buf) >= b.size {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}

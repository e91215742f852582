// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package source

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/distill/core"
)

const (
	defaultFetchTimeout = 30 * time.Second
	defaultRetryDelay   = 500 * time.Millisecond
)

// FetchFunc pulls raw items from an upstream provider. Implementations
// must honor the context.
type FetchFunc func(ctx context.Context) ([]core.RawItem, error)

// Bridge runs blocking provider fetches on a bounded worker pool with a
// per-call timeout, so a stuck upstream never hangs a batch.
type Bridge struct {
	pool        *ants.Pool
	timeout     time.Duration
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// Option configures a Bridge.
type Option func(*Bridge) error

// WithPoolSize sets the worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *Bridge) error {
		if size < 1 {
			size = 1
		}
		if b.pool != nil {
			b.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		b.pool = pool
		return nil
	}
}

// WithTimeout sets the per-fetch timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(b *Bridge) error {
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", timeout)
		}
		b.timeout = timeout
		return nil
	}
}

// WithRetry makes each Fetch re-run a failed fetch with exponential
// backoff. maxAttempts counts the first attempt, so 1 disables retries;
// the wait before each re-attempt doubles starting from baseDelay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(b *Bridge) error {
		if maxAttempts < 1 {
			return ErrInvalidMaxAttempts
		}
		if baseDelay <= 0 {
			baseDelay = defaultRetryDelay
		}
		b.maxAttempts = maxAttempts
		b.baseDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBridge creates a bridge with a bounded worker pool.
func NewBridge(opts ...Option) (*Bridge, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &Bridge{
		pool:        pool,
		timeout:     defaultFetchTimeout,
		maxAttempts: 1,
		baseDelay:   defaultRetryDelay,
		logger:      slog.Default().With("component", "source-bridge"),
	}

	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}
	return b, nil
}

type fetchResult struct {
	items []core.RawItem
	err   error
}

// Fetch runs fn on the worker pool and waits for it to finish or for the
// per-call timeout to pass. A timed-out fetch returns ErrFetchTimeout;
// the abandoned worker still sees its context cancelled. When the bridge
// was built with WithRetry, a failed or timed-out fetch is re-attempted
// with exponential backoff and the timeout applies per attempt.
func (b *Bridge) Fetch(ctx context.Context, fn FetchFunc) ([]core.RawItem, error) {
	if fn == nil {
		return nil, ErrNilFetch
	}
	if b.pool.IsClosed() {
		return nil, ErrBridgeReleased
	}

	var items []core.RawItem
	attempt := 0
	err := RetryWithBackoff(ctx, func() error {
		attempt++
		var fetchErr error
		items, fetchErr = b.fetchOnce(ctx, fn)
		if fetchErr != nil && attempt < b.maxAttempts {
			b.logger.Debug("fetch failed, will retry",
				"attempt", attempt, "maxAttempts", b.maxAttempts, "error", fetchErr)
		}
		return fetchErr
	}, b.maxAttempts, b.baseDelay)
	return items, err
}

func (b *Bridge) fetchOnce(ctx context.Context, fn FetchFunc) ([]core.RawItem, error) {
	if b.pool.IsClosed() {
		return nil, ErrBridgeReleased
	}

	fetchCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	results := make(chan fetchResult, 1)
	err := b.pool.Submit(func() {
		items, err := fn(fetchCtx)
		results <- fetchResult{items: items, err: err}
	})
	if err != nil {
		if err == ants.ErrPoolClosed {
			return nil, ErrBridgeReleased
		}
		return nil, err
	}

	select {
	case result := <-results:
		return result.items, result.err
	case <-fetchCtx.Done():
		if ctx.Err() != nil {
			// Caller cancellation, not our timeout.
			return nil, ctx.Err()
		}
		b.logger.Warn("fetch exceeded timeout", "timeout", b.timeout)
		return nil, fmt.Errorf("%w after %v", ErrFetchTimeout, b.timeout)
	}
}

// Release shuts down the worker pool. Pending fetches fail with
// ErrBridgeReleased.
func (b *Bridge) Release() {
	b.pool.Release()
}

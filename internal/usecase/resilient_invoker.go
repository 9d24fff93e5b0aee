package usecase

import (
	"context"
	"math/rand/v2"
	"nenmatch/internal/domain/entity"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxRetries is the number of attempts made when none is configured.
const DefaultMaxRetries = 3

// Operation is one attempt at an external generation call. Returning a nil
// payload with a nil error signals a null result.
type Operation[T any] func(ctx context.Context) (*T, error)

// ResilientInvoker drives an Operation through a bounded, sequential retry
// loop. It keeps no state between calls and is safe for concurrent use.
type ResilientInvoker struct {
	maxRetries int
	baseDelay  time.Duration // zero means retry immediately
	logger     *zap.Logger
}

type InvokerOption func(*ResilientInvoker)

// WithMaxRetries sets the total number of attempts. Values below 1 are ignored.
func WithMaxRetries(n int) InvokerOption {
	return func(r *ResilientInvoker) {
		if n >= 1 {
			r.maxRetries = n
		}
	}
}

// WithBaseDelay enables exponential backoff with jitter between attempts.
func WithBaseDelay(d time.Duration) InvokerOption {
	return func(r *ResilientInvoker) {
		if d > 0 {
			r.baseDelay = d
		}
	}
}

func WithLogger(l *zap.Logger) InvokerOption {
	return func(r *ResilientInvoker) {
		if l != nil {
			r.logger = l
		}
	}
}

func NewResilientInvoker(opts ...InvokerOption) *ResilientInvoker {
	r := &ResilientInvoker{
		maxRetries: DefaultMaxRetries,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.Named("invoker")
	return r
}

// MaxRetries reports the configured attempt budget.
func (r *ResilientInvoker) MaxRetries() int {
	return r.maxRetries
}

// Invoke runs op until it yields a payload or the attempt budget is spent.
// Null results and errors both consume an attempt. On exhaustion the returned
// error is an *entity.GenerationExhaustedError carrying the last cause.
// If ctx ends between attempts the loop stops early with ctx.Err() as cause.
func Invoke[T any](ctx context.Context, r *ResilientInvoker, label string, op Operation[T]) (*T, error) {
	var lastErr error
	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		if attempt > 1 {
			if err := r.wait(ctx, attempt-1); err != nil {
				return nil, &entity.GenerationExhaustedError{Attempts: attempt - 1, Cause: err}
			}
		}

		resp, err := op(ctx)
		if err == nil && resp != nil {
			if attempt > 1 {
				r.logger.Info("generation recovered",
					zap.String("label", label),
					zap.Int("attempt", attempt))
			}
			return resp, nil
		}
		if err == nil {
			err = entity.ErrNullResult
		}
		lastErr = err

		r.logger.Warn("generation attempt failed",
			zap.String("label", label),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", r.maxRetries),
			zap.Error(err))
	}

	r.logger.Error("generation exhausted",
		zap.String("label", label),
		zap.Int("attempts", r.maxRetries),
		zap.Error(lastErr))
	return nil, &entity.GenerationExhaustedError{Attempts: r.maxRetries, Cause: lastErr}
}

// wait blocks for the backoff of the given completed attempt count, or
// returns the context error if ctx is done.
func (r *ResilientInvoker) wait(ctx context.Context, completed int) error {
	if r.baseDelay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(r.calculateBackoff(completed - 1)):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *ResilientInvoker) calculateBackoff(attempt int) time.Duration {
	backoff := float64(r.baseDelay) * float64(int(1)<<attempt)
	jitter := (rand.Float64() * 0.2) * backoff // 20% jitter
	return time.Duration(backoff + jitter)
}

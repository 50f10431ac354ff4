package backoff

import (
	"context"
	"errors"
	"math"
	"time"
)

var ErrExhausted = errors.New("backoff attempts exhausted")

type BackoffStrategy interface {
	GetBackoffDuration(int, time.Duration, time.Duration) time.Duration
}

// Backoff sleeps for a growing duration between attempts, capped at limit when limit > 0
type Backoff struct {
	LastDuration time.Duration
	NextDuration time.Duration
	start        time.Duration
	limit        time.Duration
	count        int
	strategy     BackoffStrategy
}

func NewBackoff(strategy BackoffStrategy, start time.Duration, limit time.Duration) *Backoff {
	backoff := Backoff{strategy: strategy, start: start, limit: limit}
	backoff.Reset()
	return &backoff
}

func (b *Backoff) Reset() {
	b.count = 0
	b.LastDuration = 0
	b.NextDuration = b.getNextDuration()
}

// Attempts is the number of completed Backoff calls since the last Reset
func (b *Backoff) Attempts() int {
	return b.count
}

// Backoff blocks for NextDuration, returns ctx.Err() if ctx ends first
func (b *Backoff) Backoff(ctx context.Context) error {
	sleepCtx, cancelSleep := context.WithTimeout(ctx, b.NextDuration)
	<-sleepCtx.Done()
	cancelSleep()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	b.count++
	b.LastDuration = b.NextDuration
	b.NextDuration = b.getNextDuration()
	return nil
}

// Poll calls fn until it reports done or fails, backing off in between.
// maxAttempts <= 0 polls until ctx ends.
func (b *Backoff) Poll(ctx context.Context, maxAttempts int, fn func() (bool, error)) error {
	for {
		if err := b.Backoff(ctx); err != nil {
			return err
		}
		done, err := fn()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if maxAttempts > 0 && b.count >= maxAttempts {
			return ErrExhausted
		}
	}
}

func (b *Backoff) getNextDuration() time.Duration {
	backoff := b.strategy.GetBackoffDuration(b.count, b.start, b.LastDuration)
	if b.limit > 0 && backoff > b.limit {
		backoff = b.limit
	}
	return backoff
}

type exponential struct{}

func (exponential) GetBackoffDuration(backoffCount int, start time.Duration, lastBackoff time.Duration) time.Duration {
	period := int64(math.Pow(2, float64(backoffCount)))
	return time.Duration(period) * start
}

func NewExponential(start time.Duration, limit time.Duration) *Backoff {
	return NewBackoff(exponential{}, start, limit)
}

type linear struct{}

func (linear) GetBackoffDuration(backoffCount int, start time.Duration, lastBackoff time.Duration) time.Duration {
	return time.Duration(backoffCount) * start
}

// NewLinear starts at 0, so the first attempt runs immediately
func NewLinear(start time.Duration, limit time.Duration) *Backoff {
	return NewBackoff(linear{}, start, limit)
}

package backoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLinear(t *testing.T) {
	req := require.New(t)
	b := NewLinear(time.Millisecond, 3*time.Millisecond)
	// first poll is immediate
	req.Equal(time.Duration(0), b.NextDuration)

	expected := []time.Duration{time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond, 3 * time.Millisecond}
	for _, d := range expected {
		req.NoError(b.Backoff(context.Background()))
		req.Equal(d, b.NextDuration)
	}

	b.Reset()
	req.Equal(time.Duration(0), b.NextDuration)
}

func TestExponential(t *testing.T) {
	req := require.New(t)
	b := NewExponential(time.Millisecond, 5*time.Millisecond)
	req.Equal(time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(context.Background()))
	req.Equal(2*time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(context.Background()))
	req.Equal(4*time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(context.Background()))
	req.Equal(5*time.Millisecond, b.NextDuration)
}

func TestBackoff_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := NewLinear(time.Hour, 0)
	b.Reset()
	b.NextDuration = time.Hour
	require.ErrorIs(t, b.Backoff(ctx), context.Canceled)
}

func TestPoll(t *testing.T) {
	req := require.New(t)
	calls := 0
	err := NewLinear(time.Millisecond, time.Millisecond).Poll(context.Background(), 0, func() (bool, error) {
		calls++
		return calls == 3, nil
	})
	req.NoError(err)
	req.Equal(3, calls)
}

func TestPoll_exhausted(t *testing.T) {
	req := require.New(t)
	calls := 0
	err := NewLinear(time.Millisecond, time.Millisecond).Poll(context.Background(), 2, func() (bool, error) {
		calls++
		return false, nil
	})
	req.ErrorIs(err, ErrExhausted)
	req.Equal(2, calls)
}

func TestPoll_fnError(t *testing.T) {
	boom := context.DeadlineExceeded
	err := NewLinear(time.Millisecond, 0).Poll(context.Background(), 0, func() (bool, error) {
		return false, boom
	})
	require.Equal(t, boom, err)
}

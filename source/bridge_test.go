package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/distill/core"
)

func TestBridge_Fetch(t *testing.T) {
	bridge, err := NewBridge(WithPoolSize(2))
	require.NoError(t, err)
	defer bridge.Release()

	want := []core.RawItem{
		&core.Thread{Channel: "general", ThreadID: "1", Messages: []core.Message{{Text: "hi", Author: "U1"}}},
	}

	items, err := bridge.Fetch(context.Background(), func(ctx context.Context) ([]core.RawItem, error) {
		return want, nil
	})
	require.NoError(t, err)
	assert.Equal(t, want, items)
}

func TestBridge_FetchError(t *testing.T) {
	bridge, err := NewBridge()
	require.NoError(t, err)
	defer bridge.Release()

	fetchErr := errors.New("upstream unavailable")
	_, err = bridge.Fetch(context.Background(), func(ctx context.Context) ([]core.RawItem, error) {
		return nil, fetchErr
	})
	assert.ErrorIs(t, err, fetchErr)
}

func TestBridge_FetchTimeout(t *testing.T) {
	bridge, err := NewBridge(WithTimeout(20 * time.Millisecond))
	require.NoError(t, err)
	defer bridge.Release()

	_, err = bridge.Fetch(context.Background(), func(ctx context.Context) ([]core.RawItem, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	assert.ErrorIs(t, err, ErrFetchTimeout)
}

func TestBridge_CallerCancellation(t *testing.T) {
	bridge, err := NewBridge(WithTimeout(time.Minute))
	require.NoError(t, err)
	defer bridge.Release()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err = bridge.Fetch(ctx, func(ctx context.Context) ([]core.RawItem, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrFetchTimeout)
}

func TestBridge_NilFetch(t *testing.T) {
	bridge, err := NewBridge()
	require.NoError(t, err)
	defer bridge.Release()

	_, err = bridge.Fetch(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilFetch)
}

func TestBridge_Released(t *testing.T) {
	bridge, err := NewBridge()
	require.NoError(t, err)
	bridge.Release()

	_, err = bridge.Fetch(context.Background(), func(ctx context.Context) ([]core.RawItem, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrBridgeReleased)
}

func TestBridge_InvalidTimeout(t *testing.T) {
	_, err := NewBridge(WithTimeout(0))
	assert.Error(t, err)
}

func TestBridge_RetryEventualSuccess(t *testing.T) {
	bridge, err := NewBridge(WithRetry(3, time.Millisecond))
	require.NoError(t, err)
	defer bridge.Release()

	want := []core.RawItem{
		&core.Thread{Channel: "general", ThreadID: "1", Messages: []core.Message{{Text: "hi", Author: "U1"}}},
	}

	calls := 0
	items, err := bridge.Fetch(context.Background(), func(ctx context.Context) ([]core.RawItem, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("upstream flaking")
		}
		return want, nil
	})
	require.NoError(t, err)
	assert.Equal(t, want, items)
	assert.Equal(t, 3, calls)
}

func TestBridge_RetryExhausted(t *testing.T) {
	bridge, err := NewBridge(WithRetry(2, time.Millisecond))
	require.NoError(t, err)
	defer bridge.Release()

	fetchErr := errors.New("upstream unavailable")
	calls := 0
	_, err = bridge.Fetch(context.Background(), func(ctx context.Context) ([]core.RawItem, error) {
		calls++
		return nil, fetchErr
	})
	assert.ErrorIs(t, err, fetchErr)
	assert.Equal(t, 2, calls)
}

func TestBridge_InvalidRetry(t *testing.T) {
	_, err := NewBridge(WithRetry(0, time.Millisecond))
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

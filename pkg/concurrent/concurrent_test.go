package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapPreservesOrder(t *testing.T) {
	out, err := Map(context.Background(), []int{1, 2, 3, 4, 5}, 2, func(_ context.Context, _ int, v int) (int, error) {
		return v * v, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 9, 16, 25}, out)
}

func TestMapRespectsWorkerLimit(t *testing.T) {
	var running, peak atomic.Int32
	_, err := Map(context.Background(), Range(32), 3, func(_ context.Context, i int, _ int) (int, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		running.Add(-1)
		return i, nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestMapReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	out, err := Map(context.Background(), Range(10), 1, func(_ context.Context, i int, _ int) (int, error) {
		if i == 4 {
			return 0, boom
		}
		return i, nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, out)
}

func TestRange(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, Range(3))
	assert.Empty(t, Range(0))
}

package database

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentMap(t *testing.T) {
	inputs := []string{"Sch1", "Sch2", "Sch3", "Sch4", "Sch5"}

	for _, concurrency := range []int{-1, 0, 1, 2} {
		var inFlight, maxInFlight atomic.Int32
		outputs, err := ConcurrentMap(context.Background(), inputs, concurrency, func(ctx context.Context, in string) (int, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				m := maxInFlight.Load()
				if n <= m || maxInFlight.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			return len(in) + int(in[3]-'0'), nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{5, 6, 7, 8, 9}, outputs)
		if concurrency >= 0 {
			assert.LessOrEqual(t, maxInFlight.Load(), int32(max(concurrency, 1)))
		}
	}
}

func TestConcurrentMapError(t *testing.T) {
	failure := errors.New("connection refused")
	_, err := ConcurrentMap(context.Background(), []int{1, 2, 3}, 2, func(ctx context.Context, in int) (int, error) {
		if in == 2 {
			return 0, failure
		}
		return in, nil
	})
	assert.ErrorIs(t, err, failure)
}

package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_Ceiling(t *testing.T) {
	q := New[int](3)
	assert.Equal(t, 3, q.Size())

	var active, peak int32
	futures := make([]*Future[int], 0, 20)
	for i := 0; i < 20; i++ {
		i := i
		futures = append(futures, q.Submit(context.Background(), func(context.Context) (int, error) {
			cur := atomic.AddInt32(&active, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if cur <= p || atomic.CompareAndSwapInt32(&peak, p, cur) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&active, -1)
			return i * 10, nil
		}))
	}

	for i, f := range futures {
		v, err := f.Wait()
		require.NoError(t, err)
		assert.Equal(t, i*10, v)
	}
	q.Wait()
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
	assert.Equal(t, int32(3), atomic.LoadInt32(&peak), "all slots used")
}

func TestQueue_FIFO(t *testing.T) {
	q := New[struct{}](1)
	var mu sync.Mutex
	var order []int
	for i := 0; i < 10; i++ {
		i := i
		q.Submit(context.Background(), func(context.Context) (struct{}, error) {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return struct{}{}, nil
		})
	}
	q.Wait()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestQueue_FailureIsolation(t *testing.T) {
	q := New[string](2)
	var calls int32
	futures := make([]*Future[string], 0, 6)
	for i := 0; i < 6; i++ {
		i := i
		futures = append(futures, q.Submit(context.Background(), func(context.Context) (string, error) {
			atomic.AddInt32(&calls, 1)
			switch i {
			case 1:
				return "", errors.New("unit 1 failed")
			case 3:
				panic("unit 3 exploded")
			}
			return fmt.Sprintf("ok-%d", i), nil
		}))
	}

	for i, f := range futures {
		v, err := f.Wait()
		switch i {
		case 1:
			assert.EqualError(t, err, "unit 1 failed")
		case 3:
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unit 3 exploded")
		default:
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("ok-%d", i), v)
		}
	}
	assert.Equal(t, int32(6), atomic.LoadInt32(&calls), "each unit executed exactly once")
}

func TestQueue_CanceledContext(t *testing.T) {
	q := New[int](0)
	assert.Equal(t, 1, q.Size())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	f := q.Submit(ctx, func(context.Context) (int, error) {
		called = true
		return 1, nil
	})
	_, err := f.Wait()
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)

	// queue still usable with a live context
	v, err := q.Submit(context.Background(), func(context.Context) (int, error) { return 42, nil }).Wait()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestQueue_NextStartsWhenSlotFrees(t *testing.T) {
	q := New[int](1)
	release := make(chan struct{})
	first := q.Submit(context.Background(), func(context.Context) (int, error) {
		<-release
		return 1, errors.New("first failed")
	})

	started := make(chan struct{})
	go func() {
		q.Submit(context.Background(), func(context.Context) (int, error) {
			close(started)
			return 2, nil
		})
	}()

	select {
	case <-started:
		t.Fatal("second unit started while the only slot was busy")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("second unit not started after the slot was released")
	}
	_, err := first.Wait()
	assert.EqualError(t, err, "first failed")
}

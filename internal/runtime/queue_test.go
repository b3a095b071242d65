package runtime

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain[T any](t *testing.T, ch <-chan T) []T {
	t.Helper()
	var out []T
	for {
		select {
		case v, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, v)
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for channel close")
			return out
		}
	}
}

func TestQueue_DeliversInOrder(t *testing.T) {
	q := NewQueue[int](10)
	defer q.Close()

	for i := 0; i < 5; i++ {
		require.True(t, q.Push(i))
	}

	for i := 0; i < 5; i++ {
		select {
		case val := <-q.Chan():
			assert.Equal(t, i, val)
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for value %d", i)
		}
	}
}

func TestQueue_FinishDeliversBacklog(t *testing.T) {
	// An unbuffered channel keeps everything in the backlog until read.
	q := NewQueue[string](0)

	q.Push("a")
	q.Push("b")
	q.Push("c")
	q.Finish()

	assert.Equal(t, []string{"a", "b", "c"}, drain(t, q.Chan()))
}

func TestQueue_FinishEmpty(t *testing.T) {
	q := NewQueue[int](1)
	q.Finish()

	assert.Empty(t, drain(t, q.Chan()))
}

func TestQueue_PushAfterFinish(t *testing.T) {
	q := NewQueue[int](10)
	q.Push(1)
	q.Finish()

	assert.False(t, q.Push(2))
	assert.Equal(t, []int{1}, drain(t, q.Chan()))
}

func TestQueue_PushAfterClose(t *testing.T) {
	q := NewQueue[int](10)
	q.Close()

	require.NotPanics(t, func() {
		assert.False(t, q.Push(42))
	})
	drain(t, q.Chan())
}

func TestQueue_CloseWithStalledConsumer(t *testing.T) {
	q := NewQueue[int](0)
	for i := 0; i < 10; i++ {
		q.Push(i)
	}

	// Nobody reads; Close must still release the dispatcher.
	q.Close()

	got := drain(t, q.Chan())
	assert.LessOrEqual(t, len(got), 1)
	assert.Zero(t, q.Len())
}

func TestQueue_MultipleCloses(t *testing.T) {
	q := NewQueue[int](10)
	q.Finish()
	q.Close()

	require.NotPanics(t, func() {
		q.Close()
		q.Finish()
	})
}

func TestQueue_ProducerNeverBlocks(t *testing.T) {
	q := NewQueue[int](1)
	defer q.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			q.Push(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("producer blocked on a slow consumer")
	}
	assert.GreaterOrEqual(t, q.Len(), 998)
}

func TestQueue_ConcurrentPush(t *testing.T) {
	q := NewQueue[int](100)

	numGoroutines := 10
	itemsPerGoroutine := 10

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for g := 0; g < numGoroutines; g++ {
		go func(goroutineID int) {
			defer wg.Done()
			for i := 0; i < itemsPerGoroutine; i++ {
				q.Push(goroutineID*100 + i)
			}
		}(g)
	}
	wg.Wait()
	q.Finish()

	assert.Len(t, drain(t, q.Chan()), numGoroutines*itemsPerGoroutine)
}

func TestQueue_StructType(t *testing.T) {
	type event struct {
		ID   int
		Name string
	}

	q := NewQueue[event](10)
	q.Push(event{ID: 1, Name: "first"})
	q.Push(event{ID: 2, Name: "second"})
	q.Finish()

	assert.Equal(t, []event{{1, "first"}, {2, "second"}}, drain(t, q.Chan()))
}

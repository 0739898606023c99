package event

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEventBus_PublishSubscribe(t *testing.T) {
	bus := NewEventBusWithWorkers(2)
	defer bus.Shutdown()

	received := make(chan ContentChangedPayload, 1)
	bus.Subscribe(ContentChanged, func(payload interface{}) {
		received <- payload.(ContentChangedPayload)
	})

	ok := bus.Publish(ContentChanged, ContentChangedPayload{Slugs: []string{"rag"}, Source: "test"})
	require.True(t, ok)

	select {
	case got := <-received:
		assert.Equal(t, []string{"rag"}, got.Slugs)
		assert.False(t, got.All())
	case <-time.After(time.Second):
		t.Fatal("事件未被处理")
	}
}

func TestEventBus_NoSubscriber(t *testing.T) {
	bus := NewEventBus()
	defer bus.Shutdown()
	assert.True(t, bus.Publish("unknown", nil))
}

func TestEventBus_PanicDoesNotKillWorker(t *testing.T) {
	bus := NewEventBusWithWorkers(1)
	defer bus.Shutdown()

	var calls atomic.Int32
	done := make(chan struct{}, 2)
	bus.Subscribe(ContentChanged, func(payload interface{}) {
		defer func() { done <- struct{}{} }()
		if calls.Add(1) == 1 {
			panic("boom")
		}
	})

	bus.Publish(ContentChanged, ContentChangedPayload{})
	bus.Publish(ContentChanged, ContentChangedPayload{})

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("worker 在 panic 后没有继续处理")
		}
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestEventBus_ShutdownDrainsQueue(t *testing.T) {
	bus := NewEventBusWithWorkers(1)

	var mu sync.Mutex
	count := 0
	bus.Subscribe(ContentChanged, func(payload interface{}) {
		time.Sleep(time.Millisecond)
		mu.Lock()
		count++
		mu.Unlock()
	})
	for i := 0; i < 10; i++ {
		require.True(t, bus.Publish(ContentChanged, ContentChangedPayload{}))
	}

	bus.Shutdown()
	bus.Shutdown()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, count)
	assert.False(t, bus.Publish(ContentChanged, ContentChangedPayload{}), "关闭后发布应失败")
}

func TestContentChangedPayload_All(t *testing.T) {
	assert.True(t, ContentChangedPayload{}.All())
	assert.True(t, ContentChangedPayload{Slugs: []string{}}.All())
	assert.False(t, ContentChangedPayload{Slugs: []string{"a"}}.All())
}

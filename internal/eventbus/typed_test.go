package eventbus

import (
	"context"
	"testing"
	"time"
)

func TestTypedBusPublishSubscribe(t *testing.T) {
	bus := NewTyped[string]()
	ch := bus.Subscribe()
	bus.Publish("hello")
	v := <-ch
	if v != "hello" {
		t.Fatalf("expected hello got %v", v)
	}
	bus.Unsubscribe(ch)
}

func TestTypedBusClose(t *testing.T) {
	bus := NewTyped[int]()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
}

func TestTypedBusUnsubscribeAfterClose(t *testing.T) {
	bus := NewTyped[float64]()
	ch := bus.Subscribe()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(ch)
}

func TestTypedBusDropsWhenFull(t *testing.T) {
	bus := NewTypedWithBuffer[int](2)
	ch := bus.Subscribe()
	for i := 0; i < 5; i++ {
		bus.Publish(i)
	}
	if got := bus.Dropped(); got != 3 {
		t.Fatalf("expected 3 drops got %d", got)
	}
	if v := <-ch; v != 0 {
		t.Fatalf("expected first event 0 got %d", v)
	}
}

func TestTypedBusPublishWait(t *testing.T) {
	bus := NewTypedWithBuffer[int](1)
	ch := bus.Subscribe()
	bus.Publish(1)
	done := make(chan error, 1)
	go func() { done <- bus.PublishWait(context.Background(), 2) }()
	if v := <-ch; v != 1 {
		t.Fatalf("expected 1 got %d", v)
	}
	if v := <-ch; v != 2 {
		t.Fatalf("expected 2 got %d", v)
	}
	if err := <-done; err != nil {
		t.Fatalf("publish wait: %v", err)
	}
	if bus.Dropped() != 0 {
		t.Fatalf("unexpected drops")
	}
}

func TestTypedBusPublishWaitCanceled(t *testing.T) {
	bus := NewTypedWithBuffer[int](1)
	_ = bus.Subscribe()
	bus.Publish(1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := bus.PublishWait(ctx, 2); err == nil {
		t.Fatalf("expected context error")
	}
}

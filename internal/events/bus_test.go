/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package events

import (
	"sync"
	"testing"
)

func TestPublishDelivers(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(EventDispatchCompleted)

	bus.Publish(EventDispatchCompleted, Payload{"scheduled": 3})

	select {
	case payload := <-sub:
		if payload["scheduled"] != 3 {
			t.Fatalf("payload = %v, want scheduled 3", payload)
		}
	default:
		t.Fatal("no payload delivered")
	}
}

func TestPublishDropsWhenSubscriberFull(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(EventDispatchCompleted)

	for i := 0; i < cap(sub)+5; i++ {
		bus.Publish(EventDispatchCompleted, Payload{"n": i})
	}
	if len(sub) != cap(sub) {
		t.Fatalf("buffered = %d, want %d", len(sub), cap(sub))
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(EventDispatchFailed)
	bus.Unsubscribe(EventDispatchFailed, sub)

	if _, ok := <-sub; ok {
		t.Fatal("channel still open after unsubscribe")
	}
	// Publishing after unsubscribe reaches no one and must not panic.
	bus.Publish(EventDispatchFailed, Payload{"error": "late"})
}

func TestPublishRacingUnsubscribe(t *testing.T) {
	bus := NewBus()

	subs := make([]Subscriber, 100)
	for i := range subs {
		subs[i] = bus.Subscribe(EventDispatchCompleted)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			bus.Publish(EventDispatchCompleted, Payload{"n": i})
		}
	}()
	go func() {
		defer wg.Done()
		for _, sub := range subs {
			bus.Unsubscribe(EventDispatchCompleted, sub)
		}
	}()
	wg.Wait()
}

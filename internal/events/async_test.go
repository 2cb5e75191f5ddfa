package events

import (
	"context"
	"sync"
	"testing"
	"time"
)

type captureEmitter struct {
	mu   sync.Mutex
	got  []*Event
	done chan struct{}
}

func (c *captureEmitter) Emit(_ context.Context, ev *Event) error {
	c.mu.Lock()
	c.got = append(c.got, ev)
	c.mu.Unlock()
	c.done <- struct{}{}
	return nil
}

func TestEmitAsyncDeliversEvent(t *testing.T) {
	c := &captureEmitter{done: make(chan struct{}, 1)}
	ev := New(TypeStudentEnrolled)
	ev.Email = "ada@example.com"
	EmitAsync(c, ev)

	select {
	case <-c.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for emit")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.got) != 1 || c.got[0].Email != "ada@example.com" {
		t.Fatalf("got = %+v", c.got)
	}
}

func TestEmitAsyncNilEmitterAndEvent(t *testing.T) {
	EmitAsync(nil, New(TypeLogin))
	EmitAsync(&captureEmitter{done: make(chan struct{}, 1)}, nil)
}

func TestNewStampsSourceAndTime(t *testing.T) {
	ev := New(TypeSignup)
	if ev.EventType != TypeSignup {
		t.Fatalf("eventType = %q", ev.EventType)
	}
	if ev.Source != "learnai-api" {
		t.Fatalf("source = %q", ev.Source)
	}
	if ev.CreatedAt.IsZero() {
		t.Fatal("createdAt not set")
	}
}

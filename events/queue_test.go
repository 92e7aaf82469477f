package events

import (
	"sync"
	"testing"

	"waitris/constants"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	for i := uint64(0); i < 10; i++ {
		q.Push(CommandEvent{Type: EventStart, ID: i})
	}
	got := q.Consume()
	if len(got) != 10 {
		t.Fatalf("Consume returned %d events, want 10", len(got))
	}
	for i, ev := range got {
		if ev.ID != uint64(i) {
			t.Errorf("event %d has ID %d, want %d", i, ev.ID, i)
		}
	}
}

func TestQueueEmptyConsume(t *testing.T) {
	q := NewQueue()
	if got := q.Consume(); got != nil {
		t.Errorf("Consume on empty queue = %v, want nil", got)
	}
}

func TestQueueDrainsCompletely(t *testing.T) {
	q := NewQueue()
	q.Push(CommandEvent{Type: EventStart, ID: 1, Command: "ls"})
	q.Push(CommandEvent{Type: EventEnd, ID: 1})

	first := q.Consume()
	if len(first) != 2 {
		t.Fatalf("first Consume = %d events, want 2", len(first))
	}
	if second := q.Consume(); second != nil {
		t.Errorf("second Consume = %v, want nil", second)
	}
}

func TestQueueOverflowKeepsNewest(t *testing.T) {
	q := NewQueue()
	total := uint64(constants.EventQueueSize + 16)
	for i := uint64(0); i < total; i++ {
		q.Push(CommandEvent{Type: EventStart, ID: i})
	}
	got := q.Consume()
	if len(got) == 0 || len(got) > constants.EventQueueSize {
		t.Fatalf("Consume returned %d events, want at most %d", len(got), constants.EventQueueSize)
	}
	if last := got[len(got)-1].ID; last != total-1 {
		t.Errorf("newest event ID = %d, want %d", last, total-1)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	const producers = 4
	const perProducer = 32

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(CommandEvent{Type: EventStart, ID: uint64(p*perProducer + i)})
			}
		}(p)
	}
	wg.Wait()

	seen := make(map[uint64]bool)
	for _, ev := range q.Consume() {
		if seen[ev.ID] {
			t.Errorf("duplicate event ID %d", ev.ID)
		}
		seen[ev.ID] = true
	}
	if len(seen) != producers*perProducer {
		t.Errorf("consumed %d unique events, want %d", len(seen), producers*perProducer)
	}
}

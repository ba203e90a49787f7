package resource

import (
	"testing"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnResourceEvent(e Event) {
	o.events = append(o.events, e)
}

func TestSlots_Basic(t *testing.T) {
	s := NewSlots[string]()

	h := s.Insert("test")
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := s.Get(h)
	if !ok || val != "test" {
		t.Fatalf("Get = %q, %v", val, ok)
	}
	if !s.Update(h, "renamed") {
		t.Fatal("Update failed")
	}

	val, ok = s.Remove(h)
	if !ok || val != "renamed" {
		t.Fatalf("Remove = %q, %v", val, ok)
	}
	if s.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}
	if _, ok := s.Remove(h); ok {
		t.Fatal("double Remove should fail")
	}
	if _, ok := s.Get(0); ok {
		t.Fatal("handle 0 is never valid")
	}
}

func TestSlots_StaleHandleAfterReuse(t *testing.T) {
	s := NewSlots[int]()

	h1 := s.Insert(1)
	s.Remove(h1)
	h2 := s.Insert(2)

	if h1 == h2 {
		t.Fatal("reused slot must produce a new handle")
	}
	if s.Contains(h1) {
		t.Fatal("stale handle must stay dead after slot reuse")
	}
	if v, ok := s.Get(h2); !ok || v != 2 {
		t.Fatalf("Get(h2) = %d, %v", v, ok)
	}
}

func TestSlots_EachAndClear(t *testing.T) {
	s := NewSlots[int]()
	var handles []uintptr
	for i := 0; i < 5; i++ {
		handles = append(handles, s.Insert(i))
	}
	s.Remove(handles[2])

	sum := 0
	s.Each(func(_ uintptr, v int) bool {
		sum += v
		return true
	})
	if sum != 0+1+3+4 {
		t.Fatalf("sum = %d", sum)
	}

	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Len = %d after Clear", s.Len())
	}
	for _, h := range handles {
		if s.Contains(h) {
			t.Fatal("Clear should invalidate all handles")
		}
	}
	if h := s.Insert(9); s.Len() != 1 || !s.Contains(h) {
		t.Fatal("slots should be reusable after Clear")
	}
}

func TestNotifier(t *testing.T) {
	n := NewNotifier()
	obs := &testObserver{}
	n.Subscribe(obs)

	n.Notify(Event{Type: EventGroupCreated})
	n.Notify(Event{Type: EventGroupDisposed})
	if len(obs.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(obs.events))
	}
	if obs.events[0].Type != EventGroupCreated || obs.events[1].Type != EventGroupDisposed {
		t.Error("events delivered out of order")
	}

	n.Unsubscribe(obs)
	n.Notify(Event{Type: EventGroupSealed})
	if len(obs.events) != 2 {
		t.Error("Unsubscribed observer still receives events")
	}

	var nilNotifier *Notifier
	nilNotifier.Notify(Event{})
	if nilNotifier.Len() != 0 {
		t.Error("nil notifier should have no observers")
	}
}

func TestEventType_String(t *testing.T) {
	if EventPrematureDisposal.String() != "premature_disposal" {
		t.Errorf("String = %q", EventPrematureDisposal.String())
	}
	if EventType(200).String() != "unknown" {
		t.Error("unknown event types should stringify as unknown")
	}
}

func TestNames(t *testing.T) {
	n := NewNames()
	defer n.Release()

	id := Ident{Kind: testMeshes.Tag(), Raw: 1}
	if got := n.NameOrDefault(id); got != "Unnamed Test Mesh" {
		t.Fatalf("default = %q", got)
	}

	n.Store(id, "cube")
	if got, ok := n.Get(id); !ok || got != "cube" {
		t.Fatalf("Get = %q, %v", got, ok)
	}
	n.Store(id, "sphere")
	if got := n.NameOrDefault(id); got != "sphere" {
		t.Fatalf("rename = %q", got)
	}
	if n.Len() != 1 || n.Live() != 1 {
		t.Fatalf("Len=%d Live=%d", n.Len(), n.Live())
	}

	n.Store(id, "")
	if _, ok := n.Get(id); ok {
		t.Fatal("empty name should clear the entry")
	}
	if n.Live() != 0 {
		t.Fatalf("Live = %d, want 0", n.Live())
	}

	n.Store(id, "cone")
	if !n.Free(id) || n.Free(id) {
		t.Fatal("Free should succeed exactly once")
	}
}

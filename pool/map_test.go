package pool

import (
	"errors"
	"fmt"
	"testing"

	rcerrors "github.com/wippyai/resource-core/errors"
)

func TestMap_Basic(t *testing.T) {
	m := NewMap[string, int](nil)
	defer m.Release()

	if err := m.Add("a", 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	v, ok := m.Get("a")
	if !ok || v != 1 {
		t.Fatalf("Get(a) = %d, %v", v, ok)
	}
	if !m.ContainsKey("a") || m.ContainsKey("b") {
		t.Fatal("ContainsKey mismatch")
	}
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}

	if !m.Remove("a") {
		t.Fatal("Remove(a) should succeed")
	}
	if m.Remove("a") {
		t.Fatal("second Remove(a) should report false")
	}
	if _, ok := m.Get("a"); ok {
		t.Fatal("Get after Remove should fail")
	}
	if m.Len() != 0 {
		t.Fatalf("Len = %d, want 0", m.Len())
	}
}

func TestMap_AddRejectsDuplicate(t *testing.T) {
	m := NewMap[string, int](nil)
	defer m.Release()

	_ = m.Add("k", 1)
	err := m.Add("k", 2)
	if !errors.Is(err, rcerrors.ErrDuplicateKey) {
		t.Fatalf("Add duplicate err = %v", err)
	}
	if v, _ := m.Get("k"); v != 1 {
		t.Fatalf("duplicate Add overwrote value: %d", v)
	}

	m.Set("k", 3)
	if v, _ := m.Get("k"); v != 3 {
		t.Fatalf("Set did not upsert: %d", v)
	}
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}
}

func TestMap_ManyKeys(t *testing.T) {
	m := NewMap[int, string](nil)
	defer m.Release()

	const n = 1000
	for i := 0; i < n; i++ {
		m.Set(i, fmt.Sprint(i))
	}
	if m.Len() != n {
		t.Fatalf("Len = %d, want %d", m.Len(), n)
	}
	for i := 0; i < n; i++ {
		v, ok := m.Get(i)
		if !ok || v != fmt.Sprint(i) {
			t.Fatalf("Get(%d) = %q, %v", i, v, ok)
		}
	}

	seen := make(map[int]bool)
	m.Each(func(k int, v string) bool {
		seen[k] = true
		return true
	})
	if len(seen) != n {
		t.Fatalf("Each visited %d keys, want %d", len(seen), n)
	}

	for i := 0; i < n; i += 2 {
		m.Remove(i)
	}
	if m.Len() != n/2 {
		t.Fatalf("Len = %d after removals, want %d", m.Len(), n/2)
	}
	if keys := m.Keys(nil); len(keys) != n/2 {
		t.Fatalf("Keys returned %d keys", len(keys))
	}
}

func TestMap_CustomHashCollisions(t *testing.T) {
	// Every key lands in the same bucket.
	m := NewMap[int, int](func(int) uint64 { return 7 })
	defer m.Release()

	for i := 0; i < 20; i++ {
		if err := m.Add(i, i*i); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 20; i++ {
		if v, ok := m.Get(i); !ok || v != i*i {
			t.Fatalf("Get(%d) = %d, %v", i, v, ok)
		}
	}
}

func TestMap_EachStops(t *testing.T) {
	m := NewMap[int, int](nil)
	defer m.Release()
	for i := 0; i < 10; i++ {
		m.Set(i, i)
	}
	calls := 0
	m.Each(func(int, int) bool {
		calls++
		return false
	})
	if calls != 1 {
		t.Fatalf("Each called fn %d times after false", calls)
	}
}

func TestMap_ClearAndRelease(t *testing.T) {
	m := NewMap[int, int](nil)
	m.Set(1, 1)
	m.Set(2, 2)
	m.Clear()
	if m.Len() != 0 || m.ContainsKey(1) {
		t.Fatal("Clear should remove everything")
	}
	m.Set(3, 3)
	m.Release()
	if m.Len() != 0 || m.ContainsKey(3) {
		t.Fatal("Release should remove everything")
	}
}

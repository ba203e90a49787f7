package pool

import (
	"errors"
	"testing"

	rcerrors "github.com/wippyai/resource-core/errors"
)

func TestArrayPool_RentSizes(t *testing.T) {
	p := NewArrayPool[int]()

	tests := []struct {
		min  int
		want int
	}{
		{0, 1},
		{1, 1},
		{3, 4},
		{4, 4},
		{5, 8},
		{1000, 1024},
	}
	for _, tt := range tests {
		arr := p.Rent(tt.min)
		if len(arr) != tt.want {
			t.Errorf("Rent(%d) len = %d, want %d", tt.min, len(arr), tt.want)
		}
		p.Return(arr, true)
	}
}

func TestArrayPool_ReturnClears(t *testing.T) {
	p := NewArrayPool[*int]()
	arr := p.Rent(4)
	x := 1
	arr[0] = &x
	p.Return(arr, true)
	if arr[0] != nil {
		t.Fatal("Return with clearArray should zero the array")
	}
}

func TestArrayPool_DropsForeignArrays(t *testing.T) {
	p := NewArrayPool[int]()
	// Capacity 3 is not a size class, must be ignored rather than pooled.
	p.Return(make([]int, 3), false)
	if got := len(p.Rent(3)); got != 4 {
		t.Fatalf("Rent(3) len = %d, want 4", got)
	}
}

func TestShared_PerElementType(t *testing.T) {
	if Shared[int]() != Shared[int]() {
		t.Fatal("Shared should return the same pool for the same type")
	}
	a := any(Shared[int]())
	b := any(Shared[string]())
	if a == b {
		t.Fatal("Shared should return distinct pools per type")
	}
}

func TestVector_AddAndGrow(t *testing.T) {
	v := NewVector[int](2)
	defer v.Release()

	for i := 0; i < 9; i++ {
		v.Add(i * 10)
	}
	if v.Len() != 9 {
		t.Fatalf("Len = %d, want 9", v.Len())
	}
	if v.Cap() < 9 {
		t.Fatalf("Cap = %d, want >= 9", v.Cap())
	}
	for i := 0; i < 9; i++ {
		got, err := v.At(i)
		if err != nil {
			t.Fatalf("At(%d): %v", i, err)
		}
		if got != i*10 {
			t.Errorf("At(%d) = %d, want %d", i, got, i*10)
		}
	}
}

func TestVector_Bounds(t *testing.T) {
	v := NewVector[string](4)
	defer v.Release()
	v.Add("a")

	if _, err := v.At(1); !errors.Is(err, rcerrors.ErrOutOfBounds) {
		t.Errorf("At(1) err = %v, want out of bounds", err)
	}
	if _, err := v.At(-1); !errors.Is(err, rcerrors.ErrOutOfBounds) {
		t.Errorf("At(-1) err = %v, want out of bounds", err)
	}
	if err := v.Set(1, "x"); !errors.Is(err, rcerrors.ErrOutOfBounds) {
		t.Errorf("Set(1) err = %v, want out of bounds", err)
	}
	if err := v.RemoveAt(1); !errors.Is(err, rcerrors.ErrOutOfBounds) {
		t.Errorf("RemoveAt(1) err = %v, want out of bounds", err)
	}
	if err := v.Insert(2, "x"); !errors.Is(err, rcerrors.ErrOutOfBounds) {
		t.Errorf("Insert(2) err = %v, want out of bounds", err)
	}
	if v.Len() != 1 {
		t.Fatalf("failed operations changed Len to %d", v.Len())
	}

	var rcErr *rcerrors.Error
	_, err := v.At(5)
	if !errors.As(err, &rcErr) || rcErr.Detail != "index 5 out of bounds (length 1)" {
		t.Errorf("unexpected error detail: %v", err)
	}
}

func TestVector_InsertRemove(t *testing.T) {
	v := NewVector[int](1)
	defer v.Release()

	v.Add(1)
	v.Add(3)
	if err := v.Insert(1, 2); err != nil {
		t.Fatal(err)
	}
	if err := v.Insert(0, 0); err != nil {
		t.Fatal(err)
	}
	if err := v.Insert(v.Len(), 4); err != nil {
		t.Fatal(err)
	}
	want := []int{0, 1, 2, 3, 4}
	got := v.Slice()
	if len(got) != len(want) {
		t.Fatalf("Slice = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Slice = %v, want %v", got, want)
		}
	}

	if err := v.RemoveAt(0); err != nil {
		t.Fatal(err)
	}
	if IndexOf(v, 0) != -1 || IndexOf(v, 3) != 2 {
		t.Fatalf("unexpected contents after RemoveAt: %v", v.Slice())
	}
	if !v.RemoveFunc(func(x int) bool { return x == 3 }) {
		t.Fatal("RemoveFunc should find 3")
	}
	if Contains(v, 3) {
		t.Fatal("3 should be gone")
	}
}

func TestVector_RemoveLast(t *testing.T) {
	v := NewVector[int](4)
	defer v.Release()

	if _, err := v.RemoveLast(); !errors.Is(err, rcerrors.ErrOutOfBounds) {
		t.Fatalf("RemoveLast on empty: %v", err)
	}
	if _, ok := v.TryRemoveLast(); ok {
		t.Fatal("TryRemoveLast on empty should fail")
	}

	v.Add(7)
	v.Add(8)
	got, err := v.RemoveLast()
	if err != nil || got != 8 {
		t.Fatalf("RemoveLast = %d, %v", got, err)
	}
	got, ok := v.TryRemoveLast()
	if !ok || got != 7 {
		t.Fatalf("TryRemoveLast = %d, %v", got, ok)
	}
}

func TestVector_Version(t *testing.T) {
	v := NewVector[int](4)
	defer v.Release()

	start := v.Version()
	v.Add(1)
	afterAdd := v.Version()
	if afterAdd == start {
		t.Fatal("Add should change version")
	}
	_, _ = v.At(0)
	if v.Version() != afterAdd {
		t.Fatal("At should not change version")
	}
	_ = v.Set(0, 2)
	if v.Version() == afterAdd {
		t.Fatal("Set should change version")
	}
}

func TestVector_ReleaseAndReuse(t *testing.T) {
	v := NewVector[int](4)
	v.Add(1)
	v.Release()
	if v.Len() != 0 || v.Cap() != 0 {
		t.Fatalf("after Release Len=%d Cap=%d", v.Len(), v.Cap())
	}
	v.Add(2)
	if got, _ := v.At(0); got != 2 {
		t.Fatalf("At(0) = %d after reuse", got)
	}
	v.Release()
}

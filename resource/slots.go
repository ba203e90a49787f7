package resource

const (
	slotIndexBits = 32
	slotIndexMask = 1<<slotIndexBits - 1
)

// Slots is an in-memory handle allocator for providers. It stores one value
// per live handle and recycles freed slots through a free list.
//
// Raw handles carry a generation in their upper 32 bits, so a handle to a
// freed slot stays dead after the slot is reused. On 32-bit platforms the
// generation is truncated away. Handle 0 is never issued.
type Slots[T any] struct {
	entries  []slot[T]
	freeList []uint32
	live     int
}

type slot[T any] struct {
	value T
	gen   uint32
	valid bool
}

// NewSlots creates an empty allocator.
func NewSlots[T any]() *Slots[T] {
	return &Slots[T]{
		entries:  make([]slot[T], 0, 64),
		freeList: make([]uint32, 0, 16),
	}
}

func packHandle(index, gen uint32) uintptr {
	return uintptr(uint64(gen)<<slotIndexBits | uint64(index+1))
}

func (s *Slots[T]) lookup(raw uintptr) (*slot[T], bool) {
	if raw == 0 {
		return nil, false
	}
	idx := uint64(raw)&slotIndexMask - 1
	if idx >= uint64(len(s.entries)) {
		return nil, false
	}
	e := &s.entries[idx]
	if !e.valid || packHandle(uint32(idx), e.gen) != raw {
		return nil, false
	}
	return e, true
}

// Insert stores value and returns its raw handle.
func (s *Slots[T]) Insert(value T) uintptr {
	s.live++
	if n := len(s.freeList); n > 0 {
		idx := s.freeList[n-1]
		s.freeList = s.freeList[:n-1]
		e := &s.entries[idx]
		e.value = value
		e.valid = true
		return packHandle(idx, e.gen)
	}
	s.entries = append(s.entries, slot[T]{value: value, valid: true})
	return packHandle(uint32(len(s.entries)-1), 0)
}

// Get retrieves the value for raw.
func (s *Slots[T]) Get(raw uintptr) (T, bool) {
	e, ok := s.lookup(raw)
	if !ok {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Update replaces the value stored for raw.
func (s *Slots[T]) Update(raw uintptr, value T) bool {
	e, ok := s.lookup(raw)
	if !ok {
		return false
	}
	e.value = value
	return true
}

// Contains reports whether raw refers to a live slot.
func (s *Slots[T]) Contains(raw uintptr) bool {
	_, ok := s.lookup(raw)
	return ok
}

// Remove frees the slot for raw and returns its value.
func (s *Slots[T]) Remove(raw uintptr) (T, bool) {
	var zero T
	e, ok := s.lookup(raw)
	if !ok {
		return zero, false
	}
	value := e.value
	e.value = zero
	e.valid = false
	e.gen++
	s.live--
	s.freeList = append(s.freeList, uint32(uint64(raw)&slotIndexMask-1))
	return value, true
}

// Len returns the number of live slots.
func (s *Slots[T]) Len() int {
	return s.live
}

// Each iterates over live slots in index order until fn returns false.
func (s *Slots[T]) Each(fn func(uintptr, T) bool) {
	for i := range s.entries {
		e := &s.entries[i]
		if e.valid {
			if !fn(packHandle(uint32(i), e.gen), e.value) {
				return
			}
		}
	}
}

// Clear frees every slot. Outstanding handles become dead.
func (s *Slots[T]) Clear() {
	var zero T
	s.freeList = s.freeList[:0]
	for i := range s.entries {
		e := &s.entries[i]
		if e.valid {
			e.value = zero
			e.valid = false
			e.gen++
		}
		s.freeList = append(s.freeList, uint32(i))
	}
	s.live = 0
}

package pool

// StringPool stores strings in pooled byte arrays.
type StringPool struct {
	bytes *ArrayPool[byte]
	live  int
}

// NewStringPool creates a string pool backed by the shared byte pool.
func NewStringPool() *StringPool {
	return &StringPool{bytes: Shared[byte]()}
}

// RentedString is a string copied into pooled storage. It must be freed
// exactly once with Free.
type RentedString struct {
	pool *StringPool
	buf  []byte
	n    int
}

// Rent copies s into pooled storage.
func (p *StringPool) Rent(s string) RentedString {
	buf := p.bytes.Rent(len(s))
	n := copy(buf, s)
	p.live++
	return RentedString{pool: p, buf: buf, n: n}
}

// Live returns the number of rented strings not yet freed.
func (p *StringPool) Live() int {
	return p.live
}

// String returns a copy of the stored string.
func (r RentedString) String() string {
	return string(r.buf[:r.n])
}

// Len returns the stored string's length in bytes.
func (r RentedString) Len() int {
	return r.n
}

// Valid reports whether r still holds storage.
func (r RentedString) Valid() bool {
	return r.pool != nil
}

// Free returns the storage to the pool.
func (r *RentedString) Free() {
	if r.pool == nil {
		return
	}
	r.pool.bytes.Return(r.buf, false)
	r.pool.live--
	r.pool = nil
	r.buf = nil
	r.n = 0
}

package module

// ring is a fixed-capacity FIFO of float64 samples, index-addressed so that
// a sub-tick push never allocates. Capacity equals the number of physics
// sub-ticks per control period and never changes after construction.
type ring struct {
	buf  []float64
	head int
}

func newRing(depth int, fill float64) *ring {
	r := &ring{buf: make([]float64, depth)}
	for i := range r.buf {
		r.buf[i] = fill
	}
	return r
}

// push drops the oldest sample and appends v as the newest.
func (r *ring) push(v float64) {
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
}

// snapshot copies the samples oldest-first into a fresh slice.
func (r *ring) snapshot() []float64 {
	out := make([]float64, len(r.buf))
	for i := range r.buf {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}

func (r *ring) len() int { return len(r.buf) }

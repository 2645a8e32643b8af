package audio

import "sync"

// Tap is a fixed-size mono ring buffer between the audio callback and the
// analyzer. The callback pushes, the render tick snapshots; both sides are
// bounded and never block.
type Tap struct {
	mu     sync.RWMutex
	buf    []float64
	next   int
	pushed uint64
}

// NewTap creates a tap holding size samples.
func NewTap(size int) *Tap {
	return &Tap{buf: make([]float64, size)}
}

// PushMono appends mono samples, overwriting the oldest on wrap.
func (t *Tap) PushMono(samples []float64) {
	t.mu.Lock()
	for _, s := range samples {
		t.buf[t.next] = s
		t.next++
		if t.next >= len(t.buf) {
			t.next = 0
		}
	}
	t.pushed += uint64(len(samples))
	t.mu.Unlock()
}

// PushInterleaved mixes an interleaved float32 buffer down to mono and
// appends it. channels must be >= 1.
func (t *Tap) PushInterleaved(in []float32, channels int) {
	if channels < 1 {
		return
	}
	t.mu.Lock()
	inv := 1.0 / float64(channels)
	for i := 0; i+channels <= len(in); i += channels {
		var mono float64
		for c := 0; c < channels; c++ {
			mono += float64(in[i+c])
		}
		t.buf[t.next] = mono * inv
		t.next++
		if t.next >= len(t.buf) {
			t.next = 0
		}
		t.pushed++
	}
	t.mu.Unlock()
}

// Snapshot fills dst with the most recent len(dst) samples in chronological
// order. Positions never written remain zero, so a fresh tap reads as
// silence rather than an error.
func (t *Tap) Snapshot(dst []float64) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := len(dst)
	if n > len(t.buf) {
		n = len(t.buf)
	}
	idx := t.next - n
	if idx < 0 {
		idx += len(t.buf)
	}
	for i := 0; i < n; i++ {
		dst[i] = t.buf[idx]
		idx++
		if idx >= len(t.buf) {
			idx = 0
		}
	}
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

// Pushed returns the total number of samples ever pushed. The analyzer uses
// it to detect staleness: an unchanged count means no fresh audio arrived
// since the last tick.
func (t *Tap) Pushed() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pushed
}

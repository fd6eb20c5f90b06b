package bus

import "sync"

// Recorder is a Peripheral that keeps every byte written to it. Tests and
// the console loopback use it in place of real slave hardware.
type Recorder struct {
	mu    sync.Mutex
	bytes []byte
}

func (r *Recorder) WriteByte(b byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bytes = append(r.bytes, b)
	return nil
}

// Bytes returns a copy of everything written so far.
func (r *Recorder) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]byte, len(r.bytes))
	copy(out, r.bytes)
	return out
}

// Reset drops the recorded bytes.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bytes = nil
}

package bus

import (
	"errors"
	"sync"
)

// FrameSize is the receive buffer length, command code byte included.
const FrameSize = 50

// QueueDepth is how many completed frames may wait for the dispatcher.
const QueueDepth = 5

var (
	// ErrFrameOverflow reports a master that kept clocking bytes past the
	// buffer. The frame in progress is dropped rather than wrapped.
	ErrFrameOverflow = errors.New("frame exceeds receive buffer")

	// ErrQueueOverload reports a full frame queue. The slave cannot keep
	// up with the master and stops accepting traffic.
	ErrQueueOverload = errors.New("frame queue overloaded")
)

// Frame is one completed bus command: the code byte plus its custom
// parameter bytes.
type Frame struct {
	buf [FrameSize]byte
	n   int
}

// Code returns the command code byte.
func (f *Frame) Code() uint8 { return f.buf[0] }

// Custom returns the parameter bytes that followed the code.
func (f *Frame) Custom() []byte { return f.buf[1:f.n] }

// Assembler turns the peripheral's byte events into complete frames. The
// descriptor table tells it how many bytes each command carries, so the
// frame completes as soon as the last expected byte lands.
//
// Event methods are safe for concurrent use with Send.
type Assembler struct {
	table *Table

	mu        sync.Mutex
	cur       Frame
	inFrame   bool
	discard   bool
	overload  bool
	completed chan Frame
}

// NewAssembler returns an assembler delivering frames for the given table.
func NewAssembler(table *Table) *Assembler {
	return &Assembler{
		table:     table,
		completed: make(chan Frame, QueueDepth),
	}
}

// Frames is the stream of completed frames, consumed by the dispatcher.
func (a *Assembler) Frames() <-chan Frame { return a.completed }

// Start begins a new frame. Any frame in progress is abandoned.
func (a *Assembler) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.overload {
		return ErrQueueOverload
	}
	a.cur = Frame{}
	a.inFrame = true
	a.discard = false
	return nil
}

// Data appends one received byte. The frame is enqueued the moment the
// command's last expected byte arrives; an out-of-range code completes
// immediately and is left for the dispatcher to reject.
func (a *Assembler) Data(b byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.overload {
		return ErrQueueOverload
	}
	if !a.inFrame || a.discard {
		return nil
	}
	if a.cur.n >= FrameSize {
		a.discard = true
		return ErrFrameOverflow
	}
	a.cur.buf[a.cur.n] = b
	a.cur.n++

	want := 1
	if d := a.table.Lookup(a.cur.Code()); d != nil {
		want = 1 + d.CustomCount
	}
	if a.cur.n < want {
		return nil
	}

	select {
	case a.completed <- a.cur:
	default:
		a.overload = true
		return ErrQueueOverload
	}
	a.inFrame = false
	return nil
}

// Stop ends the transfer. A short frame is dropped.
func (a *Assembler) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inFrame = false
	a.discard = false
	if a.overload {
		return ErrQueueOverload
	}
	return nil
}

// Overloaded reports whether the assembler has latched the queue overload
// fault. Recovery requires restarting the slave.
func (a *Assembler) Overloaded() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.overload
}

// Send plays a whole master transfer through the assembler, start to stop.
// The console's loopback command uses it to exercise bus commands without a
// bus master attached.
func (a *Assembler) Send(bytes []byte) error {
	if err := a.Start(); err != nil {
		return err
	}
	for _, b := range bytes {
		if err := a.Data(b); err != nil {
			return err
		}
	}
	return a.Stop()
}

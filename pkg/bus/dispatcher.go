package bus

import (
	"context"
	"fmt"
	"sync"

	"github.com/misl-switch/mislswitch-go/pkg/params"
)

// Peripheral is the transmit side of the slave interface: the dispatcher
// clocks response bytes back to the master through it.
type Peripheral interface {
	WriteByte(b byte) error
}

// Outcome reports what became of one dequeued frame.
type Outcome int

const (
	// OutcomeIdle means no frame arrived before the context ended.
	OutcomeIdle Outcome = iota

	// OutcomeDiscarded means the frame carried an out-of-range or
	// inconsistent command code and was dropped without a response.
	OutcomeDiscarded

	// OutcomeExecuted means the command handler ran.
	OutcomeExecuted
)

// Dispatcher drains completed frames and executes them. The mutex
// serializes controller access against the console task, which shares the
// register file.
type Dispatcher struct {
	table  *Table
	frames <-chan Frame
	port   Peripheral
	bus    *sync.Mutex
}

// NewDispatcher wires a dispatcher to an assembler's frame stream. busMu
// guards the switch controller and is held across each command.
func NewDispatcher(table *Table, a *Assembler, port Peripheral, busMu *sync.Mutex) *Dispatcher {
	return &Dispatcher{table: table, frames: a.Frames(), port: port, bus: busMu}
}

// Run executes frames until the context ends.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		if _, err := d.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// RunOnce waits for one frame and executes it.
func (d *Dispatcher) RunOnce(ctx context.Context) (Outcome, error) {
	var f Frame
	select {
	case <-ctx.Done():
		return OutcomeIdle, ctx.Err()
	case f = <-d.frames:
	}

	desc := d.table.Lookup(f.Code())
	if desc == nil {
		return OutcomeDiscarded, nil
	}
	if desc.Code != f.Code() {
		// table self-consistency check
		return OutcomeDiscarded, nil
	}

	var slots params.Bytes
	if err := slots.Append(desc.StaticParams...); err != nil {
		return OutcomeDiscarded, fmt.Errorf("command %#x static params: %w", desc.Code, err)
	}
	custom := f.Custom()
	if len(custom) > desc.CustomCount {
		custom = custom[:desc.CustomCount]
	}
	if err := slots.Append(custom...); err != nil {
		return OutcomeDiscarded, fmt.Errorf("command %#x custom params: %w", desc.Code, err)
	}

	d.bus.Lock()
	defer d.bus.Unlock()

	// Announce the response length first, so the master knows how many
	// bytes to clock out after the handler finishes.
	if err := d.port.WriteByte(desc.ReturnCount); err != nil {
		return OutcomeExecuted, fmt.Errorf("announce return count: %w", err)
	}
	ret := desc.Handler(slots.Slots())
	if desc.ReturnCount == 1 {
		if err := d.port.WriteByte(ret); err != nil {
			return OutcomeExecuted, fmt.Errorf("write return byte: %w", err)
		}
	}
	return OutcomeExecuted, nil
}

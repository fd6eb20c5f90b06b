package bus

import (
	"errors"
	"fmt"

	"github.com/misl-switch/mislswitch-go/pkg/params"
)

// MaxCode is the exclusive upper bound of the command code space.
const MaxCode = 0x50

// Handler executes a bus command. It receives the bound parameter slots and
// returns the single status byte clocked back to the master when the
// descriptor declares a return byte.
type Handler func(p *[params.MaxParams]byte) byte

// Descriptor describes one bus command.
type Descriptor struct {
	// Code is the command's wire code. It doubles as the descriptor's
	// index in the table.
	Code uint8

	// StaticParams are bound verbatim ahead of the custom bytes.
	StaticParams []byte

	// CustomCount is how many parameter bytes the master supplies after
	// the code byte.
	CustomCount int

	// ReturnCount is 0 for no return byte, 1 for a single status byte.
	// The sentinel 0xFF announces a bulk transfer handled entirely by
	// the command itself.
	ReturnCount uint8

	Handler Handler
}

// Total returns the number of parameter slots the command binds.
func (d *Descriptor) Total() int {
	return len(d.StaticParams) + d.CustomCount
}

var (
	ErrCodeRange    = errors.New("command code out of range")
	ErrCodeMismatch = errors.New("descriptor code does not match its slot")
	ErrNoHandler    = errors.New("descriptor without handler")
	ErrDuplicate    = errors.New("duplicate command code")
)

// Table is the command descriptor table, indexed by code byte. Codes with
// no registered command hold a no-op descriptor, so a master sending an
// unused in-range code still receives its announcement byte (0) instead of
// stalling on a dropped frame.
type Table struct {
	slots [MaxCode]*Descriptor
}

func noop(*[params.MaxParams]byte) byte { return 0 }

// NewTable builds a table from the given descriptors. Construction fails on
// out-of-range codes, duplicate codes, missing handlers and parameter
// budgets past the slot count; a malformed table is a build error, not a
// runtime surprise.
func NewTable(descriptors []Descriptor) (*Table, error) {
	t := &Table{}
	for i := range descriptors {
		d := descriptors[i]
		if d.Code >= MaxCode {
			return nil, fmt.Errorf("%w: %#x", ErrCodeRange, d.Code)
		}
		if t.slots[d.Code] != nil {
			return nil, fmt.Errorf("%w: %#x", ErrDuplicate, d.Code)
		}
		if d.Handler == nil {
			return nil, fmt.Errorf("%w: %#x", ErrNoHandler, d.Code)
		}
		if d.Total() > params.MaxParams {
			return nil, fmt.Errorf("command %#x: %w", d.Code, params.ErrTooManyParams)
		}
		if d.CustomCount < 0 || 1+d.CustomCount > FrameSize {
			return nil, fmt.Errorf("command %#x: custom count %d exceeds frame", d.Code, d.CustomCount)
		}
		t.slots[d.Code] = &d
	}
	for code := range t.slots {
		if t.slots[code] == nil {
			t.slots[code] = &Descriptor{Code: uint8(code), Handler: noop}
		}
	}
	return t, nil
}

// Lookup returns the descriptor for code, or nil when the code is out of
// range.
func (t *Table) Lookup(code uint8) *Descriptor {
	if code >= MaxCode {
		return nil
	}
	return t.slots[code]
}

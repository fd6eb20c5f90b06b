package params

import (
	"errors"
	"fmt"
)

// MaxParams is the fixed slot count of every parameter list.
const MaxParams = 20

// ErrTooManyParams indicates an append would exceed the MaxParams bound.
var ErrTooManyParams = errors.New("too many parameters")

// Strings is the console-side parameter list. The zero value is empty and
// ready to use. Lists are assembled fresh per invocation and never retained
// across calls.
type Strings struct {
	slots [MaxParams]string
	n     int
}

// Append adds values at the running cursor. It fails without modifying the
// list if the values would not fit.
func (p *Strings) Append(values ...string) error {
	if p.n+len(values) > MaxParams {
		return fmt.Errorf("%w: %d + %d > %d", ErrTooManyParams, p.n, len(values), MaxParams)
	}
	for _, v := range values {
		p.slots[p.n] = v
		p.n++
	}
	return nil
}

// Len returns the number of bound slots.
func (p *Strings) Len() int { return p.n }

// Slots exposes the full fixed array for handler invocation. Slots at index
// Len() and beyond are unspecified; handlers must only inspect the count the
// grammar entry declares.
func (p *Strings) Slots() *[MaxParams]string { return &p.slots }

// Bytes is the bus-side parameter list.
type Bytes struct {
	slots [MaxParams]byte
	n     int
}

// Append adds values at the running cursor. It fails without modifying the
// list if the values would not fit.
func (p *Bytes) Append(values ...byte) error {
	if p.n+len(values) > MaxParams {
		return fmt.Errorf("%w: %d + %d > %d", ErrTooManyParams, p.n, len(values), MaxParams)
	}
	for _, v := range values {
		p.slots[p.n] = v
		p.n++
	}
	return nil
}

// Len returns the number of bound slots.
func (p *Bytes) Len() int { return p.n }

// Slots exposes the full fixed array for handler invocation.
func (p *Bytes) Slots() *[MaxParams]byte { return &p.slots }

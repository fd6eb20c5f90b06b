package audit

import "sync"

// Filter passes events to the next logger only when their code is enabled.
// One bit per code, toggled at runtime by the event-management commands.
type Filter struct {
	mu   sync.Mutex
	mask uint32
	next Logger
}

// NewFilter wraps next with all defined codes enabled.
func NewFilter(next Logger) *Filter {
	var mask uint32
	for _, c := range Codes() {
		mask |= 1 << uint(c)
	}
	return &Filter{mask: mask, next: next}
}

// Log forwards the event when its code is enabled.
func (f *Filter) Log(event Event) {
	f.mu.Lock()
	enabled := f.mask&(1<<uint(event.Code)) != 0
	f.mu.Unlock()

	if enabled {
		f.next.Log(event)
	}
}

// Enabled reports whether code is currently recorded.
func (f *Filter) Enabled(code Code) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mask&(1<<uint(code)) != 0
}

// SetEnabled toggles recording of one code.
func (f *Filter) SetEnabled(code Code, on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if on {
		f.mask |= 1 << uint(code)
	} else {
		f.mask &^= 1 << uint(code)
	}
}

var _ Logger = (*Filter)(nil)

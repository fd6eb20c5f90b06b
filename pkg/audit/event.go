package audit

import "time"

// Code classifies an auditable event. Codes index the filter mask, so values
// must stay below MaxCodes.
type Code uint8

const (
	// SystemRestarted records a boot or soft reset.
	SystemRestarted Code = iota
	// StackOverflow records a task stack fault.
	StackOverflow
	// EEPROMWrite records an EEPROM write operation.
	EEPROMWrite
	// EEPROMRead records an EEPROM read operation.
	EEPROMRead
	// EEPROMFault records a failed EEPROM read or write.
	EEPROMFault
	// ControllerRead records a switch-controller register read.
	ControllerRead
	// ControllerWrite records a switch-controller register write.
	ControllerWrite
	// ControllerFault records a failed controller read or write.
	ControllerFault
	// UserLoggedIn records a successful console login.
	UserLoggedIn
	// UserLoggedOut records a console logout.
	UserLoggedOut

	numCodes
)

// MaxCodes bounds the code space; one bit per code in the filter mask.
const MaxCodes = 32

// Codes lists every defined code in declaration order.
func Codes() []Code {
	out := make([]Code, numCodes)
	for i := range out {
		out[i] = Code(i)
	}
	return out
}

// String returns the operator-facing name of the code.
func (c Code) String() string {
	switch c {
	case SystemRestarted:
		return "System Restarted"
	case StackOverflow:
		return "Stack Overflow"
	case EEPROMWrite:
		return "EEPROM Write Operations"
	case EEPROMRead:
		return "EEPROM Read Operations"
	case EEPROMFault:
		return "EEPROM Read/Write Errors"
	case ControllerRead:
		return "Ethernet Controller Read Operations"
	case ControllerWrite:
		return "Ethernet Controller Write Operations"
	case ControllerFault:
		return "Ethernet Controller Read/Write Errors"
	case UserLoggedIn:
		return "User Logged In"
	case UserLoggedOut:
		return "User Logged Out"
	default:
		return "Unknown Event"
	}
}

// Event is one audit record. CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred.
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the console session that caused the event,
	// if any (UUID).
	SessionID string `cbor:"2,keyasint,omitempty"`

	// Code classifies the event.
	Code Code `cbor:"3,keyasint"`

	// User is the username bound to the session, if authenticated.
	User string `cbor:"4,keyasint,omitempty"`

	// Detail carries free-form context (register address, error text).
	Detail string `cbor:"5,keyasint,omitempty"`
}

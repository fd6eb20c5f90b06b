// Package audit records management-plane events: logins, logouts, peripheral
// I/O and faults, restarts.
//
// Applications implement or compose the Logger interface. The package ships
// a file logger that appends CBOR-encoded events, a bounded in-memory ring
// that backs the console's event-listing commands, a per-code filter driven
// by the event-management commands, and a fan-out MultiLogger.
//
// Recording an event must never disrupt the command path; loggers swallow
// their own I/O errors.
package audit

// Package params provides the bounded parameter lists assembled for every
// handler invocation.
//
// Both front-ends share the same discipline: a fresh list of at most MaxParams
// slots is built per invocation from static per-node defaults and/or
// caller-supplied input, and the handler inspects only as many slots as the
// grammar entry declares. The console binds strings; the bus binds bytes.
//
// Appending past the bound is a typed error, never an overflow.
package params

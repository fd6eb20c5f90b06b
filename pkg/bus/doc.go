// Package bus implements the management bus slave: byte-event frame
// assembly, the command descriptor table, and the dispatcher that executes
// completed frames against the switch controller.
//
// A frame is one command code byte followed by the command's custom
// parameter bytes. The assembler consumes Start/Data/Stop events from the
// peripheral, collects bytes into a fixed buffer and hands completed frames
// to the dispatcher through a bounded queue. The dispatcher announces the
// command's return count back to the master before executing it, so the
// master knows how many bytes to clock out.
package bus

// Package commands holds the switch's actual command surface: the console
// grammar tree, the handlers its terminal nodes invoke, and the bus
// descriptor table with its byte-level handlers.
//
// Handlers receive their parameters through the fixed slot array the
// dispatchers bind; each handler inspects only the slots its grammar or
// descriptor entry declares. Register work goes through the controller
// collaborators, never directly to hardware.
package commands

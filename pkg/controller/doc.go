// Package controller defines the collaborator contracts the command handlers
// talk to: switch-controller register I/O, the configuration EEPROM, and the
// VLAN table.
//
// The dispatch core never interprets what a handler does with these; it only
// routes a validated, parameter-bound call to it. The in-memory Simulator
// stands in for the real SPI-attached KSZ8895 in cmd/switchd and in tests;
// real register semantics are out of scope.
package controller

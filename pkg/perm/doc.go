// Package perm defines the ordered permission levels that gate execution of
// management commands, and the parsing helpers used by the user store.
//
// Levels are strictly ordered:
//
//	ReadOnly < ModifyPorts < ModifySystem < Administrator
//
// A session may execute a command when its level is greater than or equal to
// the level the command requires. Authorization is enforced at the terminal
// node only; navigating into a restricted subtree is always permitted.
package perm

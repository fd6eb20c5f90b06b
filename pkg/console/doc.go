// Package console implements the operator-facing command path: line
// tokenization, the grammar tree walker, the help renderer, the login state
// machine and the interactive loop.
//
// Dispatch walks the command tree one token per depth, accumulating the
// parameters each matched node contributes, and executes the handler at the
// terminal node after the session's permission level clears the node's
// requirement. A "?" token at any depth renders help for the current menu
// and aborts the walk.
package console

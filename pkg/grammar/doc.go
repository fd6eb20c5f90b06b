// Package grammar defines the declarative command tree consumed by the
// console dispatcher.
//
// A grammar is a tree of Nodes. Every node either terminates in a handler
// (Terminal) or routes to a child table; exactly one of the two holds for
// every node, checked by Validate at construction time. A node whose
// UserSupplied flag is set is a placeholder: it matches any token the
// operator types and binds that literal token as a parameter.
//
// The tree is pure data. It is built once, validated once, and never mutated
// at runtime; the walker in package console holds it by reference only.
//
// The token "?" is reserved for help at every depth and can never be a
// grammar literal.
package grammar

// Package session tracks the identity bound to one console instance.
//
// A session is created unauthenticated when the console task starts, becomes
// authenticated only through a successful credential check against the user
// store, and is reset to unauthenticated on logout. It is owned by its
// console task; nothing else mutates it.
package session

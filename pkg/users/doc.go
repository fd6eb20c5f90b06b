// Package users manages the accounts allowed to administrate the switch.
//
// Accounts live in a YAML file holding at most MaxUsers entries. Passwords
// are stored as bcrypt hashes; authentication is an exact username match
// followed by a hash comparison. There is deliberately no lockout or rate
// limit on failed attempts — the console loops back to the username prompt.
package users

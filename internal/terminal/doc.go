// Package terminal manages the lifetime of shell sessions.
//
// Sessions are keyed by prefixed ULIDs. The manager decides whether a new
// session gets its own seeded filesystem or shares one tree with every
// other session, enforces a session cap and retires idle sessions.
package terminal

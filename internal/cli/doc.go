// Package cli runs a shell session interactively from a terminal.
//
// The REPL prints the session's output log as it grows, so delayed output
// from simulated commands such as ping appears line by line before the
// prompt returns.
package cli

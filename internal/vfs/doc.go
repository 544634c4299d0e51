// Package vfs implements the in-memory filesystem behind the portfolio terminal.
//
// The tree has a single root. Every node is either a directory holding a
// name-indexed set of children or a file holding an ordered list of lines.
// Nodes carry no parent pointers: resolving ".." pops the walked segment
// list and re-walks from the root, so the tree never contains a cycle.
//
// All operations report expected conditions as sentinel errors
// (ErrNotFound, ErrAlreadyExists, ErrIsDirectory, ErrNotDirectory,
// ErrInvalidName) so callers can format consistent messages with errors.Is.
//
// Example Usage:
//
//	fs := vfs.New("/home/jaimin")
//	fs.MakeDirectoryAll("/home/jaimin", "/")
//	fs.MakeDirectory("notes", "/home/jaimin")
//	res, err := fs.Resolve("~/notes", "/")
//	// res.Path == "/home/jaimin/notes"
//
// A FileSystem is safe for concurrent use. Sessions sharing one instance
// see each other's mutations immediately; there are no transactions.
package vfs

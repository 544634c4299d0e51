// Package seed describes the initial terminal layout and builds filesystems from it.
//
// The default layout is embedded as YAML. Deployments may override it with a
// YAML, TOML or JSON file; the override is layered over the default so a file
// carrying only a profile keeps the default tree.
//
// Build returns a new tree on every call. Whether sessions share one tree or
// get their own is decided by the caller.
package seed

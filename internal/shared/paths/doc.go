// Package paths provides the well-known locations of the virtual filesystem.
//
// # Directory Structure
//
//	/
//	  ├── home/<user>/   (home directory, aliased as ~)
//	  │   ├── projects/
//	  │   └── skills/
//	  ├── etc/
//	  ├── var/
//	  ├── usr/bin/
//	  └── tmp/
//
// # Usage
//
//	home := paths.Home("jaimin")          // /home/jaimin
//	abs := paths.ExpandHome("~/notes", home) // /home/jaimin/notes
//	shown := paths.Abbreviate(abs, home)  // ~/notes
package paths

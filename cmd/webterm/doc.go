// Command webterm runs the portfolio terminal in a local shell.
//
// Usage:
//
//	webterm [--seed FILE] [--no-color] [-c COMMAND]...
//	webterm seed export --format yaml|toml|json
//	webterm seed validate FILE
//	webterm version
package main

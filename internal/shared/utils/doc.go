// Package utils holds input validation shared by the REST and WebSocket
// front ends of the terminal.
package utils

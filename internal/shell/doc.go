// Package shell implements the portfolio terminal's command interpreter.
//
// A Session turns input lines into tagged output lines:
//   - Execute trims the line, echoes it, records it in history and
//     dispatches it through a string-keyed command table
//   - whole-line matches are tried before tokenizing, so multi-word
//     commands such as "sudo rm -rf /" can be special-cased
//   - handler errors are rendered as text; nothing escapes Execute
//
// Simulated long-running commands (ping, the destroy prank) append their
// output later through the session's Scheduler. Closing the session stops
// the scheduler and the log, so nothing is appended afterwards.
//
// The filesystem is injected and may be shared between sessions.
package shell

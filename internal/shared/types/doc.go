// Package types provides shared data structures for the backend.
//
// Core Types:
//   - Profile: the portfolio owner, rendered by informational commands
//   - Education, SkillSet, Project: profile sections
//
// Request Types:
//   - ExecRequest: one terminal input line over REST
//   - WSMessage: terminal input over WebSocket
package types

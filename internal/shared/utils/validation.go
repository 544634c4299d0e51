package utils

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Size limits
const (
	MaxLineLength    = 4 * 1024 // one terminal input line
	MaxPathLength    = 1024
	MaxMessageSize   = 16 * 1024 // one WebSocket frame
	MaxRequestBody   = 64 * 1024
	MaxOutputRequest = 10000 // lines returned by one output query
)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	if value == "" {
		return nil
	}

	if !utf8.ValidString(value) {
		return fmt.Errorf("%s is not valid UTF-8", fieldName)
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateLine validates one line of terminal input. Empty lines are allowed;
// the shell treats them as a no-op.
func ValidateLine(line string) error {
	if err := ValidateString(line, "line", 0, MaxLineLength, false); err != nil {
		return err
	}
	for _, r := range line {
		if r != '\t' && unicode.IsControl(r) {
			return fmt.Errorf("line contains control characters")
		}
	}
	return nil
}

// ValidatePath validates a virtual path argument. Empty means the current directory.
func ValidatePath(path string) error {
	return ValidateString(path, "path", 0, MaxPathLength, false)
}

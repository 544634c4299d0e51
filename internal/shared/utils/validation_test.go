package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr bool
	}{
		{name: "command", line: "ls -la ~/projects"},
		{name: "empty", line: ""},
		{name: "tab", line: "echo\thi"},
		{name: "unicode", line: "echo héllo"},
		{name: "null byte", line: "cat a\x00b", wantErr: true},
		{name: "newline", line: "ls\nrm -rf /", wantErr: true},
		{name: "escape", line: "echo \x1b[31m", wantErr: true},
		{name: "invalid utf8", line: "echo \xff", wantErr: true},
		{name: "too long", line: strings.Repeat("x", MaxLineLength+1), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	assert.NoError(t, ValidatePath(""))
	assert.NoError(t, ValidatePath("~/skills"))
	assert.Error(t, ValidatePath(strings.Repeat("a/", MaxPathLength)))
}

func TestValidateString(t *testing.T) {
	assert.EqualError(t, ValidateString("", "name", 1, 10, true), "name is required")
	assert.NoError(t, ValidateString("", "name", 1, 10, false))
	assert.EqualError(t, ValidateString("ab", "name", 3, 10, true), "name must be at least 3 characters")
	assert.EqualError(t, ValidateString("abcdef", "name", 1, 5, true), "name must not exceed 5 characters")
}

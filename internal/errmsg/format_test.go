package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaylistLoad,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpPlaylistLoad,
			err:      errors.New("401 unauthorized"),
			expected: "Failed to load playlist: 401 unauthorized",
		},
		{
			name:     "login operation",
			op:       OpLoginExchange,
			err:      errors.New("invalid grant"),
			expected: "Failed to complete Spotify login: invalid grant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaylistLoad,
			context:  "Road Trip",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpPlaylistLoad,
			context:  "Road Trip",
			err:      errors.New("not found"),
			expected: "Failed to load playlist 'Road Trip': not found",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpPlaylistLoad,
			context:  "",
			err:      errors.New("not found"),
			expected: "Failed to load playlist: not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpLoginStart, OpLoginCallback, OpLoginExchange,
		OpPlaylistsLoad, OpPlaylistLoad,
		OpStateSave, OpStateLoad,
		OpConfigLoad, OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if got := Format(op, testErr); got != expected {
				t.Errorf("Format = %q, want %q", got, expected)
			}
		})
	}
}

// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// UnknownCommand is shown when a typed command line cannot be parsed.
const UnknownCommand = "Error: unknown command"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Startup
	OpLoadConfig Op = "load configuration"
	OpOpenState  Op = "open state database"
	OpOpenLog    Op = "open log file"
	OpStartAudio Op = "start audio engine"

	// Playback
	OpLoadFile    Op = "load file"
	OpSendControl Op = "send command to the engine"
	OpSaveResume  Op = "save resume position"
	OpLoadResume  Op = "read resume position"

	// History
	OpRecordHistory Op = "record listening history"
	OpReadHistory   Op = "read listening history"

	// Desktop integration
	OpMediaSession Op = "update media session"
	OpNotify       Op = "send notification"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

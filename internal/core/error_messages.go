package core

// error_messages.go maps technical errors to user-friendly messages.
//
// Every message carries a short code users can quote to support staff.
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so more specific patterns come before general ones.
//
// Code ranges:
//
//	FILE001-FILE005  file handling (size, extension, structure, empty input)
//	VAL001-VAL002    tabular validation (header, row ceiling)
//	DOM001-DOM002    domain inputs (syntax, identical pair)
//	ART001           missing or expired artifacts
//	STO001           storage failures
//	UPL001-UPL003    upload processing (busy, cancelled, timed out)
//	RATE001          request throttling
//	ERR000           fallback for everything else

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// File handling
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum size limit",
			Action:  "Upload a smaller file or split it into parts",
			Code:    "FILE001",
		},
	},
	{
		pattern: "file type not allowed",
		msg: UserMessage{
			Message: "This file type is not supported",
			Action:  "Upload a CSV or TXT file",
			Code:    "FILE002",
		},
	},
	{
		pattern: "not a valid delimited",
		msg: UserMessage{
			Message: "The file could not be read as a CSV",
			Action:  "Ensure the file uses a consistent delimiter and column count",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose a file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Upload a file with a header row and data",
			Code:    "FILE005",
		},
	},

	// Tabular validation
	{
		pattern: "no header",
		msg: UserMessage{
			Message: "The file has no header row",
			Action:  "Add a header row with at least one column name",
			Code:    "VAL001",
		},
	},
	{
		pattern: "row limit exceeded",
		msg: UserMessage{
			Message: "The file has too many rows",
			Action:  "Split the file so it stays under the row limit",
			Code:    "VAL002",
		},
	},

	// Domain inputs
	{
		pattern: "invalid domain",
		msg: UserMessage{
			Message: "The domain is not a valid hostname",
			Action:  "Use a plain domain like example.com (no protocol or path)",
			Code:    "DOM001",
		},
	},
	{
		pattern: "cannot be the same",
		msg: UserMessage{
			Message: "Old and new domains are identical",
			Action:  "Enter two different domains",
			Code:    "DOM002",
		},
	},

	// Artifacts
	{
		pattern: "not found or expired",
		msg: UserMessage{
			Message: "This download link is expired or invalid",
			Action:  "Process the file again to get a fresh link",
			Code:    "ART001",
		},
	},

	// Storage
	{
		pattern: "storage failure",
		msg: UserMessage{
			Message: "The file could not be saved",
			Action:  "Please try again in a few moments",
			Code:    "STO001",
		},
	},

	// Upload processing
	{
		pattern: "too many concurrent uploads",
		msg: UserMessage{
			Message: "The system is busy processing other files",
			Action:  "Please wait a moment and try again",
			Code:    "UPL001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Please try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "UPL003",
		},
	},

	// Throttling
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000). Support staff
// should check the logs for the original technical error when users report it.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches the known patterns case-insensitively and returns the first
// match, falling back to the generic ERR000 message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether an error matches a known pattern and is safe to
// show verbatim. The generic ERR000 fallback is not considered user-facing.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

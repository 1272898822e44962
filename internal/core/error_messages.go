package core

// error_messages.go turns technical errors into messages an instructor can
// act on, each tagged with a support code.
//
//	FILE001  roster file over the size limit
//	FILE002  filename matches no known export
//	FILE004  request carried no file
//	FILE006  classify called without a filename
//	UPL002   all import slots busy
//	UPL004   request cancelled
//	UPL005   request timed out
//	HIST001  import id not in history
//	DB004    history database unreachable
//	RATE001  per-client rate limit hit
//	ERR000   anything else; the server log has the original error
//
// Engine sentinels are resolved with errors.Is. Errors that only arrive as
// text (driver errors, errors built in the HTTP layer) fall back to a
// case-insensitive substring match.

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage is the instructor-facing side of an error.
type UserMessage struct {
	Message string
	Action  string
	Code    string
}

const fallbackCode = "ERR000"

var userMessages = map[string]UserMessage{
	"FILE001": {"The roster file exceeds the size limit", "Export only the sections you need and try again", "FILE001"},
	"FILE002": {"This file type is not supported", "Upload the SIS class list (.xlsx) or an LMS export (.csv)", "FILE002"},
	"FILE004": {"No file was attached", "Attach a roster file", "FILE004"},
	"FILE006": {"No filename was given", "Pass the roster's filename", "FILE006"},
	"UPL002":  {"The importer is busy with other files", "Wait a moment and try again", "UPL002"},
	"UPL004":  {"The import was cancelled", "Start the import again", "UPL004"},
	"UPL005":  {"The import timed out", "Try a smaller file or try again later", "UPL005"},
	"HIST001": {"Import not found", "The import may have been pruned from history", "HIST001"},
	"DB004":   {"Unable to reach the import history database", "Try again in a few moments", "DB004"},
	"RATE001": {"Too many requests", "Wait a moment before trying again", "RATE001"},
	"ERR000":  {"An unexpected error occurred", "Try again or contact a server admin", "ERR000"},
}

// sentinelCodes is checked in order; wrapped errors match their innermost sentinel.
var sentinelCodes = []struct {
	target error
	code   string
}{
	{ErrFileTooLarge, "FILE001"},
	{ErrUnsupportedFileType, "FILE002"},
	{ErrTooManyImports, "UPL002"},
	{context.Canceled, "UPL004"},
	{context.DeadlineExceeded, "UPL005"},
	{ErrHistoryNotFound, "HIST001"},
}

var textCodes = []struct {
	fragment string
	code     string
}{
	{"request body too large", "FILE001"},
	{"no file provided", "FILE004"},
	{"missing filename", "FILE006"},
	{"connection refused", "DB004"},
	{"rate limit", "RATE001"},
}

// MapError returns the user message for err, or the zero value for nil.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}
	return userMessages[codeFor(err)]
}

func codeFor(err error) string {
	for _, s := range sentinelCodes {
		if errors.Is(err, s.target) {
			return s.code
		}
	}

	text := strings.ToLower(err.Error())
	for _, s := range sentinelCodes {
		if strings.Contains(text, strings.ToLower(s.target.Error())) {
			return s.code
		}
	}
	for _, t := range textCodes {
		if strings.Contains(text, t.fragment) {
			return t.code
		}
	}
	return fallbackCode
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to anything more specific than ERR000.
func IsUserFacing(err error) bool {
	return err != nil && codeFor(err) != fallbackCode
}

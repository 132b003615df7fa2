// Package redact scrubs credentials, connection strings, file paths and other
// sensitive fragments from strings before they are logged or returned to a
// client.
package redact

import (
	"regexp"
)

// Redaction placeholders.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedStackTracePlaceholder = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules are applied in order; connection strings go first so their embedded
// passwords are not half-matched by the credential rule.
var rules = []rule{
	{
		regexp.MustCompile(`(?i)(postgres|mysql|mongodb|redis|amqp|db|database)://[^@\s]+@`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]+=*`),
		RedactedKeyPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)(api[_-]?key|token|secret|access[_-]?key)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`),
		RedactedKeyPlaceholder,
	},
	{
		regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`),
		RedactedStackTracePlaceholder,
	},
	{
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		RedactedEmailPlaceholder,
	},
	{
		regexp.MustCompile(`(/[\w.-]+){2,}`),
		RedactedPathPlaceholder,
	},
	{
		regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`),
		RedactedPathPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// Package redact scrubs credentials and internal details from text before it
// is logged. Error responses never carry raw errors; logs carry redacted ones.
package redact

import "regexp"

// Placeholders substituted for redacted content.
const (
	Placeholder           = "[REDACTED]"
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	HashPlaceholder       = "[REDACTED_HASH]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	PathPlaceholder       = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules run in order; earlier rules see the unmodified input.
var rules = []rule{
	// user:password@ in postgres:// and redis:// URLs
	{regexp.MustCompile(`(?i)\b(postgres(?:ql)?|redis|rediss)://[^@\s/]+@`), "$1://" + CredentialPlaceholder + "@"},
	// password=..., pwd: ..., "password":"..."
	{regexp.MustCompile(`(?i)("?(?:password|passwd|pwd)"?\s*[=:]\s*"?)[^"&\s,}]+`), "${1}" + CredentialPlaceholder},
	// Bearer tokens and bare JWTs
	{regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-_.~+/]+=*`), "Bearer " + TokenPlaceholder},
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), TokenPlaceholder},
	// bcrypt hashes
	{regexp.MustCompile(`\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}`), HashPlaceholder},
	// secret=..., jwt_secret: ..., api_key=...
	{regexp.MustCompile(`(?i)((?:jwt_)?secret|api[_-]?key)(\s*[=:]\s*)[^\s&,]{4,}`), "${1}${2}" + CredentialPlaceholder},
	// SQL statements echoed by drivers
	{regexp.MustCompile(`\b(SELECT|INSERT|UPDATE|DELETE)\b[^;]*?\b(FROM|INTO|SET|WHERE)\b[^;"]*`), SQLPlaceholder},
	// absolute unix paths with at least two segments
	{regexp.MustCompile(`(/[\w.-]+){2,}`), PathPlaceholder},
	// goroutine dumps
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), Placeholder},
}

// String redacts sensitive information from the input string
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

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

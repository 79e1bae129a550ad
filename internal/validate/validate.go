package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var reName = regexp.MustCompile(`^[A-Za-z0-9._-]{1,50}$`)

// Name validates a user name: trimmed, case-sensitive, limited charset.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reName.MatchString(s)
}

// Password enforces only a length window; bcrypt rejects inputs over 72
// bytes, so the cap is a transport-level guard rather than a policy.
func Password(s string) bool {
	return len(s) >= 1 && len(s) <= 72
}

// ID parses a numeric resource identifier from a path segment.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil && n > 0
}

// Title validates an advertisement title.
func Title(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && len(s) <= 100
}

// Price parses a non-negative price.
func Price(f float64) bool {
	return f >= 0
}

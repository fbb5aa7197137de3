package types

import "fmt"

const (
	minAccountIDLen = 2
	maxAccountIDLen = 64
)

// IsValidAccountID report whether s is a syntactically valid NEAR
// account ID (lowercase alphanumeric parts separated by '.', '_' or
// '-', 2 to 64 characters).
func IsValidAccountID(s string) bool {
	if len(s) < minAccountIDLen || len(s) > maxAccountIDLen {
		return false
	}
	lastSeparator := true // leading separator is invalid
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			lastSeparator = false
		case c == '.' || c == '_' || c == '-':
			if lastSeparator {
				return false
			}
			lastSeparator = true
		default:
			return false
		}
	}
	return !lastSeparator
}

// CheckAccountID return an error for invalid account IDs
func CheckAccountID(s string) error {
	if !IsValidAccountID(s) {
		return fmt.Errorf("invalid account ID %q", s)
	}
	return nil
}

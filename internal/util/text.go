package util

import "strings"

// SanitizePostgresText strips byte sequences Postgres rejects in text columns:
// invalid UTF-8 and NUL bytes.
func SanitizePostgresText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	return strings.ReplaceAll(sanitized, "\x00", "")
}

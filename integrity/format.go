package integrity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// validFormat reports whether s satisfies the named format. Unknown format
// names are accepted.
func validFormat(s, format string) bool {
	switch format {
	case "email":
		return validEmail(s)
	case "url":
		return validURL(s)
	case "date":
		return validDate(s)
	case "uuid":
		return validUUID(s)
	default:
		return true
	}
}

// validEmail is a containment check, not an RFC 5322 parse. It matches the
// tolerance of the other format checks: cheap rejection of obvious garbage.
func validEmail(s string) bool {
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}

func validURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// validDate accepts RFC 3339 timestamps.
func validDate(s string) bool {
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

func validUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

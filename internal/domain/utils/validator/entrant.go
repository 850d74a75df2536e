package validator

import (
	"strings"
	"unicode/utf8"
)

// EntrantID reports whether an entrant identifier is email-shaped:
// non-empty local part, single @, non-empty domain with a dot.
func EntrantID(id string) bool {
	if utf8.RuneCountInString(id) < 3 || utf8.RuneCountInString(id) > 254 {
		return false
	}
	at := strings.Index(id, "@")
	if at <= 0 || at != strings.LastIndex(id, "@") {
		return false
	}
	domain := id[at+1:]
	if domain == "" || strings.Contains(id, " ") {
		return false
	}
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsValidEmail reports whether s is a syntactically valid address:
// local-part "@" domain, a dot in the domain, no whitespace anywhere.
// Addresses are ASCII only and quoted local parts are not accepted.
// No DNS or deliverability checks are made.
func IsValidEmail(s string) bool {
	if s == "" || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf || s[i] == '"' {
			return false
		}
	}

	if strings.Count(s, "@") != 1 {
		return false
	}

	at := strings.IndexByte(s, '@')
	if at == 0 || at == len(s)-1 {
		return false
	}

	domain := s[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}

	return validate.Var(s, "email") == nil
}

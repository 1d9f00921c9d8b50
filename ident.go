package constrec

import "strings"

// maxNameLen bounds field names, matching the identifier limit of the
// environments the record interoperates with.
const maxNameLen = 63

// goKeywords are names a field cannot take verbatim; SanitizeName prefixes
// them instead.
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true,
	"continue": true, "default": true, "defer": true, "else": true,
	"fallthrough": true, "for": true, "func": true, "go": true,
	"goto": true, "if": true, "import": true, "interface": true,
	"map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true,
	"var": true,
}

// ValidName reports whether s is usable as a field name without
// sanitization: an ASCII letter followed by ASCII letters, digits, or
// underscores, at most 63 characters, and not a reserved word.
func ValidName(s string) bool {
	if s == "" || len(s) > maxNameLen {
		return false
	}
	if !isLetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isLetter(s[i]) && !isDigit(s[i]) && s[i] != '_' {
			return false
		}
	}
	return !goKeywords[s]
}

// SanitizeName rewrites s into a valid field name. Whitespace is removed
// with the following character upcased, other invalid characters become
// underscores, a leading non-letter gets an "x" prefix, and reserved words
// are prefixed the same way with their first letter upcased. The result
// always satisfies ValidName.
func SanitizeName(s string) string {
	var b strings.Builder
	upNext := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			upNext = true
		case isLetter(c) || isDigit(c) || c == '_':
			if upNext {
				c = upper(c)
				upNext = false
			}
			b.WriteByte(c)
		default:
			b.WriteByte('_')
			upNext = false
		}
	}

	out := b.String()
	if out == "" || !isLetter(out[0]) {
		out = "x" + out
	}
	if goKeywords[out] {
		out = "x" + string(upper(out[0])) + out[1:]
	}
	if len(out) > maxNameLen {
		out = out[:maxNameLen]
	}
	return out
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

package routegen

import (
	"bytes"
	"encoding/json"
	"strings"
)

// IsIdentifier reports whether s can be used as a bare TypeScript property
// name, i.e. matches [A-Za-z_$][A-Za-z0-9_$]*.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || c == '$':
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// FieldName returns s as an interface property name: bare when it is an
// identifier, otherwise a double-quoted string literal.
func FieldName(s string) string {
	if IsIdentifier(s) {
		return s
	}
	return Quote(s)
}

// Quote returns s as a double-quoted JSON string literal. HTML characters are
// left unescaped.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

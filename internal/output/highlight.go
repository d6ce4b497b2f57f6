package output

import (
	"regexp"
	"strings"
)

// TokenKind identifies the kind of JSON token for syntax colouring.
type TokenKind int

const (
	TokenKey TokenKind = iota
	TokenString
	TokenNumber
	TokenBool
	TokenNull
)

func (k TokenKind) String() string {
	switch k {
	case TokenKey:
		return "key"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenBool:
		return "boolean"
	case TokenNull:
		return "null"
	default:
		return "unknown"
	}
}

// Styler wraps a single JSON token in a style marker.
type Styler interface {
	Style(kind TokenKind, token string) string
}

// StylerFunc adapts a function to the Styler interface.
type StylerFunc func(kind TokenKind, token string) string

// Style calls f(kind, token).
func (f StylerFunc) Style(kind TokenKind, token string) string {
	return f(kind, token)
}

// tokenPattern matches a quoted string with an optional trailing colon (a
// key), a literal, or a number. Anything it does not match is structure.
var tokenPattern = regexp.MustCompile(`("(\\u[a-zA-Z0-9]{4}|\\[^u]|[^\\"])*"(\s*:)?|\b(true|false|null)\b|-?\d+(?:\.\d*)?(?:[eE][+\-]?\d+)?)`)

// Highlight styles every key, string, number, boolean and null token of a
// pretty-printed JSON document in one regular-expression pass. Braces,
// brackets, commas and whitespace pass through unchanged.
func Highlight(json string, styler Styler) string {
	if styler == nil {
		return json
	}
	return tokenPattern.ReplaceAllStringFunc(json, func(token string) string {
		return styler.Style(ClassifyToken(token), token)
	})
}

// ClassifyToken returns the kind of a token matched by the highlighter.
func ClassifyToken(token string) TokenKind {
	switch {
	case strings.HasPrefix(token, `"`):
		if strings.HasSuffix(token, ":") {
			return TokenKey
		}
		return TokenString
	case strings.Contains(token, "true") || strings.Contains(token, "false"):
		return TokenBool
	case strings.Contains(token, "null"):
		return TokenNull
	default:
		return TokenNumber
	}
}

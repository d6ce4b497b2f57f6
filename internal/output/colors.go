package output

import (
	"github.com/fatih/color"
)

// ColorScheme defines the colors used for different elements in the output
type ColorScheme struct {
	Method      *color.Color
	URL         *color.Color
	StatusOK    *color.Color
	StatusError *color.Color
	HeaderKey   *color.Color
	Muted       *color.Color
	JsonKey     *color.Color
	JsonString  *color.Color
	JsonNumber  *color.Color
	JsonBool    *color.Color
	JsonNull    *color.Color
	Error       *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Method:      color.New(color.FgBlue, color.Bold),
		URL:         color.New(color.FgCyan),
		StatusOK:    color.New(color.FgGreen, color.Bold),
		StatusError: color.New(color.FgRed, color.Bold),
		HeaderKey:   color.New(color.FgYellow),
		Muted:       color.New(color.FgHiBlack),
		JsonKey:     color.New(color.FgHiMagenta),
		JsonString:  color.New(color.FgHiCyan),
		JsonNumber:  color.New(color.FgHiBlue),
		JsonBool:    color.New(color.FgHiYellow),
		JsonNull:    color.New(color.FgHiBlack),
		Error:       color.New(color.FgRed),
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()
	for _, c := range scheme.all() {
		c.DisableColor()
	}
	return scheme
}

func (cs *ColorScheme) all() []*color.Color {
	return []*color.Color{
		cs.Method, cs.URL, cs.StatusOK, cs.StatusError,
		cs.HeaderKey, cs.Muted, cs.JsonKey, cs.JsonString, cs.JsonNumber,
		cs.JsonBool, cs.JsonNull, cs.Error,
	}
}

// Style implements Styler, coloring JSON tokens for the terminal.
func (cs *ColorScheme) Style(kind TokenKind, token string) string {
	switch kind {
	case TokenKey:
		return cs.JsonKey.Sprint(token)
	case TokenString:
		return cs.JsonString.Sprint(token)
	case TokenBool:
		return cs.JsonBool.Sprint(token)
	case TokenNull:
		return cs.JsonNull.Sprint(token)
	default:
		return cs.JsonNumber.Sprint(token)
	}
}

// SuccessIcon returns a checkmark symbol with appropriate color
func SuccessIcon(noColor bool) string {
	if noColor {
		return "✓"
	}
	return color.New(color.FgGreen).Sprint("✓")
}

// ErrorIcon returns an X symbol with appropriate color
func ErrorIcon(noColor bool) string {
	if noColor {
		return "✗"
	}
	return color.New(color.FgRed).Sprint("✗")
}

// StatusDot returns the connection indicator: a filled dot when connected,
// a hollow one otherwise.
func StatusDot(connected, noColor bool) string {
	if connected {
		if noColor {
			return "●"
		}
		return color.New(color.FgGreen).Sprint("●")
	}
	if noColor {
		return "○"
	}
	return color.New(color.FgRed).Sprint("○")
}

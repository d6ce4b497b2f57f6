package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wesleyorama2/playground/internal/output"
)

var (
	colorAccent  = lipgloss.Color("#818cf8")
	colorMuted   = lipgloss.Color("#94a3b8")
	colorBorder  = lipgloss.Color("#334155")
	colorSuccess = lipgloss.Color("#22c55e")
	colorError   = lipgloss.Color("#ef4444")
)

type styles struct {
	title        lipgloss.Style
	label        lipgloss.Style
	muted        lipgloss.Style
	method       lipgloss.Style
	preset       lipgloss.Style
	presetActive lipgloss.Style
	pane         lipgloss.Style
	paneFocused  lipgloss.Style
	statusOK     lipgloss.Style
	statusError  lipgloss.Style
	errorText    lipgloss.Style
	dotConnected lipgloss.Style
	dotOffline   lipgloss.Style
	json         jsonStyler
}

func defaultStyles() styles {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	return styles{
		title:        lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		label:        lipgloss.NewStyle().Foreground(colorMuted).Width(10),
		muted:        lipgloss.NewStyle().Foreground(colorMuted),
		method:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f172a")).Background(colorAccent).Padding(0, 1),
		preset:       lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1),
		presetActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f172a")).Background(colorMuted).Padding(0, 1),
		pane:         pane,
		paneFocused:  pane.BorderForeground(colorAccent),
		statusOK:     lipgloss.NewStyle().Bold(true).Foreground(colorSuccess),
		statusError:  lipgloss.NewStyle().Bold(true).Foreground(colorError),
		errorText:    lipgloss.NewStyle().Foreground(colorError),
		dotConnected: lipgloss.NewStyle().Foreground(colorSuccess),
		dotOffline:   lipgloss.NewStyle().Foreground(colorError),
		json:         defaultJSONStyler(),
	}
}

// jsonStyler colours highlighted JSON tokens inside the response pane.
type jsonStyler struct {
	key     lipgloss.Style
	str     lipgloss.Style
	number  lipgloss.Style
	boolean lipgloss.Style
	null    lipgloss.Style
}

func defaultJSONStyler() jsonStyler {
	return jsonStyler{
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("#f472b6")),
		str:     lipgloss.NewStyle().Foreground(lipgloss.Color("#a5f3fc")),
		number:  lipgloss.NewStyle().Foreground(lipgloss.Color("#c4b5fd")),
		boolean: lipgloss.NewStyle().Foreground(lipgloss.Color("#fcd34d")),
		null:    lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8")),
	}
}

// Style implements output.Styler
func (s jsonStyler) Style(kind output.TokenKind, token string) string {
	switch kind {
	case output.TokenKey:
		return s.key.Render(token)
	case output.TokenString:
		return s.str.Render(token)
	case output.TokenBool:
		return s.boolean.Render(token)
	case output.TokenNull:
		return s.null.Render(token)
	default:
		return s.number.Render(token)
	}
}

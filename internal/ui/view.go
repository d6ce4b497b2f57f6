package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wesleyorama2/playground/internal/health"
	"github.com/wesleyorama2/playground/internal/output"
)

// View renders the console.
func (m Model) View() string {
	sections := []string{
		m.renderHeader(),
		m.renderField("Base URL", m.baseURL.View(), m.focus == focusBaseURL),
		m.renderPresets(),
		m.renderField("Request", m.styles.method.Render(m.method)+" "+m.path.View(), m.focus == focusPath),
		m.pane(m.focus == focusBody).Render(m.body.View()),
		m.pane(m.focus == focusResponse).Render(m.response.View()),
		m.styles.muted.Render("tab focus • ctrl+s send • ctrl+r method • 1-9/←→ presets • ctrl+c quit"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.styles.title.Render("API Playground")
	return title + "  " + m.renderStatus()
}

// renderStatus renders the connection dot and, while a request is in
// flight, a sending marker
func (m Model) renderStatus() string {
	var dot string
	switch m.health {
	case health.StateConnected:
		dot = m.styles.dotConnected.Render("●") + " " + m.styles.muted.Render("connected")
	case health.StateDisconnected:
		dot = m.styles.dotOffline.Render("○") + " " + m.styles.muted.Render("disconnected")
	default:
		dot = m.styles.muted.Render("○ checking")
	}
	if m.sending {
		dot += "  " + m.styles.muted.Render("sending…")
	}
	return dot
}

func (m Model) renderField(label, value string, focused bool) string {
	l := m.styles.label
	if focused {
		l = l.Foreground(colorAccent)
	}
	return l.Render(label) + value
}

func (m Model) renderPresets() string {
	l := m.styles.label
	if m.focus == focusPresets {
		l = l.Foreground(colorAccent)
	}

	var buttons []string
	for i, p := range m.cfg.Presets {
		label := p.Label()
		if i < 9 {
			label = strconv.Itoa(i+1) + " " + label
		}
		style := m.styles.preset
		if i == m.preset {
			style = m.styles.presetActive
		}
		buttons = append(buttons, style.Render(label))
	}
	return l.Render("Presets") + strings.Join(buttons, "")
}

func (m Model) pane(focused bool) lipgloss.Style {
	if focused {
		return m.styles.paneFocused
	}
	return m.styles.pane
}

// renderResponse renders the last result for the response pane: the status
// and elapsed time over the highlighted body, or an error block.
func (m Model) renderResponse() string {
	r := m.result
	if r == nil {
		return m.styles.muted.Render("Send a request to see the response")
	}

	if r.Failed() {
		return m.styles.statusError.Render("Error") + "\n\n" + m.styles.errorText.Render(r.Err.Error())
	}

	status := m.styles.statusError
	if r.OK() {
		status = m.styles.statusOK
	}
	header := status.Render(strconv.Itoa(r.StatusCode)) + "  " + m.styles.muted.Render(fmt.Sprintf("%dms", r.ElapsedMillis()))
	return header + "\n\n" + output.Highlight(r.Pretty, m.styles.json)
}

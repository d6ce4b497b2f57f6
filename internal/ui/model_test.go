package ui

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/playground/internal/composer"
	"github.com/wesleyorama2/playground/internal/health"
	"github.com/wesleyorama2/playground/internal/sender"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return updated, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_Defaults(t *testing.T) {
	m := New(Config{BaseURL: "http://localhost:8000"})

	assert.Equal(t, "GET", m.method)
	assert.Equal(t, "/health", m.path.Value())
	assert.Equal(t, "http://localhost:8000", m.baseURL.Value())
	assert.Equal(t, -1, m.preset)
	assert.Equal(t, focusPath, m.focus)
	assert.Equal(t, health.StateUnknown, m.health)
	assert.Len(t, m.cfg.Presets, len(composer.DefaultPresets()))
	assert.Equal(t, health.DefaultInterval, m.cfg.HealthInterval)
	assert.NotNil(t, m.Init())
}

func TestUpdate_FocusCycles(t *testing.T) {
	m := New(Config{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusBody, m.focus)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusResponse, m.focus)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusBaseURL, m.focus)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, focusResponse, m.focus)
}

func TestUpdate_CycleMethod(t *testing.T) {
	m := New(Config{})

	var seen []string
	for range composer.Methods {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
		seen = append(seen, m.method)
	}
	assert.Equal(t, []string{"POST", "PUT", "DELETE", "GET"}, seen)
}

func TestUpdate_PresetKeys(t *testing.T) {
	m := New(Config{})
	m.focusField(focusPresets)

	// 3 is "Create profile"
	m, _ = update(t, m, runes("3"))
	assert.Equal(t, 2, m.preset)
	assert.Equal(t, "POST", m.method)
	assert.Equal(t, "/profile", m.path.Value())

	sample, ok := composer.SampleBody("/profile")
	require.True(t, ok)
	assert.Equal(t, sample, m.body.Value())

	// left goes back to "Get profile", which clears the body
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, m.preset)
	assert.Equal(t, "GET", m.method)
	assert.Equal(t, "", m.body.Value())

	// right wraps from the last preset to the first
	m.preset = len(m.cfg.Presets) - 1
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 0, m.preset)
	assert.Equal(t, "/health", m.path.Value())
}

func TestUpdate_PresetKeyOutOfRange(t *testing.T) {
	m := New(Config{Presets: []composer.Preset{{Name: "Only", Method: "DELETE", Path: "/projects/9"}}})
	m.focusField(focusPresets)

	m, _ = update(t, m, runes("5"))
	assert.Equal(t, -1, m.preset)
	assert.Equal(t, "GET", m.method)

	m, _ = update(t, m, runes("1"))
	assert.Equal(t, "DELETE", m.method)
	assert.Equal(t, "/projects/9", m.path.Value())
}

func TestUpdate_DigitsTypeIntoTextFields(t *testing.T) {
	m := New(Config{})

	m, _ = update(t, m, runes("1"))
	assert.Equal(t, -1, m.preset)
	assert.Equal(t, "/health1", m.path.Value())
}

func TestUpdate_HealthResult(t *testing.T) {
	m := New(Config{})

	m, _ = update(t, m, healthResultMsg{probe: health.Probe{State: health.StateConnected, StatusCode: 200}})
	assert.Equal(t, health.StateConnected, m.health)
	assert.Contains(t, m.View(), "● connected")

	m, _ = update(t, m, healthResultMsg{probe: health.Probe{State: health.StateDisconnected}})
	assert.Equal(t, health.StateDisconnected, m.health)
	assert.Contains(t, m.View(), "○ disconnected")
}

func TestUpdate_HealthTickSchedulesProbe(t *testing.T) {
	m := New(Config{})
	_, cmd := update(t, m, healthTickMsg{})
	assert.NotNil(t, cmd)
}

func TestCheckHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	m := New(Config{BaseURL: server.URL})
	msg := m.checkHealth()()

	result, ok := msg.(healthResultMsg)
	require.True(t, ok)
	assert.Equal(t, health.StateConnected, result.probe.State)
}

func TestUpdate_SendRoundTrip(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/projects", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":7,"name":"My Project"}`))
	}))
	defer server.Close()

	m := New(Config{BaseURL: server.URL})
	m.focusField(focusPresets)
	m, _ = update(t, m, runes("8")) // Add project

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.True(t, m.sending)
	assert.Contains(t, m.View(), "sending")

	msg := cmd()
	m, _ = update(t, m, msg)

	assert.False(t, m.sending)
	require.NotNil(t, m.result)
	assert.Equal(t, 201, m.result.StatusCode)
	assert.Contains(t, gotBody, `"name": "My Project"`)

	content := m.renderResponse()
	assert.Contains(t, content, "201")
	assert.Contains(t, content, `"id": 7`)
}

func TestUpdate_EnterInPathSends(t *testing.T) {
	m := New(Config{BaseURL: "http://127.0.0.1:1"})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
}

func TestRenderResponse(t *testing.T) {
	m := New(Config{})
	assert.Contains(t, m.renderResponse(), "Send a request")

	m, _ = update(t, m, sendResultMsg{result: &sender.Result{
		StatusCode: 404,
		Status:     "404 Not Found",
		Elapsed:    12 * time.Millisecond,
		Pretty:     "{\n  \"detail\": \"Project not found\"\n}",
	}})
	content := m.renderResponse()
	assert.Contains(t, content, "404")
	assert.Contains(t, content, "12ms")
	assert.Contains(t, content, `"detail": "Project not found"`)

	m, _ = update(t, m, sendResultMsg{result: &sender.Result{
		Err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused"),
	}})
	content = m.renderResponse()
	assert.True(t, strings.HasPrefix(content, "Error"), content)
	assert.Contains(t, content, "connection refused")
	assert.NotContains(t, content, "404")
	assert.NotContains(t, content, "ms\n")
}

func TestUpdate_LastSendResultWins(t *testing.T) {
	m := New(Config{})

	m, _ = update(t, m, sendResultMsg{result: &sender.Result{StatusCode: 200, Pretty: `{"n": 1}`}})
	m, _ = update(t, m, sendResultMsg{result: &sender.Result{StatusCode: 500, Pretty: `{"n": 2}`}})

	assert.Equal(t, 500, m.result.StatusCode)
	assert.Contains(t, m.renderResponse(), `"n": 2`)
}

func TestUpdate_WindowSize(t *testing.T) {
	m := New(Config{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 116, m.response.Width)
	assert.Equal(t, 40-(1+1+1+1+(bodyHeight+2)+2+1), m.response.Height)
}

func TestUpdate_Quit(t *testing.T) {
	m := New(Config{})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

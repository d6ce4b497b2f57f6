// Package ui implements the interactive console: a base URL field, a method
// selector with endpoint presets, a path field, a JSON body editor and a
// response pane, with a connection dot fed by a periodic health check.
package ui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wesleyorama2/playground/internal/composer"
	"github.com/wesleyorama2/playground/internal/health"
	"github.com/wesleyorama2/playground/internal/sender"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	bodyHeight    = 8
)

// Config wires the console to its collaborators.
type Config struct {
	BaseURL        string
	Presets        []composer.Preset
	HealthInterval time.Duration
	Sender         *sender.Sender
	Checker        *health.Checker
	Logger         *slog.Logger
}

type focusArea int

const (
	focusBaseURL focusArea = iota
	focusPresets
	focusPath
	focusBody
	focusResponse
	focusCount
)

// Model is the bubbletea model of the console.
type Model struct {
	cfg    Config
	styles styles

	method   string
	baseURL  textinput.Model
	path     textinput.Model
	body     textarea.Model
	response viewport.Model

	focus  focusArea
	preset int

	health  health.State
	probe   health.Probe
	result  *sender.Result
	sending bool

	width  int
	height int
}

// New creates the console model. Missing collaborators get defaults.
func New(cfg Config) Model {
	if cfg.HealthInterval <= 0 {
		cfg.HealthInterval = health.DefaultInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Sender == nil {
		cfg.Sender = sender.New(sender.WithLogger(cfg.Logger))
	}
	if cfg.Checker == nil {
		cfg.Checker = health.NewChecker(health.WithLogger(cfg.Logger))
	}
	if cfg.Presets == nil {
		cfg.Presets = composer.DefaultPresets()
	}

	baseURL := textinput.New()
	baseURL.Prompt = ""
	baseURL.Placeholder = "http://localhost:8000"
	baseURL.SetValue(cfg.BaseURL)

	path := textinput.New()
	path.Prompt = ""
	path.Placeholder = "/health"
	path.SetValue("/health")

	body := textarea.New()
	body.Placeholder = `{"key": "value"}`
	body.ShowLineNumbers = false
	body.Prompt = ""
	body.CharLimit = 0
	body.SetHeight(bodyHeight)

	m := Model{
		cfg:      cfg,
		styles:   defaultStyles(),
		method:   composer.Methods[0],
		baseURL:  baseURL,
		path:     path,
		body:     body,
		response: viewport.New(defaultWidth, defaultHeight),
		preset:   -1,
	}
	m.focusField(focusPath)
	m.layout(defaultWidth, defaultHeight)
	m.response.SetContent(m.renderResponse())
	return m
}

// Init starts the cursor blink and the health check loop. The first probe
// runs immediately.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.checkHealth(), m.scheduleHealthTick())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		return m, nil

	case healthTickMsg:
		return m, tea.Batch(m.checkHealth(), m.scheduleHealthTick())

	case healthResultMsg:
		m.probe = msg.probe
		m.health = msg.probe.State
		return m, nil

	case sendResultMsg:
		m.sending = false
		m.result = msg.result
		m.response.SetContent(m.renderResponse())
		m.response.GotoTop()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.focusField((m.focus + 1) % focusCount)
		return m, nil
	case "shift+tab":
		m.focusField((m.focus + focusCount - 1) % focusCount)
		return m, nil
	case "ctrl+s":
		return m.send()
	case "ctrl+r":
		m.method = composer.NextMethod(m.method)
		return m, nil
	}

	switch m.focus {
	case focusPresets:
		return m.handlePresetKey(msg)
	case focusBaseURL, focusPath:
		if msg.Type == tea.KeyEnter {
			return m.send()
		}
	}

	return m.updateFocused(msg)
}

func (m Model) handlePresetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "left", "h":
		if len(m.cfg.Presets) > 0 {
			m.applyPreset((m.preset - 1 + len(m.cfg.Presets)) % len(m.cfg.Presets))
		}
	case "right", "l":
		if len(m.cfg.Presets) > 0 {
			m.applyPreset((m.preset + 1) % len(m.cfg.Presets))
		}
	case "enter":
		return m.send()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.cfg.Presets) {
				m.applyPreset(i)
			}
		}
	}
	return m, nil
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusBaseURL:
		m.baseURL, cmd = m.baseURL.Update(msg)
	case focusPath:
		m.path, cmd = m.path.Update(msg)
	case focusBody:
		m.body, cmd = m.body.Update(msg)
	case focusResponse:
		m.response, cmd = m.response.Update(msg)
	}
	return m, cmd
}

func (m *Model) focusField(f focusArea) {
	m.focus = f
	m.baseURL.Blur()
	m.path.Blur()
	m.body.Blur()

	switch f {
	case focusBaseURL:
		m.baseURL.Focus()
	case focusPath:
		m.path.Focus()
	case focusBody:
		m.body.Focus()
	}
}

// applyPreset fills the form from the preset at index i
func (m *Model) applyPreset(i int) {
	form := m.form()
	form.Apply(m.cfg.Presets[i])

	m.preset = i
	m.method = form.Method
	m.path.SetValue(form.Path)
	m.body.SetValue(form.Body)
}

// form reads the current field values
func (m Model) form() composer.Form {
	return composer.Form{
		BaseURL: strings.TrimSpace(m.baseURL.Value()),
		Method:  m.method,
		Path:    strings.TrimSpace(m.path.Value()),
		Body:    m.body.Value(),
	}
}

// send starts a request for the current form. Sends are not serialised:
// whichever result arrives last is shown.
func (m Model) send() (tea.Model, tea.Cmd) {
	form := m.form()
	snd := m.cfg.Sender
	logger := m.cfg.Logger

	m.sending = true
	logger.Debug("console send", "method", form.Method, "url", form.URL())

	return m, func() tea.Msg {
		return sendResultMsg{result: snd.Send(context.Background(), form)}
	}
}

func (m Model) checkHealth() tea.Cmd {
	baseURL := strings.TrimSpace(m.baseURL.Value())
	checker := m.cfg.Checker
	return func() tea.Msg {
		return healthResultMsg{probe: checker.Check(context.Background(), baseURL)}
	}
}

func (m Model) scheduleHealthTick() tea.Cmd {
	return tea.Tick(m.cfg.HealthInterval, func(time.Time) tea.Msg {
		return healthTickMsg{}
	})
}

// layout sizes the widgets for a terminal of the given dimensions
func (m *Model) layout(width, height int) {
	m.width = width
	m.height = height

	inner := width - 4
	if inner < 20 {
		inner = 20
	}
	fieldWidth := inner - m.styles.label.GetWidth()

	m.baseURL.Width = fieldWidth
	m.path.Width = fieldWidth - len("DELETE") - 3
	m.body.SetWidth(inner)

	// title, base URL, presets, method/path, body pane, response borders, help
	used := 1 + 1 + 1 + 1 + (bodyHeight + 2) + 2 + 1
	responseHeight := height - used
	if responseHeight < 3 {
		responseHeight = 3
	}
	m.response.Width = inner
	m.response.Height = responseHeight
	m.response.SetContent(m.renderResponse())
}

package ui

import (
	"github.com/wesleyorama2/playground/internal/health"
	"github.com/wesleyorama2/playground/internal/sender"
)

type healthTickMsg struct{}

type healthResultMsg struct {
	probe health.Probe
}

type sendResultMsg struct {
	result *sender.Result
}

package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/playground/internal/sender"
	"github.com/wesleyorama2/playground/internal/ui"
)

var errNotTerminal = errors.New("the console needs an interactive terminal")

func newConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Open the interactive console",
		Long: `Open a full-screen console with a base URL field, a method selector,
endpoint presets, a path field, a JSON body editor and a response pane. A dot
in the header shows whether the API's health endpoint answers.

Keys: tab/shift+tab move focus, ctrl+s sends, ctrl+r cycles the method,
1-9 or left/right on the presets row apply a preset, ctrl+c quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(cmd.InOrStdin()) || !isTerminal(cmd.OutOrStdout()) {
				return errNotTerminal
			}

			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			model := ui.New(consoleConfig(s))
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("console failed: %w", err)
			}
			return nil
		},
	}
}

// consoleConfig wires the console to the resolved settings
func consoleConfig(s *settings) ui.Config {
	interval := s.config.HealthIntervalDuration()
	return ui.Config{
		BaseURL:        s.baseURL,
		Presets:        s.config.Presets,
		HealthInterval: interval,
		Sender: sender.New(
			sender.WithTimeout(s.timeout),
			sender.WithLogger(s.logger),
		),
		Checker: newChecker(s, interval),
		Logger:  s.logger,
	}
}

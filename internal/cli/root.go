package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/playground/internal/config"
	"github.com/wesleyorama2/playground/internal/logging"
)

const appName = "playground"

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     appName,
		Short:   "A terminal playground for exercising a JSON REST API",
		Version: version,
		Long: `Playground sends hand-built requests to a JSON REST API and shows the
highlighted response, with a health indicator that polls the API's /health
endpoint. Use the one-shot commands from scripts, or open the interactive
console.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			// If no subcommand is provided, print help
			cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("base-url", "", fmt.Sprintf("API base URL (default $%s or %s)", config.BaseURLEnv, config.DefaultBaseURL))
	flags.String("config", "", fmt.Sprintf("Path to a config file (default ./%s when present)", config.DefaultFileName))
	flags.Duration("timeout", 0, fmt.Sprintf("Request timeout (default %s)", config.DefaultTimeout))
	flags.Bool("no-color", false, "Disable colored output")
	flags.Bool("debug", false, "Write debug logs to the playground log file")

	cmd.AddCommand(newSendCmd())
	cmd.AddCommand(newHealthCmd())
	cmd.AddCommand(newPresetsCmd())
	cmd.AddCommand(newConsoleCmd())

	return cmd
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// settings is the resolved configuration shared by every subcommand.
// Precedence is flag, then config file, then defaults.
type settings struct {
	config  *config.Config
	baseURL string
	timeout time.Duration
	noColor bool
	logger  *slog.Logger
	closer  io.Closer
}

func (s *settings) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	configFile, _ := cmd.Flags().GetString("config")
	baseURL, _ := cmd.Flags().GetString("base-url")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	noColor, _ := cmd.Flags().GetBool("no-color")
	debug, _ := cmd.Flags().GetBool("debug")

	if configFile == "" {
		configFile = config.FindConfig()
	}

	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	if errs := config.ValidateConfig(cfg); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}

	if timeout <= 0 {
		timeout = cfg.TimeoutDuration()
	}

	logger, closer, err := logging.New(appName, debug)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	return &settings{
		config:  cfg,
		baseURL: cfg.BaseURL,
		timeout: timeout,
		noColor: noColor || !isTerminal(cmd.OutOrStdout()),
		logger:  logger,
		closer:  closer,
	}, nil
}

// isTerminal reports whether stream is a terminal. Streams that are not
// files, such as test buffers, never are.
func isTerminal(stream interface{}) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

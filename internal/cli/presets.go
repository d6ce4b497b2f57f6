package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/playground/internal/composer"
	"github.com/wesleyorama2/playground/internal/output"
)

func newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the endpoint presets",
		Long: `List the endpoint presets offered by the console, numbered as they are
bound to the 1-9 keys. Presets come from the config file when it defines
any, and from the built-in catalogue otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("output")
			outputFormat, err := output.ParseOutputFormat(format)
			if err != nil {
				return err
			}

			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			return writePresets(cmd.OutOrStdout(), s.config.Presets, outputFormat)
		},
	}

	cmd.Flags().StringP("output", "o", "text", "Output format: text, json or yaml")

	return cmd
}

func writePresets(out io.Writer, presets []composer.Preset, format output.OutputFormat) error {
	switch format {
	case output.FormatJSON:
		data, err := json.MarshalIndent(presets, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal presets: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	case output.FormatYAML:
		data, err := yaml.Marshal(presets)
		if err != nil {
			return fmt.Errorf("failed to marshal presets: %w", err)
		}
		fmt.Fprint(out, string(data))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tMETHOD\tPATH\tNAME\tSAMPLE BODY")
	for i, p := range presets {
		sample := "-"
		if composer.MethodAllowsBody(p.Method) {
			if _, ok := composer.SampleBody(p.Path); ok {
				sample = "yes"
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, p.Method, p.Path, p.Label(), sample)
	}
	return w.Flush()
}

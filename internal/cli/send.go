package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/playground/internal/composer"
	"github.com/wesleyorama2/playground/internal/output"
	"github.com/wesleyorama2/playground/internal/query"
	"github.com/wesleyorama2/playground/internal/schema"
	"github.com/wesleyorama2/playground/internal/sender"
)

// sendOptions holds the flags of the send command
type sendOptions struct {
	method  string
	path    string
	data    string
	sample  bool
	verbose bool
	format  output.OutputFormat
	query   string
	schema  string
}

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send METHOD PATH",
		Short: "Send one request to the API and print the response",
		Long: `Send one request to the API and print the status, elapsed time and the
highlighted JSON response. PATH is appended to the base URL as-is, so it may
carry a query string:

  playground send GET /search?q=python
  playground send POST /projects --sample
  playground send PUT /profile/1 -d '{"name": "Jane"}'

A non-2xx status is printed like any other response. The command fails when
the API cannot be reached, the body is not JSON, or --schema validation fails.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, _ := cmd.Flags().GetString("data")
			sample, _ := cmd.Flags().GetBool("sample")
			verbose, _ := cmd.Flags().GetBool("verbose")
			format, _ := cmd.Flags().GetString("output")
			q, _ := cmd.Flags().GetString("query")
			schemaFile, _ := cmd.Flags().GetString("schema")

			outputFormat, err := output.ParseOutputFormat(format)
			if err != nil {
				return err
			}

			body, err := readData(data)
			if err != nil {
				return err
			}

			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			opts := sendOptions{
				method:  args[0],
				path:    args[1],
				data:    body,
				sample:  sample,
				verbose: verbose,
				format:  outputFormat,
				query:   q,
				schema:  schemaFile,
			}
			return runSend(cmd.Context(), cmd.OutOrStdout(), s, opts)
		},
	}

	cmd.Flags().StringP("data", "d", "", "Request body, or @file to read it from a file")
	cmd.Flags().Bool("sample", false, "Pre-fill the body with the sample for PATH when --data is empty")
	cmd.Flags().BoolP("verbose", "v", false, "Show response headers")
	cmd.Flags().StringP("output", "o", "text", "Output format: text, json or yaml")
	cmd.Flags().StringP("query", "q", "", "Print only the value at this JSON path (e.g. items.0.name)")
	cmd.Flags().String("schema", "", "Validate the response body against a JSON Schema file")

	return cmd
}

// readData resolves the --data flag, reading the body from a file when the
// value starts with @.
func readData(data string) (string, error) {
	if !strings.HasPrefix(data, "@") {
		return data, nil
	}
	content, err := os.ReadFile(strings.TrimPrefix(data, "@"))
	if err != nil {
		return "", fmt.Errorf("error reading request body: %w", err)
	}
	return string(content), nil
}

// buildForm turns the send arguments into a composer form
func buildForm(baseURL string, opts sendOptions) (composer.Form, error) {
	method := strings.ToUpper(opts.method)
	if !stringInSlice(method, composer.Methods) {
		return composer.Form{}, fmt.Errorf("unsupported method '%s', must be one of: %s", opts.method, strings.Join(composer.Methods, ", "))
	}

	path := opts.path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	form := composer.Form{
		BaseURL: baseURL,
		Method:  method,
		Path:    path,
		Body:    opts.data,
	}
	if opts.sample && strings.TrimSpace(form.Body) == "" && composer.MethodAllowsBody(method) {
		if sample, ok := composer.SampleBody(path); ok {
			form.Body = sample
		}
	}
	return form, nil
}

func runSend(ctx context.Context, out io.Writer, s *settings, opts sendOptions) error {
	form, err := buildForm(s.baseURL, opts)
	if err != nil {
		return err
	}

	var validator *schema.Schema
	if opts.schema != "" {
		validator, err = schema.Load(opts.schema)
		if err != nil {
			return err
		}
	}

	snd := sender.New(
		sender.WithTimeout(s.timeout),
		sender.WithLogger(s.logger),
	)
	result := snd.Send(ctx, form)

	if opts.query != "" {
		if result.Failed() {
			return result.Err
		}
		value, err := query.Extract(result.Body, opts.query)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, value)
		return validateResult(out, validator, result, false, s.noColor)
	}

	formatter := output.GetFormatter(opts.format, opts.verbose, s.noColor)
	if opts.format == output.FormatText {
		fmt.Fprint(out, formatter.FormatRequest(form))
		fmt.Fprintln(out)
	}
	fmt.Fprint(out, formatter.FormatResult(result))

	if result.Failed() {
		return result.Err
	}
	return validateResult(out, validator, result, opts.format == output.FormatText, s.noColor)
}

// validateResult checks the response body against the schema, if one was
// given, and reports success when announce is set.
func validateResult(out io.Writer, validator *schema.Schema, result *sender.Result, announce, noColor bool) error {
	if validator == nil {
		return nil
	}
	if err := validator.Validate(result.Body); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if announce {
		fmt.Fprintf(out, "\n%s Schema valid\n", output.SuccessIcon(noColor))
	}
	return nil
}

// stringInSlice checks if a string is in a slice
func stringInSlice(str string, slice []string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}

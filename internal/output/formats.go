package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/playground/internal/composer"
	"github.com/wesleyorama2/playground/internal/sender"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs in YAML format
	FormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat validates a --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatText, FormatJSON, FormatYAML:
		return OutputFormat(s), nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// FormatProvider is an interface for different output formatters
type FormatProvider interface {
	FormatRequest(form composer.Form) string
	FormatResult(r *sender.Result) string
}

// RequestData represents the structured data of a request
type RequestData struct {
	Method string `json:"method" yaml:"method"`
	URL    string `json:"url" yaml:"url"`
	Body   string `json:"body,omitempty" yaml:"body,omitempty"`
}

// ResultData represents the structured data of a send result
type ResultData struct {
	Method     string      `json:"method" yaml:"method"`
	URL        string      `json:"url" yaml:"url"`
	OK         bool        `json:"ok" yaml:"ok"`
	StatusCode int         `json:"statusCode,omitempty" yaml:"statusCode,omitempty"`
	Status     string      `json:"status,omitempty" yaml:"status,omitempty"`
	ElapsedMs  int64       `json:"elapsedMs" yaml:"elapsedMs"`
	Body       interface{} `json:"body,omitempty" yaml:"body,omitempty"`
	Error      string      `json:"error,omitempty" yaml:"error,omitempty"`
	Timestamp  string      `json:"timestamp" yaml:"timestamp"`
}

func newRequestData(form composer.Form) RequestData {
	data := RequestData{Method: form.Method, URL: form.URL()}
	if form.HasBody() {
		data.Body = form.Body
	}
	return data
}

func newResultData(r *sender.Result, body interface{}) ResultData {
	data := ResultData{
		Method:     r.Method,
		URL:        r.URL,
		OK:         r.OK(),
		StatusCode: r.StatusCode,
		Status:     r.Status,
		ElapsedMs:  r.ElapsedMillis(),
		Timestamp:  r.SentAt.Format(time.RFC3339),
	}
	if r.Failed() {
		data.Error = r.Err.Error()
		data.StatusCode = 0
		data.Status = ""
		return data
	}
	data.Body = body
	return data
}

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

func (f *JSONFormatter) marshal(v interface{}) string {
	var out []byte
	var err error
	if f.Pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, "failed to marshal output: "+err.Error())
	}
	return string(out) + "\n"
}

// FormatRequest formats a request as JSON
func (f *JSONFormatter) FormatRequest(form composer.Form) string {
	return f.marshal(newRequestData(form))
}

// FormatResult formats a result as JSON. json.Number values keep the
// server's exact numeric text.
func (f *JSONFormatter) FormatResult(r *sender.Result) string {
	return f.marshal(newResultData(r, r.Data))
}

// YAMLFormatter formats output as YAML
type YAMLFormatter struct{}

func (f *YAMLFormatter) marshal(v interface{}) string {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %q\n", "failed to marshal output: "+err.Error())
	}
	return string(out)
}

// FormatRequest formats a request as YAML
func (f *YAMLFormatter) FormatRequest(form composer.Form) string {
	return f.marshal(newRequestData(form))
}

// FormatResult formats a result as YAML. Numbers keep the server's exact
// text and become plain YAML ints or floats.
func (f *YAMLFormatter) FormatResult(r *sender.Result) string {
	return f.marshal(newResultData(r, yamlValue(r.Data)))
}

// yamlValue rewrites json.Number values as YAML scalar nodes, which yaml.v3
// would otherwise quote as strings.
func yamlValue(v interface{}) interface{} {
	switch v := v.(type) {
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(v.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.String()}
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			out[key] = yamlValue(value)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, value := range v {
			out[i] = yamlValue(value)
		}
		return out
	default:
		return v
	}
}

// GetFormatter returns a formatter for the specified output format
func GetFormatter(format OutputFormat, verbose bool, noColor bool) FormatProvider {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return NewFormatter(verbose, noColor)
	}
}

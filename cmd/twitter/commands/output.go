package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/twitter-client/internal/constants"
	"github.com/fivetwenty-io/twitter-client/pkg/twitter"
)

func isOutputFormat(format string) bool {
	switch format {
	case constants.FormatJSON, constants.FormatYAML, constants.FormatTable, constants.FormatRaw:
		return true
	default:
		return false
	}
}

// render writes a call result in the requested output format. String
// results (xml and raw calls) are always written as is.
func render(out io.Writer, result interface{}, format string) error {
	if s, ok := result.(string); ok {
		_, err := io.WriteString(out, s)
		if err == nil && !strings.HasSuffix(s, "\n") {
			_, err = io.WriteString(out, "\n")
		}

		return err
	}

	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		return encoder.Encode(result)
	case constants.FormatRaw:
		return json.NewEncoder(out).Encode(result)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(normalize(result))
	case constants.FormatTable:
		return renderTable(out, result)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownOutputFormat, format)
	}
}

// normalize replaces json.Number values so YAML shows numbers, not quoted strings.
func normalize(value interface{}) interface{} {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}

		if f, err := v.Float64(); err == nil {
			return f
		}

		return v.String()
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, item := range v {
			out[k] = normalize(item)
		}

		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}

		return out
	default:
		return v
	}
}

// renderTable prints a list of objects with one column per scalar field, a
// single object as property/value rows, and anything else as a single cell.
func renderTable(out io.Writer, result interface{}) error {
	table := tablewriter.NewWriter(out)

	switch v := result.(type) {
	case []interface{}:
		columns := scalarColumns(v)
		if len(columns) == 0 {
			table.Header("Value")

			for _, item := range v {
				_ = table.Append([]string{cell(item)})
			}

			break
		}

		header := make([]any, len(columns))
		for i, c := range columns {
			header[i] = c
		}

		table.Header(header...)

		for _, item := range v {
			obj, _ := item.(map[string]interface{})
			row := make([]string, len(columns))

			for i, c := range columns {
				row[i] = cell(obj[c])
			}

			_ = table.Append(row)
		}
	case map[string]interface{}:
		table.Header("Property", "Value")

		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			_ = table.Append([]string{k, cell(v[k])})
		}
	default:
		table.Header("Value")
		_ = table.Append([]string{cell(v)})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// scalarColumns returns the sorted keys holding scalar values in any object of items.
func scalarColumns(items []interface{}) []string {
	seen := make(map[string]bool)

	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		for k, value := range obj {
			switch value.(type) {
			case map[string]interface{}, []interface{}:
			default:
				seen[k] = true
			}
		}
	}

	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}

	sort.Strings(columns)

	return columns
}

func cell(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]interface{}, []interface{}:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}

		return string(data)
	default:
		return fmt.Sprint(v)
	}
}

var (
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	detailLabel = color.New(color.FgYellow).SprintFunc()
)

// PrintError writes err to out, listing Twitter's error messages when the
// reply carried any.
func PrintError(out io.Writer, err error) {
	_, _ = fmt.Fprintf(out, "%s %v\n", errorLabel("Error:"), err)

	httpErr := &twitter.HTTPError{}
	if !errors.As(err, &httpErr) {
		return
	}

	for _, apiErr := range httpErr.APIErrors() {
		if apiErr.Code != 0 {
			_, _ = fmt.Fprintf(out, "  %s %s\n", detailLabel(fmt.Sprintf("[%d]", apiErr.Code)), apiErr.Message)
		} else {
			_, _ = fmt.Fprintf(out, "  %s\n", detailLabel(apiErr.Message))
		}
	}
}

// SetNoColor disables coloured output.
func SetNoColor(noColor bool) {
	if noColor {
		color.NoColor = true
	}
}

package twitter

import "fmt"

// Format selects the response representation, which is also the URL extension.
type Format string

const (
	// FormatJSON decodes response bodies as JSON.
	FormatJSON Format = "json"
	// FormatXML returns the raw XML body.
	FormatXML Format = "xml"
	// FormatRaw requests the endpoint without an extension and returns the raw body.
	FormatRaw Format = ""
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatXML, FormatRaw:
		return f, nil
	default:
		return "", fmt.Errorf("%w '%s'", ErrUnknownFormat, s)
	}
}

// Extension returns the URL suffix for the format, including the dot.
func (f Format) Extension() string {
	if f == FormatRaw {
		return ""
	}

	return "." + string(f)
}

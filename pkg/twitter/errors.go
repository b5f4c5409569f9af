package twitter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Static errors for err113 compliance.
var (
	ErrConflictingAuth   = errors.New("can't specify credentials and an explicit auth simultaneously")
	ErrUnknownFormat     = errors.New("unknown data format")
	ErrTransportRequired = errors.New("transport is required")
	ErrTrailingData      = errors.New("unexpected data after json value")
)

// ConfigurationError is returned by New when the options are inconsistent.
type ConfigurationError struct {
	Err error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return "twitter: invalid configuration: " + e.Err.Error()
}

// Unwrap returns the underlying sentinel error.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// HTTPError is returned when Twitter answers a call with a status other than 2xx or 304.
type HTTPError struct {
	// Err is the error reported by the transport.
	Err error
	// StatusCode is the HTTP status of the reply.
	StatusCode int
	// URL is the exact URL the request was sent to, query string included.
	URL string
	// Format is the response format the call was made with.
	Format Format
	// Segments are the path segments of the call before argument substitution.
	Segments []string
	// Body is the server's error body.
	Body []byte
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf(
		"Twitter sent status %d for URL: %s (format: %q) using path segments: (%s)\ndetails: %s",
		e.StatusCode, e.URL, string(e.Format), strings.Join(e.Segments, ", "), string(e.Body))
}

// Unwrap returns the transport error.
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// APIError is a single entry of Twitter's JSON error body.
type APIError struct {
	Code    int    `json:"code"    yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (code: %d)", e.Message, e.Code)
}

// ErrorResponse is the JSON error envelope Twitter sends.
type ErrorResponse struct {
	Errors []APIError `json:"errors"`
	Error  string     `json:"error,omitempty"`
}

// APIErrors parses the error body. It returns nil when the body is not a
// Twitter JSON error document.
func (e *HTTPError) APIErrors() []APIError {
	resp, err := ParseErrorResponse(e.Body)
	if err != nil {
		return nil
	}

	if len(resp.Errors) == 0 && resp.Error != "" {
		return []APIError{{Message: resp.Error}}
	}

	return resp.Errors
}

// ParseErrorResponse parses an error response from JSON.
func ParseErrorResponse(data []byte) (*ErrorResponse, error) {
	var errResp ErrorResponse

	err := json.Unmarshal(data, &errResp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal error response: %w", err)
	}

	return &errResp, nil
}

func hasStatus(err error, code int) bool {
	httpErr := &HTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}

	statusErr := &StatusError{}
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == code
	}

	return false
}

// IsNotFound checks if the error is a 404 reply.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is a 401 reply.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a 403 reply.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsRateLimited checks if the error is a 429 reply, or the 420 "enhance your calm" Twitter used before it.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests) || hasStatus(err, statusEnhanceYourCalm)
}

const statusEnhanceYourCalm = 420

package twitter

import (
	"context"
	"fmt"
	"net/http"
)

// Request is a fully assembled HTTP request handed to a Transport.
type Request struct {
	Method   string
	URL      string
	Headers  http.Header
	Body     []byte
	Metadata map[string]interface{}
}

// Response is a reply from a Transport. Response interceptors also receive
// one for failed sends, with Error set and the status and body taken from a
// *StatusError when there is one.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// Transport sends a single request and returns the response.
//
// Implementations report any non-2xx reply as a *StatusError so the caller
// can inspect the status code and the server's error body. Network failures
// are returned as-is.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc adapts a plain function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

// Send implements Transport.
func (f TransportFunc) Send(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// StatusError is returned by a Transport when the server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("http status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

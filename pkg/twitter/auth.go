package twitter

import (
	"encoding/base64"
	"net/url"
)

// Auth produces request headers and encodes (and possibly signs) request parameters.
type Auth interface {
	// GenerateHeaders returns headers to add to every request.
	GenerateHeaders() map[string]string
	// EncodeParams encodes params for the given final URL (without query) and method.
	EncodeParams(baseURL, method string, params Args) (string, error)
}

// NoAuth sends requests without credentials.
type NoAuth struct{}

// GenerateHeaders implements Auth.
func (NoAuth) GenerateHeaders() map[string]string {
	return map[string]string{}
}

// EncodeParams implements Auth.
func (NoAuth) EncodeParams(_, _ string, params Args) (string, error) {
	return params.Encode(), nil
}

// BasicAuth authenticates with an email (or screen name) and password.
type BasicAuth struct {
	Username string
	Password string
}

// NewBasicAuth creates an email/password auth.
func NewBasicAuth(username, password string) *BasicAuth {
	return &BasicAuth{Username: username, Password: password}
}

// GenerateHeaders implements Auth.
func (a *BasicAuth) GenerateHeaders() map[string]string {
	token := base64.StdEncoding.EncodeToString([]byte(a.Username + ":" + a.Password))

	return map[string]string{"Authorization": "Basic " + token}
}

// EncodeParams implements Auth.
func (a *BasicAuth) EncodeParams(_, _ string, params Args) (string, error) {
	return params.Encode(), nil
}

// BearerAuth authenticates with an application-only bearer token.
type BearerAuth struct {
	Token string
}

// GenerateHeaders implements Auth.
func (a *BearerAuth) GenerateHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer " + a.Token}
}

// EncodeParams implements Auth.
func (a *BearerAuth) EncodeParams(_, _ string, params Args) (string, error) {
	return params.Encode(), nil
}

// Args are the named arguments of a call.
type Args map[string]string

// Encode encodes the arguments as a form, sorted by key.
func (a Args) Encode() string {
	values := make(url.Values, len(a))
	for k, v := range a {
		values.Set(k, v)
	}

	return values.Encode()
}

func (a Args) clone() Args {
	out := make(Args, len(a))
	for k, v := range a {
		out[k] = v
	}

	return out
}

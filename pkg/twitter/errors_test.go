package twitter_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/twitter-client/pkg/twitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPError_Error(t *testing.T) {
	t.Parallel()

	err := &twitter.HTTPError{
		Err:        &twitter.StatusError{StatusCode: http.StatusNotFound},
		StatusCode: http.StatusNotFound,
		URL:        "https://twitter.com/statuses/show/1.json",
		Format:     twitter.FormatJSON,
		Segments:   []string{"statuses", "show"},
		Body:       []byte(`{"error":"Not found"}`),
	}

	assert.Equal(t,
		"Twitter sent status 404 for URL: https://twitter.com/statuses/show/1.json (format: \"json\") "+
			"using path segments: (statuses, show)\ndetails: {\"error\":\"Not found\"}",
		err.Error())
}

func TestHTTPError_APIErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want []twitter.APIError
	}{
		{
			name: "errors array",
			body: `{"errors":[{"code":88,"message":"Rate limit exceeded"}]}`,
			want: []twitter.APIError{{Code: 88, Message: "Rate limit exceeded"}},
		},
		{
			name: "legacy error string",
			body: `{"error":"Could not authenticate you.","request":"/account/verify_credentials.json"}`,
			want: []twitter.APIError{{Message: "Could not authenticate you."}},
		},
		{
			name: "xml body",
			body: `<?xml version="1.0"?><hash><error>Not found</error></hash>`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := &twitter.HTTPError{StatusCode: http.StatusBadRequest, Body: []byte(tt.body)}
			assert.Equal(t, tt.want, err.APIErrors())
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	err := &twitter.APIError{Code: 34, Message: "Sorry, that page does not exist"}
	assert.Equal(t, "Sorry, that page does not exist (code: 34)", err.Error())
}

func TestParseErrorResponse(t *testing.T) {
	t.Parallel()

	resp, err := twitter.ParseErrorResponse([]byte(`{"errors":[{"code":32,"message":"Could not authenticate you"}]}`))
	require.NoError(t, err)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, 32, resp.Errors[0].Code)

	_, err = twitter.ParseErrorResponse([]byte(`not json`))
	assert.Error(t, err)
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	wrap := func(code int) error {
		return fmt.Errorf("fetching timeline: %w", &twitter.HTTPError{
			Err:        &twitter.StatusError{StatusCode: code},
			StatusCode: code,
		})
	}

	assert.True(t, twitter.IsNotFound(wrap(http.StatusNotFound)))
	assert.True(t, twitter.IsUnauthorized(wrap(http.StatusUnauthorized)))
	assert.True(t, twitter.IsForbidden(wrap(http.StatusForbidden)))
	assert.True(t, twitter.IsRateLimited(wrap(http.StatusTooManyRequests)))
	assert.True(t, twitter.IsRateLimited(wrap(420)))
	assert.True(t, twitter.IsNotFound(&twitter.StatusError{StatusCode: http.StatusNotFound}))

	assert.False(t, twitter.IsNotFound(wrap(http.StatusInternalServerError)))
	assert.False(t, twitter.IsRateLimited(errors.New("boom")))
	assert.False(t, twitter.IsUnauthorized(nil))
}

func TestConfigurationError_Unwrap(t *testing.T) {
	t.Parallel()

	err := &twitter.ConfigurationError{Err: twitter.ErrConflictingAuth}

	assert.ErrorIs(t, err, twitter.ErrConflictingAuth)
	assert.Equal(t,
		"twitter: invalid configuration: can't specify credentials and an explicit auth simultaneously",
		err.Error())
}

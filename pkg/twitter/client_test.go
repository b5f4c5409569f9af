package twitter_test

import (
	"errors"
	"testing"

	"github.com/fivetwenty-io/twitter-client/pkg/twitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, &recordingTransport{})

	assert.Equal(t, twitter.FormatJSON, client.Format())
	assert.Equal(t, twitter.DefaultDomain, client.Domain())
	assert.Empty(t, client.Call().Segments())

	req, err := client.Path("help", "test").Prepare(nil)
	require.NoError(t, err)
	assert.Equal(t, "https://twitter.com/help/test.json", req.URL)
	assert.Empty(t, req.Headers.Get("Authorization"))
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNew_ConfigurationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []twitter.Option
		wantErr error
	}{
		{
			name: "credentials and auth",
			opts: []twitter.Option{
				twitter.WithTransport(&recordingTransport{}),
				twitter.WithCredentials("me", "secret"),
				twitter.WithAuth(twitter.NoAuth{}),
			},
			wantErr: twitter.ErrConflictingAuth,
		},
		{
			name: "empty credentials still conflict",
			opts: []twitter.Option{
				twitter.WithTransport(&recordingTransport{}),
				twitter.WithCredentials("", ""),
				twitter.WithAuth(&twitter.BearerAuth{Token: "x"}),
			},
			wantErr: twitter.ErrConflictingAuth,
		},
		{
			name: "unknown format",
			opts: []twitter.Option{
				twitter.WithTransport(&recordingTransport{}),
				twitter.WithFormat("atom"),
			},
			wantErr: twitter.ErrUnknownFormat,
		},
		{
			name:    "no transport",
			opts:    nil,
			wantErr: twitter.ErrTransportRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, err := twitter.New(tt.opts...)
			require.Error(t, err)
			assert.Nil(t, client)

			configErr := &twitter.ConfigurationError{}
			require.True(t, errors.As(err, &configErr))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestNew_UnknownFormatNamesFormat(t *testing.T) {
	t.Parallel()

	_, err := twitter.New(twitter.WithTransport(&recordingTransport{}), twitter.WithFormat("atom"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "atom")
}

func TestNew_Formats(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"json", "xml", ""} {
		client := newTestClient(t, &recordingTransport{}, twitter.WithFormat(format))
		assert.Equal(t, twitter.Format(format), client.Format())
	}
}

func TestNew_CredentialsUseBasicAuth(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, &recordingTransport{}, twitter.WithCredentials("billybob", "p@ss:word"))

	req, err := client.Path("account", "verify_credentials").Prepare(nil)
	require.NoError(t, err)
	assert.Equal(t, "Basic YmlsbHlib2I6cEBzczp3b3Jk", req.Headers.Get("Authorization"))
}

func TestNew_APIVersionIsFirstSegment(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, &recordingTransport{},
		twitter.WithAPIVersion("1"),
		twitter.WithDomain("api.twitter.com"),
	)

	assert.Equal(t, []string{"1"}, client.Call().Segments())
	assert.Equal(t, []string{"1", "statuses", "home_timeline"}, client.Path("statuses", "home_timeline").Segments())

	req, err := client.Path("statuses", "home_timeline").Prepare(nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.twitter.com/1/statuses/home_timeline.json", req.URL)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	format, err := twitter.ParseFormat("xml")
	require.NoError(t, err)
	assert.Equal(t, twitter.FormatXML, format)
	assert.Equal(t, ".xml", format.Extension())
	assert.Equal(t, ".json", twitter.FormatJSON.Extension())
	assert.Empty(t, twitter.FormatRaw.Extension())

	_, err = twitter.ParseFormat("JSON")
	require.ErrorIs(t, err, twitter.ErrUnknownFormat)
}

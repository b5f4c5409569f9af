package twitterclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fivetwenty-io/twitter-client/pkg/twitter"
	"github.com/fivetwenty-io/twitter-client/pkg/twitterclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serverOptions points a client at an httptest server over plain HTTP.
func serverOptions(server *httptest.Server) []twitter.Option {
	return []twitter.Option{
		twitter.WithDomain(strings.TrimPrefix(server.URL, "http://")),
		twitter.WithSecure(false),
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	client, err := twitterclient.New(nil)
	require.NoError(t, err)
	assert.Equal(t, twitter.DefaultDomain, client.Domain())
	assert.Equal(t, twitter.FormatJSON, client.Format())
}

func TestNew_ConfigurationError(t *testing.T) {
	t.Parallel()

	_, err := twitterclient.NewWithPassword("me", "secret", twitter.WithAuth(twitter.NoAuth{}))
	require.ErrorIs(t, err, twitter.ErrConflictingAuth)
}

func TestNewSearch(t *testing.T) {
	t.Parallel()

	client, err := twitterclient.NewSearch()
	require.NoError(t, err)
	assert.Equal(t, twitter.SearchDomain, client.Domain())

	req, err := client.Path("search").Prepare(twitter.Args{"q": "#gaza"})
	require.NoError(t, err)
	assert.Equal(t, "https://search.twitter.com/search.json?q=%23gaza", req.URL)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RoundTrip(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/1/statuses/home_timeline.json":
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "2", r.URL.Query().Get("count"))
			assert.Equal(t, "Basic bWU6c2VjcmV0", r.Header.Get("Authorization"))
			assert.Equal(t, "myapp", r.Header.Get(twitter.HeaderClient))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":1234567890123456789,"text":"hello"}]`))
		case "/1/statuses/update.json":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

			body, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			assert.Equal(t, "source=myapp&status=hi+there", string(body))

			_, _ = w.Write([]byte(`{"id":1,"text":"hi there"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := twitterclient.NewWithPassword("me", "secret", append(serverOptions(server),
		twitter.WithAPIVersion("1"),
		twitter.WithAgent("myapp"),
	)...)
	require.NoError(t, err)

	ctx := context.Background()

	result, err := client.Path("statuses", "home_timeline").Do(ctx, twitter.Args{"count": "2"})
	require.NoError(t, err)

	tweets, ok := result.([]interface{})
	require.True(t, ok)
	require.Len(t, tweets, 1)

	tweet, ok := tweets[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "1234567890123456789", tweet["id"].(json.Number).String())

	result, err = client.Path("statuses", "update").Do(ctx, twitter.Args{"status": "hi there"})
	require.NoError(t, err)
	assert.Equal(t, "hi there", result.(map[string]interface{})["text"])
}

func TestClient_RawFormat(t *testing.T) {
	t.Parallel()

	const body = `<?xml version="1.0" encoding="UTF-8"?><statuses type="array"></statuses>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/statuses/public_timeline.xml", r.URL.Path)
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	client, err := twitterclient.New(nil, append(serverOptions(server), twitter.WithFormat("xml"))...)
	require.NoError(t, err)

	result, err := client.Path("statuses", "public_timeline").Do(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, body, result)
}

func TestClient_NotModified(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	}))
	defer server.Close()

	client, err := twitterclient.New(nil, serverOptions(server)...)
	require.NoError(t, err)

	result, err := client.Path("statuses", "friends_timeline").Do(context.Background(), twitter.Args{"since_id": "5"})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{}, result)
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors":[{"code":34,"message":"Sorry, that page does not exist"}]}`))
	}))
	defer server.Close()

	client, err := twitterclient.New(nil, serverOptions(server)...)
	require.NoError(t, err)

	_, err = client.Path("statuses", "show").Do(context.Background(), twitter.Args{"id": "42"})
	require.Error(t, err)
	assert.True(t, twitter.IsNotFound(err))

	httpErr := &twitter.HTTPError{}
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, server.URL+"/statuses/show/42.json", httpErr.URL)
	assert.Equal(t, []string{"statuses", "show"}, httpErr.Segments)
	assert.Equal(t, []twitter.APIError{{Code: 34, Message: "Sorry, that page does not exist"}}, httpErr.APIErrors())
	assert.Contains(t, err.Error(), "Sorry, that page does not exist")
}

func TestClient_NoRetryByDefault(t *testing.T) {
	t.Parallel()

	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := twitterclient.New(nil, serverOptions(server)...)
	require.NoError(t, err)

	_, err = client.Path("help", "test").Do(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestClient_ConfiguredRetries(t *testing.T) {
	t.Parallel()

	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)

			return
		}

		_, _ = w.Write([]byte(`"ok"`))
	}))
	defer server.Close()

	config := &twitterclient.Config{
		RetryMax:     3,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	}

	client, err := twitterclient.New(config, serverOptions(server)...)
	require.NoError(t, err)

	result, err := client.Path("help", "test").Do(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestClient_MetricsAndUserAgent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "custom-agent/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`true`))
	}))
	defer server.Close()

	metrics := twitter.NewMetricsCollector()
	config := &twitterclient.Config{
		UserAgent: "custom-agent/1.0",
		Metrics:   metrics,
		RateLimit: 100,
		RateBurst: 5,
	}

	client, err := twitterclient.New(config, serverOptions(server)...)
	require.NoError(t, err)

	for range 2 {
		_, err = client.Path("help", "test").Do(context.Background(), nil)
		require.NoError(t, err)
	}

	snapshot := metrics.GetMetrics("GET /help/test.json")
	require.NotNil(t, snapshot)
	assert.Equal(t, int64(2), snapshot.TotalRequests)
	assert.Equal(t, int64(0), snapshot.TotalErrors)
}

func TestClient_ContextCancelled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client, err := twitterclient.New(nil, serverOptions(server)...)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Path("help", "test").Do(ctx, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	httpErr := &twitter.HTTPError{}
	assert.False(t, errors.As(err, &httpErr))
}

package twitter_test

import (
	"context"
	"sync"
	"testing"

	"github.com/fivetwenty-io/twitter-client/pkg/twitter"
	"github.com/stretchr/testify/require"
)

// recordingTransport captures requests and replies with a canned response or error.
type recordingTransport struct {
	mu       sync.Mutex
	requests []*twitter.Request
	resp     *twitter.Response
	err      error
}

func (r *recordingTransport) Send(ctx context.Context, req *twitter.Request) (*twitter.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = append(r.requests, req)

	if r.err != nil {
		return nil, r.err
	}

	if r.resp != nil {
		return r.resp, nil
	}

	return &twitter.Response{StatusCode: 200, Body: []byte(`[]`)}, nil
}

func (r *recordingTransport) last(t *testing.T) *twitter.Request {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	require.NotEmpty(t, r.requests, "no request was sent")

	return r.requests[len(r.requests)-1]
}

func newTestClient(t *testing.T, transport twitter.Transport, opts ...twitter.Option) *twitter.Client {
	t.Helper()

	client, err := twitter.New(append([]twitter.Option{twitter.WithTransport(transport)}, opts...)...)
	require.NoError(t, err)

	return client
}

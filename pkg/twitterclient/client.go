// Package twitterclient provides the main entry point for creating Twitter API clients
package twitterclient

import (
	"time"

	"github.com/fivetwenty-io/twitter-client/internal/constants"
	twhttp "github.com/fivetwenty-io/twitter-client/internal/http"
	"github.com/fivetwenty-io/twitter-client/pkg/twitter"
)

// Config holds transport settings for the client built by New.
//
// The zero value (or a nil *Config) is valid: a single attempt per call,
// DefaultHTTPTimeout per attempt, no client-side rate limit.
type Config struct {
	// HTTPTimeout bounds a single HTTP attempt. Per-call deadlines should be
	// set on the context passed to Call.Do.
	HTTPTimeout time.Duration
	// RetryMax enables transport-level retries of connection errors, 429 and
	// 5xx replies. Zero disables retries.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration
	// RateLimit, when positive, caps calls per second made through the client.
	RateLimit float64
	// RateBurst is the burst allowed by RateLimit.
	RateBurst int
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables request/response logging when Logger is set.
	Debug bool
	// Logger receives transport and call diagnostics.
	Logger twitter.Logger
	// Metrics, when set, records per-endpoint call counts and latency.
	Metrics *twitter.MetricsCollector
}

// NewTransport builds the HTTP transport described by config.
func NewTransport(config *Config) *twhttp.Client {
	if config == nil {
		config = &Config{}
	}

	var opts []twhttp.Option

	if config.Logger != nil {
		opts = append(opts, twhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, twhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, twhttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, twhttp.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		opts = append(opts, twhttp.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return twhttp.NewClient(opts...)
}

// New creates a Twitter client sending requests over HTTP. opts are applied
// after the transport-derived options, so an explicit twitter.WithTransport wins.
func New(config *Config, opts ...twitter.Option) (*twitter.Client, error) {
	if config == nil {
		config = &Config{}
	}

	base := []twitter.Option{twitter.WithTransport(NewTransport(config))}

	if config.Logger != nil {
		base = append(base, twitter.WithLogger(config.Logger))
	}

	if config.RateLimit > 0 {
		base = append(base, twitter.WithRequestInterceptor(twitter.RateLimitInterceptor(config.RateLimit, config.RateBurst)))
	}

	if config.Metrics != nil {
		base = append(base,
			twitter.WithRequestInterceptor(twitter.MetricsRequestInterceptor(config.Metrics)),
			twitter.WithResponseInterceptor(twitter.MetricsResponseInterceptor(config.Metrics)))
	}

	if config.Debug && config.Logger != nil {
		base = append(base,
			twitter.WithRequestInterceptor(twitter.LoggingInterceptor(config.Logger)),
			twitter.WithResponseInterceptor(twitter.LoggingResponseInterceptor(config.Logger)))
	}

	return twitter.New(append(base, opts...)...)
}

// NewWithOAuth creates a client signing calls with OAuth 1.0a.
func NewWithOAuth(token, tokenSecret, consumerKey, consumerSecret string, opts ...twitter.Option) (*twitter.Client, error) {
	auth := twitter.NewOAuth(token, tokenSecret, consumerKey, consumerSecret)

	return New(nil, append([]twitter.Option{twitter.WithAuth(auth)}, opts...)...)
}

// NewWithPassword creates a client using email/password authentication.
func NewWithPassword(email, password string, opts ...twitter.Option) (*twitter.Client, error) {
	return New(nil, append([]twitter.Option{twitter.WithCredentials(email, password)}, opts...)...)
}

// NewSearch creates an unauthenticated client for search.twitter.com.
func NewSearch(opts ...twitter.Option) (*twitter.Client, error) {
	return New(nil, append([]twitter.Option{twitter.WithDomain(twitter.SearchDomain)}, opts...)...)
}

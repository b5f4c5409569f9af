package twitter

import (
	"strings"
)

const (
	// DefaultDomain is the host calls are sent to unless WithDomain is used.
	DefaultDomain = "twitter.com"
	// SearchDomain serves the search API.
	SearchDomain = "search.twitter.com"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

type noopLogger struct{}

func (noopLogger) Debug(string, map[string]interface{}) {}
func (noopLogger) Info(string, map[string]interface{})  {}
func (noopLogger) Warn(string, map[string]interface{})  {}
func (noopLogger) Error(string, map[string]interface{}) {}

// Option configures a Client.
type Option func(*options)

type options struct {
	email        string
	password     string
	hasCreds     bool
	format       string
	domain       string
	agent        string
	secure       bool
	auth         Auth
	apiVersion   string
	transport    Transport
	logger       Logger
	interceptors *InterceptorChain
}

// WithCredentials authenticates with an email and password using BasicAuth.
// It cannot be combined with WithAuth.
func WithCredentials(email, password string) Option {
	return func(o *options) {
		o.email = email
		o.password = password
		o.hasCreds = true
	}
}

// WithFormat sets the response format: "json" (default), "xml" or "".
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithDomain sets the API host, twitter.com by default.
func WithDomain(domain string) Option {
	return func(o *options) {
		o.domain = domain
	}
}

// WithAgent names the calling application. It is sent in the X-Twitter-Client
// header and as the source parameter of POST calls.
func WithAgent(agent string) Option {
	return func(o *options) {
		o.agent = agent
	}
}

// WithSecure selects HTTPS (true, the default) or HTTP.
func WithSecure(secure bool) Option {
	return func(o *options) {
		o.secure = secure
	}
}

// WithAuth sets the auth used to sign calls.
func WithAuth(auth Auth) Option {
	return func(o *options) {
		o.auth = auth
	}
}

// WithAPIVersion makes version the first path segment of every call, e.g. "1".
func WithAPIVersion(version string) Option {
	return func(o *options) {
		o.apiVersion = version
	}
}

// WithTransport sets the transport requests are sent with.
func WithTransport(transport Transport) Option {
	return func(o *options) {
		o.transport = transport
	}
}

// WithLogger sets the logger used for call diagnostics.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRequestInterceptor adds an interceptor run before each request.
func WithRequestInterceptor(interceptor RequestInterceptor) Option {
	return func(o *options) {
		o.interceptors.AddRequestInterceptor(interceptor)
	}
}

// WithResponseInterceptor adds an interceptor run after each response.
func WithResponseInterceptor(interceptor ResponseInterceptor) Option {
	return func(o *options) {
		o.interceptors.AddResponseInterceptor(interceptor)
	}
}

// Client is the root of every call chain.
//
//	client, err := twitter.New(twitter.WithTransport(t), twitter.WithAuth(auth))
//	timeline, err := client.Path("statuses", "public_timeline").Do(ctx, nil)
type Client struct {
	root *Call
}

// New creates a Client. It fails with a *ConfigurationError when both
// credentials and an explicit auth are given, when the format is unknown,
// or when no transport is configured.
func New(opts ...Option) (*Client, error) {
	o := &options{
		format:       string(FormatJSON),
		domain:       DefaultDomain,
		secure:       true,
		interceptors: NewInterceptorChain(),
	}

	for _, opt := range opts {
		opt(o)
	}

	auth := o.auth

	if o.hasCreds {
		if auth != nil {
			return nil, &ConfigurationError{Err: ErrConflictingAuth}
		}

		auth = NewBasicAuth(o.email, o.password)
	}

	if auth == nil {
		auth = NoAuth{}
	}

	format, err := ParseFormat(o.format)
	if err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	if o.transport == nil {
		return nil, &ConfigurationError{Err: ErrTransportRequired}
	}

	logger := o.logger
	if logger == nil {
		logger = noopLogger{}
	}

	var segments []string
	if o.apiVersion != "" {
		segments = []string{o.apiVersion}
	}

	return &Client{
		root: &Call{
			config: &callConfig{
				auth:         auth,
				format:       format,
				domain:       o.domain,
				secure:       o.secure,
				agent:        o.agent,
				transport:    o.transport,
				logger:       logger,
				interceptors: o.interceptors,
			},
			segments: segments,
		},
	}, nil
}

// Path starts a call chain with the given segments.
func (c *Client) Path(segments ...string) *Call {
	return c.root.Path(segments...)
}

// Call returns the root call, carrying only the API-version prefix if one is set.
func (c *Client) Call() *Call {
	return c.root
}

// Format returns the configured response format.
func (c *Client) Format() Format {
	return c.root.config.format
}

// Domain returns the configured API host.
func (c *Client) Domain() string {
	return c.root.config.domain
}

// SplitPath splits a dotted or slashed endpoint such as "statuses.public_timeline"
// or "statuses/public_timeline" into path segments. Empty parts are dropped.
func SplitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '.' || r == '/'
	})
}

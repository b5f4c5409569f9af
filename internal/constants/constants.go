package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// NATSConnectTimeout bounds the initial NATS connection.
	NATSConnectTimeout = 5 * time.Second

	// NATSFlushTimeout bounds the wait for a published event when the caller set no deadline.
	NATSFlushTimeout = 5 * time.Second
)

// Retry limits. Retries are off unless RetryMax is configured.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Response limits.
const (
	// MaxResponseBodySize caps how much of a response body is read.
	MaxResponseBodySize = 32 << 20
)

// Output formats.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
	FormatRaw   = "raw"
)

// CLI defaults.
const (
	// ConfigDirName is the directory under $HOME holding the CLI configuration.
	ConfigDirName = ".twitter"

	// EnvPrefix prefixes environment variables read by the CLI.
	EnvPrefix = "TWITTER"

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "twitter-client-go"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// DefaultNATSSubject is the subject call events are published on.
	DefaultNATSSubject = "twitter.calls"

	// AppOnlyTokenURL issues application-only bearer tokens.
	AppOnlyTokenURL = "https://api.twitter.com/oauth2/token"
)

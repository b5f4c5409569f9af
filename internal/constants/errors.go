package constants

import "errors"

// CLI errors.
var (
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
	ErrInvalidArgument     = errors.New("invalid argument, expected key=value")
	ErrUnknownOutputFormat = errors.New("unknown output format")
	ErrConflictingAuth     = errors.New("only one of --email, --bearer-token or --oauth-* credentials may be used")
	ErrIncompleteOAuth     = errors.New("oauth requires token, token secret, consumer key and consumer secret")
)

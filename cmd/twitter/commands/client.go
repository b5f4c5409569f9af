package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/twitter-client/internal/constants"
	"github.com/fivetwenty-io/twitter-client/internal/logger"
	"github.com/fivetwenty-io/twitter-client/internal/publish"
	"github.com/fivetwenty-io/twitter-client/pkg/twitter"
	"github.com/fivetwenty-io/twitter-client/pkg/twitterclient"
)

// passwordReader reads a password without echo. Tests replace it.
var passwordReader = func() (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // stdin descriptor fits in int
	if !term.IsTerminal(fd) {
		return "", nil
	}

	_, _ = fmt.Fprint(os.Stderr, "Password: ")

	bytePassword, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return string(bytePassword), nil
}

// session is a configured client plus the resources it holds.
type session struct {
	client    *twitter.Client
	publisher publish.Publisher
	logger    twitter.Logger
}

// Close releases the NATS connection, if any.
func (s *session) Close() error {
	if s.publisher == nil {
		return nil
	}

	return s.publisher.Close()
}

// newSession builds a client from the effective configuration. Diagnostics go to errOut.
func newSession(config *Config, errOut io.Writer) (*session, error) {
	auth, err := authFromConfig(config)
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}

	log := logger.New(logger.Config{Level: level, Output: errOut})

	clientConfig := &twitterclient.Config{
		RetryMax:  config.RetryMax,
		RateLimit: config.RateLimit,
		Debug:     level == slog.LevelDebug,
		Logger:    log,
	}

	if config.Timeout != "" {
		timeout, err := time.ParseDuration(config.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", config.Timeout, err)
		}

		clientConfig.HTTPTimeout = timeout
	}

	opts := []twitter.Option{
		twitter.WithFormat(config.Format),
		twitter.WithSecure(!config.Insecure),
	}

	if config.Domain != "" {
		opts = append(opts, twitter.WithDomain(config.Domain))
	}

	if config.APIVersion != "" {
		opts = append(opts, twitter.WithAPIVersion(config.APIVersion))
	}

	if config.Agent != "" {
		opts = append(opts, twitter.WithAgent(config.Agent))
	}

	if auth != nil {
		opts = append(opts, twitter.WithAuth(auth))
	}

	s := &session{logger: log}

	if config.NATSURL != "" {
		subject := config.NATSSubject
		if subject == "" {
			subject = constants.DefaultNATSSubject
		}

		publisher, err := publish.NewNATSPublisher(&publish.NATSConfig{
			URL:     config.NATSURL,
			Subject: subject,
			Logger:  log,
		})
		if err != nil {
			return nil, err
		}

		s.publisher = publisher
		opts = append(opts, twitter.WithResponseInterceptor(publish.ResponseInterceptor(publisher, log)))
	}

	client, err := twitterclient.New(clientConfig, opts...)
	if err != nil {
		_ = s.Close()

		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.client = client

	return s, nil
}

// authFromConfig picks the single auth method configured. A nil Auth means
// unauthenticated calls.
func authFromConfig(config *Config) (twitter.Auth, error) {
	hasOAuth := config.OAuthToken != "" || config.OAuthTokenSecret != "" ||
		config.ConsumerKey != "" || config.ConsumerSecret != ""

	methods := 0

	for _, set := range []bool{config.Email != "", config.BearerToken != "", hasOAuth} {
		if set {
			methods++
		}
	}

	if methods > 1 {
		return nil, constants.ErrConflictingAuth
	}

	switch {
	case hasOAuth:
		if config.OAuthToken == "" || config.OAuthTokenSecret == "" ||
			config.ConsumerKey == "" || config.ConsumerSecret == "" {
			return nil, constants.ErrIncompleteOAuth
		}

		return twitter.NewOAuth(config.OAuthToken, config.OAuthTokenSecret, config.ConsumerKey, config.ConsumerSecret), nil
	case config.BearerToken != "":
		return &twitter.BearerAuth{Token: config.BearerToken}, nil
	case config.Email != "":
		password := config.Password
		if password == "" {
			var err error

			password, err = passwordReader()
			if err != nil {
				return nil, err
			}
		}

		return twitter.NewBasicAuth(config.Email, password), nil
	default:
		return nil, nil //nolint:nilnil // no auth configured
	}
}

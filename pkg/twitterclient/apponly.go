package twitterclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/fivetwenty-io/twitter-client/internal/constants"
	"github.com/fivetwenty-io/twitter-client/pkg/twitter"
)

// Static errors for err113 compliance.
var ErrConsumerCredentialsRequired = errors.New("consumer key and secret are required")

// AppOnlyConfig describes the application-only token exchange.
type AppOnlyConfig struct {
	ConsumerKey    string
	ConsumerSecret string
	// TokenURL defaults to constants.AppOnlyTokenURL.
	TokenURL string
	// HTTPClient sends the token request. http.DefaultClient when nil.
	HTTPClient *http.Client
}

// AppOnlyAuth exchanges the consumer key and secret for an application-only
// bearer token (OAuth2 client credentials grant).
func AppOnlyAuth(ctx context.Context, config *AppOnlyConfig) (*twitter.BearerAuth, error) {
	if config == nil || config.ConsumerKey == "" || config.ConsumerSecret == "" {
		return nil, ErrConsumerCredentialsRequired
	}

	tokenURL := config.TokenURL
	if tokenURL == "" {
		tokenURL = constants.AppOnlyTokenURL
	}

	if config.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, config.HTTPClient)
	}

	credentials := &clientcredentials.Config{
		ClientID:     config.ConsumerKey,
		ClientSecret: config.ConsumerSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	token, err := credentials.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtaining app-only token from %s: %w", tokenURL, err)
	}

	return &twitter.BearerAuth{Token: token.AccessToken}, nil
}

// NewWithAppOnly creates a client authenticated with an application-only bearer token.
func NewWithAppOnly(ctx context.Context, consumerKey, consumerSecret string, opts ...twitter.Option) (*twitter.Client, error) {
	auth, err := AppOnlyAuth(ctx, &AppOnlyConfig{ConsumerKey: consumerKey, ConsumerSecret: consumerSecret})
	if err != nil {
		return nil, err
	}

	return New(nil, append([]twitter.Option{twitter.WithAuth(auth)}, opts...)...)
}

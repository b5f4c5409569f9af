package twitter

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
)

const oauthVersion = "1.0"

// OAuth signs requests with OAuth 1.0a, placing the oauth_* parameters and
// the signature in the query string (GET) or form body (POST).
type OAuth struct {
	config *oauth1.Config
	token  *oauth1.Token

	now   func() time.Time
	nonce func() (string, error)
}

// NewOAuth creates an OAuth auth from the application and user key pairs.
func NewOAuth(token, tokenSecret, consumerKey, consumerSecret string) *OAuth {
	return &OAuth{
		config: oauth1.NewConfig(consumerKey, consumerSecret),
		token:  oauth1.NewToken(token, tokenSecret),
		now:    time.Now,
		nonce:  randomNonce,
	}
}

// GenerateHeaders implements Auth. OAuth sends its credentials as parameters.
func (a *OAuth) GenerateHeaders() map[string]string {
	return map[string]string{}
}

// EncodeParams implements Auth.
func (a *OAuth) EncodeParams(baseURL, method string, params Args) (string, error) {
	nonce, err := a.nonce()
	if err != nil {
		return "", fmt.Errorf("generating oauth nonce: %w", err)
	}

	signer := a.signer()

	signed := params.clone()
	signed["oauth_consumer_key"] = a.config.ConsumerKey
	signed["oauth_nonce"] = nonce
	signed["oauth_signature_method"] = signer.Name()
	signed["oauth_timestamp"] = strconv.FormatInt(a.now().Unix(), 10)
	signed["oauth_token"] = a.token.Token
	signed["oauth_version"] = oauthVersion

	normalized := normalizeParams(signed)
	message := strings.Join([]string{
		strings.ToUpper(method),
		oauth1.PercentEncode(baseURL),
		oauth1.PercentEncode(normalized),
	}, "&")

	signature, err := signer.Sign(a.token.TokenSecret, message)
	if err != nil {
		return "", fmt.Errorf("signing request: %w", err)
	}

	return normalized + "&oauth_signature=" + oauth1.PercentEncode(signature), nil
}

func (a *OAuth) signer() oauth1.Signer {
	if a.config.Signer != nil {
		return a.config.Signer
	}

	return &oauth1.HMACSigner{ConsumerSecret: a.config.ConsumerSecret}
}

// normalizeParams percent-encodes and sorts params as the OAuth signature base string requires.
func normalizeParams(params Args) string {
	type pair struct{ key, value string }

	pairs := make([]pair, 0, len(params))
	for k, v := range params {
		pairs = append(pairs, pair{oauth1.PercentEncode(k), oauth1.PercentEncode(v)})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}

		return pairs[i].value < pairs[j].value
	})

	encoded := make([]string, len(pairs))
	for i, p := range pairs {
		encoded[i] = p.key + "=" + p.value
	}

	return strings.Join(encoded, "&")
}

func randomNonce() (string, error) {
	b := make([]byte, 16)

	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// Package twitter is a minimalist, schema-agnostic client for the Twitter
// REST API.
//
// # Overview
//
// Endpoints are not enumerated. A call is built by chaining path segments on a
// Client and sent with named arguments:
//
//	client, err := twitterclient.New(nil, twitter.WithAuth(
//	  twitter.NewOAuth(token, tokenSecret, consumerKey, consumerSecret)))
//	if err != nil { log.Fatal(err) }
//
//	// GET https://twitter.com/statuses/public_timeline.json
//	timeline, err := client.Path("statuses", "public_timeline").Do(ctx, nil)
//
//	// A friend's timeline: the id argument becomes a trailing segment.
//	client.Path("statuses", "friends_timeline").Do(ctx, twitter.Args{"id": "billybob"})
//
//	// Also supported: a segment named like an argument is replaced by its value.
//	client.Path("user", "listname", "members").Do(ctx, twitter.Args{
//	  "user": "billybob", "listname": "billysbuds"})
//
//	// Paths ending in a known action (update, new, destroy, create, ...) are POSTed.
//	client.Path("direct_messages", "new").Do(ctx, twitter.Args{
//	  "user": "billybob", "text": "I think yer swell!"})
//
// Each Path call returns a new Call; a Call can be kept and extended from
// several goroutines.
//
// # Results
//
// With the default json format, Do returns the decoded document as
// []interface{} and map[string]interface{} values with json.Number numbers.
// With WithFormat("xml") or WithFormat("") the raw body is returned as a
// string. A 304 Not Modified reply returns an empty []interface{}.
//
// # Errors
//
// New returns a *ConfigurationError for conflicting or unknown options. Do
// returns an *HTTPError for any other non-2xx reply, carrying the status,
// URL, format, path segments and the server's error body. IsNotFound,
// IsUnauthorized, IsForbidden and IsRateLimited classify it.
//
// # Auth
//
// Auth implementations produce headers and encode parameters: NoAuth,
// BasicAuth (email/password), BearerAuth and OAuth (OAuth 1.0a, HMAC-SHA1).
package twitter

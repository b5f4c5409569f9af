// Package twitterclient constructs twitter.Client values wired to the HTTP
// transport, so most applications never implement twitter.Transport.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/twitter-client/pkg/twitter"
//	  "github.com/fivetwenty-io/twitter-client/pkg/twitterclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := twitterclient.NewWithOAuth(token, tokenSecret, consumerKey, consumerSecret,
//	    twitter.WithAPIVersion("1"))
//	  if err != nil { log.Fatal(err) }
//
//	  timeline, err := cli.Path("statuses", "home_timeline").Do(ctx, twitter.Args{"count": "20"})
//	  if err != nil { log.Fatal(err) }
//	  _ = timeline
//
//	  search, err := twitterclient.NewSearch()
//	  if err != nil { log.Fatal(err) }
//	  results, err := search.Path("search").Do(ctx, twitter.Args{"q": "#gaza"})
//	  _ = results
//	}
//
// # Transport settings
//
// Config tunes the transport: per-attempt timeout, opt-in retries of 429/5xx
// replies, a client-side rate limit, debug logging and metrics. A nil Config
// uses the defaults.
package twitterclient

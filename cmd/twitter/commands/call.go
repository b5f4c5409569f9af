package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/twitter-client/internal/constants"
	"github.com/fivetwenty-io/twitter-client/pkg/twitter"
)

// NewCallCommand creates the call command.
func NewCallCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "call PATH [KEY=VALUE...]",
		Short: "Call an API endpoint",
		Long: `Call any endpoint by path. Segments are separated by "." or "/".
A segment matching an argument name is replaced by the argument value, an
"id" argument is appended as the last segment, and endpoints ending in an
action such as update, new, create or destroy are sent as POST.`,
		Example: `  twitter call statuses.public_timeline
  twitter call statuses/friends_timeline id=billybob
  twitter call user.listname.members user=billybob listname=billysbuds
  twitter call statuses.update status="Using the twitter CLI!"
  twitter call search q=#gaza --domain search.twitter.com`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			segments := twitter.SplitPath(args[0])

			params, err := parseArgs(args[1:])
			if err != nil {
				return err
			}

			output := viper.GetString("output")
			if !isOutputFormat(output) {
				return fmt.Errorf("%w: %s", constants.ErrUnknownOutputFormat, output)
			}

			s, err := newSession(loadConfig(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			defer func() { _ = s.Close() }()

			call := s.client.Path(segments...)

			if dryRun {
				req, err := call.Prepare(params)
				if err != nil {
					return err
				}

				return render(cmd.OutOrStdout(), describeRequest(req), output)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			result, err := call.Do(ctx, params)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), result, output)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the request that would be sent without sending it")

	return cmd
}

// parseArgs turns KEY=VALUE arguments into call arguments. The value may be
// empty or contain "=".
func parseArgs(args []string) (twitter.Args, error) {
	params := make(twitter.Args, len(args))

	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidArgument, arg)
		}

		params[key] = value
	}

	return params, nil
}

func describeRequest(req *twitter.Request) map[string]interface{} {
	description := map[string]interface{}{
		"method": req.Method,
		"url":    req.URL,
	}

	headers := make(map[string]interface{}, len(req.Headers))
	for key := range req.Headers {
		value := req.Headers.Get(key)
		if key == "Authorization" {
			value = constants.MaskedSecret
		}

		headers[key] = value
	}

	if len(headers) > 0 {
		description["headers"] = headers
	}

	if len(req.Body) > 0 {
		description["body"] = string(req.Body)
	}

	return description
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/twitter-client/cmd/twitter/commands"
	"github.com/fivetwenty-io/twitter-client/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "twitter",
	Short: "Twitter REST API CLI",
	Long: `A command-line interface for calling the Twitter REST API.

Any endpoint can be reached with "twitter call", authenticated with
email/password, OAuth 1.0a or a bearer token.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commands.SetNoColor(viper.GetBool("no_color"))
	},
}

// flagBindings maps viper keys to persistent flag names.
var flagBindings = map[string]string{
	"config":             "config",
	"domain":             "domain",
	"format":             "format",
	"api_version":        "api-version",
	"agent":              "agent",
	"insecure":           "insecure",
	"email":              "email",
	"password":           "password",
	"oauth_token":        "oauth-token",
	"oauth_token_secret": "oauth-token-secret",
	"consumer_key":       "consumer-key",
	"consumer_secret":    "consumer-secret",
	"bearer_token":       "bearer-token",
	"output":             "output",
	"verbose":            "verbose",
	"no_color":           "no-color",
	"timeout":            "timeout",
	"retry_max":          "retry-max",
	"rate_limit":         "rate-limit",
	"nats_url":           "nats-url",
	"nats_subject":       "nats-subject",
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()

	// Global flags
	flags.StringP("config", "c", "", "config file (default is $HOME/.twitter/config.yml)")
	flags.StringP("domain", "d", "", "API host (default twitter.com)")
	flags.StringP("format", "f", "json", "response format (json, xml, or empty for none)")
	flags.String("api-version", "", "API version prefixed to every path, e.g. 1")
	flags.String("agent", "", "application name sent as X-Twitter-Client and source")
	flags.Bool("insecure", false, "use HTTP instead of HTTPS")
	flags.StringP("email", "u", "", "email or screen name for basic authentication")
	flags.String("password", "", "password for basic authentication (prompted when omitted)")
	flags.String("oauth-token", "", "OAuth access token")
	flags.String("oauth-token-secret", "", "OAuth access token secret")
	flags.String("consumer-key", "", "OAuth consumer key")
	flags.String("consumer-secret", "", "OAuth consumer secret")
	flags.String("bearer-token", "", "application-only bearer token")
	flags.StringP("output", "o", constants.FormatJSON, "output format (json, yaml, table, raw)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("timeout", "", "timeout of a single HTTP attempt, e.g. 10s")
	flags.Int("retry-max", 0, "retry connection errors, 429 and 5xx replies up to this many times")
	flags.Float64("rate-limit", 0, "maximum calls per second")
	flags.String("nats-url", "", "publish every call result to this NATS server")
	flags.String("nats-subject", constants.DefaultNATSSubject, "NATS subject for call results")

	// Bind flags to viper
	for key, flag := range flagBindings {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewCallCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			commands.PrintError(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.twitter/config.yml
		viper.AddConfigPath(filepath.Join(home, constants.ConfigDirName))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

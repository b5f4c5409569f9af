package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/twitter-client/internal/constants"
)

// Config represents the CLI configuration.
type Config struct {
	Domain     string `json:"domain,omitempty"      yaml:"domain,omitempty"`
	Format     string `json:"format"                yaml:"format,omitempty"`
	APIVersion string `json:"api_version,omitempty" yaml:"api_version,omitempty"`
	Agent      string `json:"agent,omitempty"       yaml:"agent,omitempty"`
	Insecure   bool   `json:"insecure"              yaml:"insecure,omitempty"`

	Email            string `json:"email,omitempty"              yaml:"email,omitempty"`
	Password         string `json:"password,omitempty"           yaml:"password,omitempty"`
	OAuthToken       string `json:"oauth_token,omitempty"        yaml:"oauth_token,omitempty"`
	OAuthTokenSecret string `json:"oauth_token_secret,omitempty" yaml:"oauth_token_secret,omitempty"`
	ConsumerKey      string `json:"consumer_key,omitempty"       yaml:"consumer_key,omitempty"`
	ConsumerSecret   string `json:"consumer_secret,omitempty"    yaml:"consumer_secret,omitempty"`
	BearerToken      string `json:"bearer_token,omitempty"       yaml:"bearer_token,omitempty"`

	Output    string  `json:"output"              yaml:"output,omitempty"`
	NoColor   bool    `json:"no_color"            yaml:"no_color,omitempty"`
	Timeout   string  `json:"timeout,omitempty"   yaml:"timeout,omitempty"`
	RetryMax  int     `json:"retry_max"           yaml:"retry_max,omitempty"`
	RateLimit float64 `json:"rate_limit"          yaml:"rate_limit,omitempty"`

	NATSURL     string `json:"nats_url,omitempty"     yaml:"nats_url,omitempty"`
	NATSSubject string `json:"nats_subject,omitempty" yaml:"nats_subject,omitempty"`
}

// configSetters maps each settable key to the field it writes.
var configSetters = map[string]func(c *Config, value string) error{
	"domain":             func(c *Config, v string) error { c.Domain = v; return nil },
	"format":             func(c *Config, v string) error { c.Format = v; return nil },
	"api_version":        func(c *Config, v string) error { c.APIVersion = v; return nil },
	"agent":              func(c *Config, v string) error { c.Agent = v; return nil },
	"email":              func(c *Config, v string) error { c.Email = v; return nil },
	"password":           func(c *Config, v string) error { c.Password = v; return nil },
	"oauth_token":        func(c *Config, v string) error { c.OAuthToken = v; return nil },
	"oauth_token_secret": func(c *Config, v string) error { c.OAuthTokenSecret = v; return nil },
	"consumer_key":       func(c *Config, v string) error { c.ConsumerKey = v; return nil },
	"consumer_secret":    func(c *Config, v string) error { c.ConsumerSecret = v; return nil },
	"bearer_token":       func(c *Config, v string) error { c.BearerToken = v; return nil },
	"output": func(c *Config, v string) error {
		if !isOutputFormat(v) {
			return fmt.Errorf("%w: %s", constants.ErrUnknownOutputFormat, v)
		}

		c.Output = v

		return nil
	},
	"timeout":      func(c *Config, v string) error { c.Timeout = v; return nil },
	"nats_url":     func(c *Config, v string) error { c.NATSURL = v; return nil },
	"nats_subject": func(c *Config, v string) error { c.NATSSubject = v; return nil },
	"insecure": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		c.Insecure = b

		return err
	},
	"no_color": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		c.NoColor = b

		return err
	},
	"retry_max": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		c.RetryMax = n

		return err
	},
	"rate_limit": func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		c.RateLimit = f

		return err
	},
}

// ConfigKeys lists the keys accepted by "config set" and "config unset".
func ConfigKeys() []string {
	keys := make([]string, 0, len(configSetters))
	for k := range configSetters {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and edit the settings stored in the configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration from flags, environment and the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := maskSecrets(loadConfig())
			out := cmd.OutOrStdout()

			switch viper.GetString("output") {
			case constants.FormatJSON:
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")

				return encoder.Encode(config)
			case constants.FormatYAML:
				return yaml.NewEncoder(out).Encode(config)
			default:
				return displayConfigTable(out, config)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value in the configuration file",
		Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			setter, ok := configSetters[key]
			if !ok {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			config, err := readConfigFile(configFilePath())
			if err != nil {
				return err
			}

			err = setter(config, value)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			return outputConfigUpdateResult(cmd.OutOrStdout(), "Set", key, displayValue(key, value))
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			if _, ok := configSetters[key]; !ok {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			config, err := readConfigFile(configFilePath())
			if err != nil {
				return err
			}

			unsetConfigValue(config, key)

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			return outputConfigUpdateResult(cmd.OutOrStdout(), "Unset", key, "")
		},
	}
}

// unsetConfigValue resets key to its zero value.
func unsetConfigValue(config *Config, key string) {
	switch key {
	case "output":
		config.Output = ""
	case "insecure":
		config.Insecure = false
	case "no_color":
		config.NoColor = false
	case "retry_max":
		config.RetryMax = 0
	case "rate_limit":
		config.RateLimit = 0
	default:
		_ = configSetters[key](config, "")
	}
}

// loadConfig returns the effective configuration.
func loadConfig() *Config {
	return &Config{
		Domain:           viper.GetString("domain"),
		Format:           viper.GetString("format"),
		APIVersion:       viper.GetString("api_version"),
		Agent:            viper.GetString("agent"),
		Insecure:         viper.GetBool("insecure"),
		Email:            viper.GetString("email"),
		Password:         viper.GetString("password"),
		OAuthToken:       viper.GetString("oauth_token"),
		OAuthTokenSecret: viper.GetString("oauth_token_secret"),
		ConsumerKey:      viper.GetString("consumer_key"),
		ConsumerSecret:   viper.GetString("consumer_secret"),
		BearerToken:      viper.GetString("bearer_token"),
		Output:           viper.GetString("output"),
		NoColor:          viper.GetBool("no_color"),
		Timeout:          viper.GetString("timeout"),
		RetryMax:         viper.GetInt("retry_max"),
		RateLimit:        viper.GetFloat64("rate_limit"),
		NATSURL:          viper.GetString("nats_url"),
		NATSSubject:      viper.GetString("nats_subject"),
	}
}

func isSecretKey(key string) bool {
	switch key {
	case "password", "oauth_token_secret", "consumer_secret", "bearer_token":
		return true
	default:
		return false
	}
}

func displayValue(key, value string) string {
	if isSecretKey(key) && value != "" {
		return constants.MaskedSecret
	}

	return value
}

func maskSecrets(config *Config) *Config {
	masked := *config
	masked.Password = displayValue("password", masked.Password)
	masked.OAuthTokenSecret = displayValue("oauth_token_secret", masked.OAuthTokenSecret)
	masked.ConsumerSecret = displayValue("consumer_secret", masked.ConsumerSecret)
	masked.BearerToken = displayValue("bearer_token", masked.BearerToken)

	return &masked
}

// configFilePath returns the file "config set" writes to.
func configFilePath() string {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile
	}

	if configFile := viper.GetString("config"); configFile != "" {
		return configFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(constants.ConfigDirName, "config.yml")
	}

	return filepath.Join(home, constants.ConfigDirName, "config.yml")
}

// readConfigFile loads the stored settings. A missing file yields an empty Config.
func readConfigFile(path string) (*Config, error) {
	config := &Config{}

	// path comes from the --config flag or the user's home directory
	// #nosec G304
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

func saveConfigStruct(config *Config) error {
	configFile := configFilePath()

	err := os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func displayConfigTable(out io.Writer, config *Config) error {
	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")

	rows := [][]string{
		{"Domain", orNotAvailable(config.Domain)},
		{"Format", config.Format},
		{"API Version", orNotAvailable(config.APIVersion)},
		{"Agent", orNotAvailable(config.Agent)},
		{"Insecure", strconv.FormatBool(config.Insecure)},
		{"Email", orNotAvailable(config.Email)},
		{"Password", orNotAvailable(config.Password)},
		{"OAuth Token", orNotAvailable(config.OAuthToken)},
		{"OAuth Token Secret", orNotAvailable(config.OAuthTokenSecret)},
		{"Consumer Key", orNotAvailable(config.ConsumerKey)},
		{"Consumer Secret", orNotAvailable(config.ConsumerSecret)},
		{"Bearer Token", orNotAvailable(config.BearerToken)},
		{"Output", config.Output},
		{"No Color", strconv.FormatBool(config.NoColor)},
		{"Timeout", orNotAvailable(config.Timeout)},
		{"Retry Max", strconv.Itoa(config.RetryMax)},
		{"Rate Limit", strconv.FormatFloat(config.RateLimit, 'f', -1, 64)},
		{"NATS URL", orNotAvailable(config.NATSURL)},
		{"NATS Subject", orNotAvailable(config.NATSSubject)},
	}

	for _, row := range rows {
		_ = table.Append(row)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func outputConfigUpdateResult(out io.Writer, action, key, value string) error {
	result := map[string]string{
		"action": action,
		"key":    key,
	}

	if value != "" {
		result["value"] = value
	}

	switch viper.GetString("output") {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(result)
		if err != nil {
			return fmt.Errorf("failed to encode config result as JSON: %w", err)
		}

		return nil
	case constants.FormatYAML:
		err := yaml.NewEncoder(out).Encode(result)
		if err != nil {
			return fmt.Errorf("failed to encode config result as YAML: %w", err)
		}

		return nil
	default:
		if value != "" {
			_, _ = fmt.Fprintf(out, "%s %s = %s\n", action, key, value)
		} else {
			_, _ = fmt.Fprintf(out, "%s %s\n", action, key)
		}

		return nil
	}
}

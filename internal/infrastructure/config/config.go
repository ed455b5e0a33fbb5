package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// DefaultEnvFile is the dotenv file read at startup, matching the layout of
// existing Pandora deployments.
const DefaultEnvFile = ".env"

// defaultPrefixRoot is the topic namespace root. The full prefix is
// defaultPrefixRoot + username + "/".
const defaultPrefixRoot = "pandora/"

// Config is the root configuration structure for the Pandora client.
// Values come from defaults, an optional YAML file, the environment and
// finally command-line flags.
type Config struct {
	MQTT     MQTTConfig     `yaml:"mqtt"`
	Session  SessionConfig  `yaml:"session"`
	Logging  LoggingConfig  `yaml:"logging"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	Status   StatusConfig   `yaml:"status"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	TLS  bool   `yaml:"tls"`
	// ClientID is generated when empty.
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings in seconds.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// SessionConfig contains interactive session settings.
type SessionConfig struct {
	// Username selects the topic namespace pandora/<username>/.
	Username string `yaml:"username"`

	// Prefix overrides the derived namespace. Must end with "/".
	Prefix string `yaml:"prefix"`

	// Subscribe lists topics subscribed at startup. A leading "$/" is
	// replaced by the prefix.
	Subscribe []string `yaml:"subscribe"`

	// PrintCommands filters which decoded frames are printed: "all" or
	// command names such as "UPDATE".
	PrintCommands []string `yaml:"print_commands"`

	// Interactive enables the command shell. When false the client only
	// prints incoming frames until interrupted.
	Interactive bool `yaml:"interactive"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// InfluxDBConfig contains settings for forwarding sensor updates to InfluxDB.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// StatusConfig contains settings for the optional HTTP status endpoint.
type StatusConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// envOverrides lists the environment variables understood by the client.
// Names match the .env files already used with the Pandora controllers.
type envOverrides struct {
	BrokerHost    string `env:"MQTT_BROKER"`
	BrokerPort    int    `env:"MQTT_PORT"`
	MQTTUsername  string `env:"MQTT_USERNAME"`
	MQTTPassword  string `env:"MQTT_PASSWORD"`
	AppUsername   string `env:"APP_USERNAME"`
	LogLevel      string `env:"PANDORA_LOG_LEVEL"`
	InfluxDBToken string `env:"PANDORA_INFLUXDB_TOKEN"`
}

// Option mutates a Config after file and environment values are applied
// and before validation. Command-line flags are applied this way.
type Option func(*Config)

// LoadDotEnv loads variables from dotenv files into the process
// environment. Variables already set are left alone and missing files are
// not an error.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Load builds the configuration.
//
// The loading order is:
//  1. Default values
//  2. YAML file values, if path is not empty
//  3. Environment variables (MQTT_BROKER, MQTT_PORT, APP_USERNAME, ...)
//  4. Options, in order
//
// Parameters:
//   - ctx: Context for environment processing
//   - path: Path to a YAML configuration file, or "" for none
//   - opts: Final overrides, typically from command-line flags
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If the file cannot be read or parsed, or validation fails
func Load(ctx context.Context, path string, opts ...Option) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(ctx, cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host: "localhost",
				Port: 1883,
			},
			QoS: 0,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		Session: SessionConfig{
			PrintCommands: []string{"all"},
			Interactive:   true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		InfluxDB: InfluxDBConfig{
			BatchSize:     100,
			FlushInterval: 10,
		},
		Status: StatusConfig{
			Host: "127.0.0.1",
			Port: 8090,
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(ctx context.Context, cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(ctx, &env); err != nil {
		return err
	}

	if env.BrokerHost != "" {
		cfg.MQTT.Broker.Host = env.BrokerHost
	}
	if env.BrokerPort != 0 {
		cfg.MQTT.Broker.Port = env.BrokerPort
	}
	if env.MQTTUsername != "" {
		cfg.MQTT.Auth.Username = env.MQTTUsername
	}
	if env.MQTTPassword != "" {
		cfg.MQTT.Auth.Password = env.MQTTPassword
	}
	if env.AppUsername != "" {
		cfg.Session.Username = env.AppUsername
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = env.LogLevel
	}
	if env.InfluxDBToken != "" {
		cfg.InfluxDB.Token = env.InfluxDBToken
	}

	return nil
}

// Validate checks the configuration for errors.
//
// All problems are reported together so a user can fix them in one pass.
//
// Returns:
//   - error: Combined validation failures, or nil if valid
func (c *Config) Validate() error {
	var err error

	if c.MQTT.Broker.Host == "" {
		err = multierr.Append(err, errors.New("mqtt.broker.host is required (set MQTT_BROKER)"))
	}
	if c.MQTT.Broker.Port < 1 || c.MQTT.Broker.Port > 65535 {
		err = multierr.Append(err, errors.New("mqtt.broker.port must be between 1 and 65535"))
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		err = multierr.Append(err, errors.New("mqtt.qos must be 0, 1, or 2"))
	}

	if c.Session.Prefix == "" && c.Session.Username == "" {
		err = multierr.Append(err, errors.New("session.username is required (set APP_USERNAME)"))
	}
	if c.Session.Prefix != "" && !strings.HasSuffix(c.Session.Prefix, "/") {
		err = multierr.Append(err, errors.New("session.prefix must end with '/'"))
	}

	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			err = multierr.Append(err, errors.New("influxdb.url is required when influxdb is enabled"))
		}
		if c.InfluxDB.Org == "" || c.InfluxDB.Bucket == "" {
			err = multierr.Append(err, errors.New("influxdb.org and influxdb.bucket are required when influxdb is enabled"))
		}
	}

	if c.Status.Enabled && (c.Status.Port < 1 || c.Status.Port > 65535) {
		err = multierr.Append(err, errors.New("status.port must be between 1 and 65535"))
	}

	if err != nil {
		return fmt.Errorf("configuration errors: %w", err)
	}
	return nil
}

// TopicPrefix returns the namespace prepended to relative topics,
// e.g. "pandora/alice/".
func (c *Config) TopicPrefix() string {
	if c.Session.Prefix != "" {
		return c.Session.Prefix
	}
	return defaultPrefixRoot + c.Session.Username + "/"
}

// StatusAddr returns the listen address of the status endpoint.
func (c *Config) StatusAddr() string {
	return fmt.Sprintf("%s:%d", c.Status.Host, c.Status.Port)
}

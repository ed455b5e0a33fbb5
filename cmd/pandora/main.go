// Pandora MQTT client
//
// pandora is an interactive command-line client for Pandora garden
// controllers. It subscribes to topics under pandora/<username>/, prints the
// binary frames the controllers publish, and sends LIGHT, DRAIN, AUTO and
// FORCE_UPDATE commands typed at its prompt.
//
//	pandora -s '$/garden'            # subscribe at startup, then open the shell
//	pandora -d -c UPDATE -s '$/#'    # print sensor updates only, no shell
package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/mamaeo/pandora-mqtt/internal/infrastructure/config"
	"github.com/mamaeo/pandora-mqtt/internal/infrastructure/influxdb"
	"github.com/mamaeo/pandora-mqtt/internal/infrastructure/logging"
	"github.com/mamaeo/pandora-mqtt/internal/infrastructure/mqtt"
	"github.com/mamaeo/pandora-mqtt/internal/session"
	"github.com/mamaeo/pandora-mqtt/internal/status"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
)

// configEnvVar names the environment variable holding the YAML config path.
const configEnvVar = "PANDORA_CONFIG"

// Flag names referenced when deciding which flags override the config.
const (
	flagVerbose       = "verbose"
	flagPrintCommands = "print-commands"
	flagBrokerURL     = "broker-url"
	flagBrokerPort    = "broker-port"
	flagSubscribe     = "subscribe"
	flagDisableShell  = "disable-shell"
	flagConfig        = "config"
	flagStatusAddr    = "status-addr"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := newRootCommand(streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// streams are the process's standard streams, replaced in tests.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// options holds command-line flag values.
type options struct {
	verbose       bool
	printCommands []string
	brokerHost    string
	brokerPort    int
	subscribe     []string
	disableShell  bool
	configPath    string
	statusAddr    string

	// changed reports whether a flag was set explicitly.
	changed func(name string) bool
}

// newRootCommand builds the pandora command.
func newRootCommand(s streams) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "pandora",
		Short: "Interactive MQTT client for Pandora controllers",
		Long: "pandora subscribes to topics under pandora/<username>/, prints decoded\n" +
			"controller frames and publishes commands typed at its prompt.\n\n" +
			"Broker address and username are read from .env (MQTT_BROKER, MQTT_PORT,\n" +
			"APP_USERNAME) unless overridden by flags or a --config file.",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.changed = cmd.Flags().Changed
			return run(cmd.Context(), opts, s)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&opts.verbose, flagVerbose, "v", false, "enable verbose (debug) logging")
	f.StringArrayVarP(&opts.printCommands, flagPrintCommands, "c", nil,
		"frame types to print: all, UPDATE, LIGHT, DRAIN, AUTO, FORCE_UPDATE (repeatable)")
	f.StringVarP(&opts.brokerHost, flagBrokerURL, "u", "", "MQTT broker host (overrides MQTT_BROKER)")
	f.IntVarP(&opts.brokerPort, flagBrokerPort, "p", 0, "MQTT broker port (overrides MQTT_PORT)")
	f.StringArrayVarP(&opts.subscribe, flagSubscribe, "s", nil,
		"topic to subscribe to at startup; a leading $/ stands for the prefix (repeatable)")
	f.BoolVarP(&opts.disableShell, flagDisableShell, "d", false, "disable the interactive shell and only print frames")
	f.StringVar(&opts.configPath, flagConfig, "", "YAML configuration file (env "+configEnvVar+")")
	f.StringVar(&opts.statusAddr, flagStatusAddr, "", "serve the HTTP status endpoint on host:port")

	return cmd
}

// configOptions converts explicitly set flags into config overrides.
func (o *options) configOptions() ([]config.Option, error) {
	changed := o.changed
	if changed == nil {
		changed = func(string) bool { return false }
	}

	var out []config.Option

	if changed(flagVerbose) && o.verbose {
		out = append(out, func(c *config.Config) { c.Logging.Level = "debug" })
	}
	if changed(flagPrintCommands) {
		commands := o.printCommands
		out = append(out, func(c *config.Config) { c.Session.PrintCommands = commands })
	}
	if changed(flagBrokerURL) {
		host := o.brokerHost
		out = append(out, func(c *config.Config) { c.MQTT.Broker.Host = host })
	}
	if changed(flagBrokerPort) {
		port := o.brokerPort
		out = append(out, func(c *config.Config) { c.MQTT.Broker.Port = port })
	}
	if changed(flagSubscribe) {
		topics := o.subscribe
		out = append(out, func(c *config.Config) {
			c.Session.Subscribe = append(c.Session.Subscribe, topics...)
		})
	}
	if changed(flagDisableShell) && o.disableShell {
		out = append(out, func(c *config.Config) { c.Session.Interactive = false })
	}
	if changed(flagStatusAddr) {
		host, portStr, err := net.SplitHostPort(o.statusAddr)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", flagStatusAddr, err)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("--%s: invalid port %q", flagStatusAddr, portStr)
		}
		out = append(out, func(c *config.Config) {
			c.Status.Enabled = true
			c.Status.Host = host
			c.Status.Port = port
		})
	}

	return out, nil
}

// getConfigPath returns the --config flag, or PANDORA_CONFIG when unset.
// An empty result means no config file.
func getConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(configEnvVar)
}

// run is the application logic, separated from main for testability.
//
// Parameters:
//   - ctx: Cancelled on SIGINT/SIGTERM
//   - opts: Parsed flags
//   - s: Standard streams
//
// Returns:
//   - error: nil on clean shutdown, or the startup/shutdown failure
func run(ctx context.Context, opts *options, s streams) (err error) {
	if envErr := config.LoadDotEnv(config.DefaultEnvFile); envErr != nil {
		return envErr
	}

	overrides, err := opts.configOptions()
	if err != nil {
		return err
	}

	configPath := getConfigPath(opts.configPath)
	cfg, err := config.Load(ctx, configPath, overrides...)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logging.New(cfg.Logging, version)
	log.Debug("configuration loaded", "path", configPath, "prefix", cfg.TopicPrefix())

	printer, err := session.NewPrinter(s.out, cfg.Session.PrintCommands)
	if err != nil {
		return err
	}

	mqttClient, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		log.Debug("disconnecting from MQTT")
		err = multierr.Append(err, mqttClient.Close())
	}()

	mqttLog := log.With("component", "mqtt")
	mqttClient.SetLogger(mqttLog)
	mqttClient.SetOnConnect(func() {
		mqttLog.Debug("connected to broker", "broker", mqttClient.BrokerURL())
	})
	mqttClient.SetOnDisconnect(func(cause error) {
		mqttLog.Warn("disconnected from broker", "broker", mqttClient.BrokerURL(), "error", cause)
	})
	log.Debug("MQTT connected",
		"broker", mqttClient.BrokerURL(),
		"client_id", mqttClient.ClientID(),
	)

	var recorder session.Recorder
	if cfg.InfluxDB.Enabled {
		influxClient, influxErr := influxdb.Connect(ctx, cfg.InfluxDB)
		if influxErr != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", influxErr)
		}
		defer func() {
			err = multierr.Append(err, influxClient.Close())
		}()
		influxLog := log.With("component", "influxdb")
		influxClient.SetOnError(func(writeErr error) {
			influxLog.Warn("sensor update write failed", "error", writeErr)
		})
		recorder = influxClient
		log.Debug("forwarding sensor updates to InfluxDB", "url", cfg.InfluxDB.URL, "bucket", cfg.InfluxDB.Bucket)
	}

	sess := session.New(session.Deps{
		Broker:   &mqttSessionAdapter{client: mqttClient},
		Printer:  printer,
		Logger:   log,
		Prefix:   cfg.TopicPrefix(),
		QoS:      byte(cfg.MQTT.QoS),
		Recorder: recorder,
	})

	for _, topic := range cfg.Session.Subscribe {
		if _, subErr := sess.Subscribe(topic, false); subErr != nil {
			return fmt.Errorf("initial subscription: %w", subErr)
		}
	}

	if cfg.Status.Enabled {
		statusServer, statusErr := status.New(status.Deps{
			Addr:    cfg.StatusAddr(),
			Logger:  log.With("component", "status"),
			Broker:  mqttClient,
			Topics:  sess,
			Version: version,
		})
		if statusErr != nil {
			return fmt.Errorf("creating status server: %w", statusErr)
		}
		if startErr := statusServer.Start(ctx); startErr != nil {
			return startErr
		}
		defer func() {
			err = multierr.Append(err, statusServer.Close())
		}()
	}

	if !cfg.Session.Interactive {
		log.Info("shell disabled, printing frames until interrupted", "topics", len(sess.Topics()))
		<-ctx.Done()
		return nil
	}

	return session.NewShell(sess, s.in, printer, s.err).Run(ctx)
}

// mqttSessionAdapter adapts the infrastructure MQTT client to session.Broker.
// The difference is the handler signature:
//   - Infrastructure mqtt: func(topic, payload []byte) error
//   - session expects: func(topic, payload []byte)
type mqttSessionAdapter struct {
	client *mqtt.Client
}

// Subscribe implements session.Broker.
func (a *mqttSessionAdapter) Subscribe(topic string, qos byte, handler func(topic string, payload []byte)) error {
	return a.client.Subscribe(topic, qos, func(t string, p []byte) error {
		handler(t, p)
		return nil
	})
}

// Unsubscribe implements session.Broker.
func (a *mqttSessionAdapter) Unsubscribe(topic string) error {
	return a.client.Unsubscribe(topic)
}

// Publish implements session.Broker.
func (a *mqttSessionAdapter) Publish(topic string, payload []byte, qos byte, retained bool) error {
	return a.client.Publish(topic, payload, qos, retained)
}

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mamaeo/pandora-mqtt/internal/codec"
	"github.com/mamaeo/pandora-mqtt/internal/infrastructure/config"
	"github.com/mamaeo/pandora-mqtt/internal/infrastructure/mqtt"
)

// clearEnv unsets variables the config layer reads, restoring them after
// the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MQTT_BROKER", "MQTT_PORT", "MQTT_USERNAME", "MQTT_PASSWORD",
		"APP_USERNAME", "PANDORA_LOG_LEVEL", "PANDORA_INFLUXDB_TOKEN", configEnvVar,
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func testStreams() (streams, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return streams{in: strings.NewReader(""), out: out, err: &bytes.Buffer{}}, out
}

func changedSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestGetConfigPath(t *testing.T) {
	clearEnv(t)

	if got := getConfigPath(""); got != "" {
		t.Errorf("getConfigPath(\"\") = %q, want empty", got)
	}

	t.Setenv(configEnvVar, "/etc/pandora.yaml")
	if got := getConfigPath(""); got != "/etc/pandora.yaml" {
		t.Errorf("getConfigPath() = %q, want env value", got)
	}
	if got := getConfigPath("local.yaml"); got != "local.yaml" {
		t.Errorf("getConfigPath(flag) = %q, want flag value", got)
	}
}

func TestConfigOptions(t *testing.T) {
	opts := &options{
		verbose:       true,
		printCommands: []string{"UPDATE"},
		brokerHost:    "broker.example",
		brokerPort:    8883,
		subscribe:     []string{"$/garden"},
		disableShell:  true,
		statusAddr:    "0.0.0.0:9000",
		changed: changedSet(flagVerbose, flagPrintCommands, flagBrokerURL, flagBrokerPort,
			flagSubscribe, flagDisableShell, flagStatusAddr),
	}

	overrides, err := opts.configOptions()
	if err != nil {
		t.Fatalf("configOptions() error = %v", err)
	}

	cfg := &config.Config{Session: config.SessionConfig{Subscribe: []string{"from/file"}, Interactive: true}}
	for _, o := range overrides {
		o(cfg)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if len(cfg.Session.PrintCommands) != 1 || cfg.Session.PrintCommands[0] != "UPDATE" {
		t.Errorf("PrintCommands = %v", cfg.Session.PrintCommands)
	}
	if cfg.MQTT.Broker.Host != "broker.example" || cfg.MQTT.Broker.Port != 8883 {
		t.Errorf("broker = %s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port)
	}
	if want := []string{"from/file", "$/garden"}; strings.Join(cfg.Session.Subscribe, ",") != strings.Join(want, ",") {
		t.Errorf("Subscribe = %v, want %v", cfg.Session.Subscribe, want)
	}
	if cfg.Session.Interactive {
		t.Error("Interactive = true with --disable-shell")
	}
	if !cfg.Status.Enabled || cfg.Status.Host != "0.0.0.0" || cfg.Status.Port != 9000 {
		t.Errorf("Status = %+v", cfg.Status)
	}
}

func TestConfigOptions_UnchangedFlagsIgnored(t *testing.T) {
	opts := &options{brokerHost: "ignored", changed: changedSet()}

	overrides, err := opts.configOptions()
	if err != nil {
		t.Fatalf("configOptions() error = %v", err)
	}
	if len(overrides) != 0 {
		t.Errorf("got %d overrides for no flags", len(overrides))
	}
}

func TestConfigOptions_BadStatusAddr(t *testing.T) {
	for _, addr := range []string{"no-port", "host:http"} {
		opts := &options{statusAddr: addr, changed: changedSet(flagStatusAddr)}
		if _, err := opts.configOptions(); err == nil {
			t.Errorf("configOptions(%q) expected error", addr)
		}
	}
}

func TestRun_InvalidConfigPath(t *testing.T) {
	clearEnv(t)
	s, _ := testStreams()

	err := run(context.Background(), &options{configPath: "/nonexistent/pandora.yaml"}, s)
	if err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

func TestRun_MissingUsername(t *testing.T) {
	clearEnv(t)
	s, _ := testStreams()

	err := run(context.Background(), &options{}, s)
	if err == nil || !strings.Contains(err.Error(), "session.username") {
		t.Fatalf("run() error = %v, want username validation failure", err)
	}
}

func TestRun_UnknownPrintFilter(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_USERNAME", "alice")
	s, _ := testStreams()

	opts := &options{printCommands: []string{"TOASTER"}, changed: changedSet(flagPrintCommands)}
	err := run(context.Background(), opts, s)
	if !errors.Is(err, codec.ErrUnknownType) {
		t.Fatalf("run() error = %v, want ErrUnknownType", err)
	}
}

func TestRun_BrokerUnreachable(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_USERNAME", "alice")
	t.Setenv("MQTT_BROKER", "127.0.0.1")
	t.Setenv("MQTT_PORT", "1")
	s, _ := testStreams()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err := run(ctx, &options{}, s)
	if !errors.Is(err, mqtt.ErrConnectionFailed) {
		t.Fatalf("run() error = %v, want ErrConnectionFailed", err)
	}
}

func TestRootCommand_FlagsReachConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_USERNAME", "alice")

	dir := t.TempDir()
	path := filepath.Join(dir, "pandora.yaml")
	if err := os.WriteFile(path, []byte("mqtt:\n  broker:\n    host: from-file.invalid\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, _ := testStreams()
	cmd := newRootCommand(s)
	cmd.SetArgs([]string{"--config", path, "-u", "127.0.0.1", "-p", "1", "-c", "UPDATE", "-s", "$/garden", "-d"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	// The flags override the file's host; port 1 refuses the connection.
	err := cmd.ExecuteContext(context.Background())
	if !errors.Is(err, mqtt.ErrConnectionFailed) {
		t.Fatalf("Execute() error = %v, want ErrConnectionFailed", err)
	}
	if strings.Contains(err.Error(), "from-file.invalid") {
		t.Errorf("flag host not applied: %v", err)
	}
}

func TestRootCommand_RejectsPositionalArgs(t *testing.T) {
	s, _ := testStreams()
	cmd := newRootCommand(s)
	cmd.SetArgs([]string{"unexpected"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.Execute(); err == nil {
		t.Error("Execute() expected error for positional argument")
	}
}

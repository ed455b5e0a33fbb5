// Package config handles loading and validating the Pandora client configuration.
//
// This package manages:
//   - Loading configuration from an optional YAML file
//   - Reading the .env file used by existing Pandora deployments
//   - Overriding with environment variables
//   - Applying command-line overrides
//   - Validation of required fields
//
// Security Considerations:
//   - Broker passwords and InfluxDB tokens should come from the environment
//     (MQTT_PASSWORD, PANDORA_INFLUXDB_TOKEN) rather than the YAML file
//   - The .env file should have restricted permissions (0600)
//
// Usage:
//
//	_ = config.LoadDotEnv(config.DefaultEnvFile)
//	cfg, err := config.Load(ctx, "pandora.yaml", func(c *config.Config) {
//	    c.MQTT.Broker.Host = "broker.local"
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.TopicPrefix()) // pandora/alice/
package config

// Package mqtt provides MQTT client connectivity for the Pandora client.
//
// This package manages:
//   - Connection to the broker with auto-reconnect after startup
//   - Publishing of binary command frames
//   - Topic subscriptions with wildcard support
//   - Resolution of relative topics against the pandora/<username>/ prefix
//   - Connection health monitoring
//
// # Architecture
//
// Pandora controllers publish sensor updates and receive commands on topics
// below pandora/<username>/. This client sits on the same broker:
//
//	pandora CLI ↔ MQTT Broker ↔ Pandora controllers
//
// # Startup behaviour
//
// The first connection is attempted once with a timeout. If it fails,
// Connect returns ErrConnectionFailed and the command exits. Once connected,
// paho reconnects in the background and tracked subscriptions are restored
// on every reconnect.
//
// # Security Considerations
//
//   - Enable TLS (cfg.Broker.TLS=true) for brokers outside the local network
//   - Credentials come from MQTT_USERNAME/MQTT_PASSWORD and are never logged
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	topic := mqtt.ExpandTopic("pandora/alice/", "garden", true)
//	err = client.Subscribe(topic, 0, func(topic string, payload []byte) error {
//	    frame, err := codec.Decode(payload)
//	    ...
//	})
//
//	client.Publish(topic, frame, 0, false)
package mqtt

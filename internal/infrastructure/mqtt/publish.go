package mqtt

import (
	"fmt"
)

// maxPayloadSize caps outgoing payloads. Command frames are at most 32
// bytes; anything near this limit is a programming error.
const maxPayloadSize = 1 << 16

// Publish sends a binary frame to the specified MQTT topic.
//
// Parameters:
//   - topic: The topic to publish to (e.g., "pandora/alice/garden")
//   - payload: The encoded frame
//   - qos: Quality of Service level (0, 1, or 2)
//   - retained: Whether the broker should retain the message
//
// Commands are never retained: a controller joining later must not act on
// a stale command.
//
// Returns:
//   - error: nil on success, or wrapped error describing the failure
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if err := ValidatePublishTopic(topic); err != nil {
		return err
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes", ErrPublishFailed, len(payload), maxPayloadSize)
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	return await(c.client.Publish(topic, qos, retained, payload), defaultPublishTimeout, ErrPublishFailed)
}

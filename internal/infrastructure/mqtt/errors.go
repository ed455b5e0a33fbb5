package mqtt

import "errors"

// Transport errors. The session reports all of these to the user and keeps
// running, except ErrConnectionFailed which is fatal at startup.
var (
	// ErrNotConnected means the broker connection is currently down.
	ErrNotConnected = errors.New("mqtt: client not connected")

	// ErrConnectionFailed means the broker refused or did not answer the
	// first connection attempt.
	ErrConnectionFailed = errors.New("mqtt: connection failed")

	ErrPublishFailed     = errors.New("mqtt: publish failed")
	ErrSubscribeFailed   = errors.New("mqtt: subscribe failed")
	ErrUnsubscribeFailed = errors.New("mqtt: unsubscribe failed")

	// ErrInvalidQoS is returned for a QoS above 2.
	ErrInvalidQoS = errors.New("mqtt: invalid QoS level (must be 0, 1, or 2)")

	// ErrInvalidTopic is returned for an empty topic or misplaced wildcards.
	ErrInvalidTopic = errors.New("mqtt: invalid topic")
)

package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/mamaeo/pandora-mqtt/internal/codec"
	"github.com/mamaeo/pandora-mqtt/internal/infrastructure/logging"
	"github.com/mamaeo/pandora-mqtt/internal/infrastructure/mqtt"
)

// Broker is the publish/subscribe transport used by a Session.
// The mqtt client is adapted to it in main.
type Broker interface {
	Subscribe(topic string, qos byte, handler func(topic string, payload []byte)) error
	Unsubscribe(topic string) error
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// Recorder receives decoded sensor updates, e.g. for InfluxDB.
type Recorder interface {
	WriteSensorUpdate(topic string, u codec.Update)
}

// Deps holds the collaborators of a Session.
type Deps struct {
	Broker  Broker
	Printer *Printer
	Logger  *logging.Logger

	// Prefix is prepended to relative topics, e.g. "pandora/alice/".
	Prefix string

	// QoS is used for subscriptions.
	QoS byte

	// Recorder is optional.
	Recorder Recorder

	// Now defaults to time.Now and stamps outgoing frames.
	Now func() time.Time
}

// Session is the state of one interactive client: the subscribed topics and
// the collaborators needed to act on them.
//
// Thread Safety:
//   - HandleMessage may run on transport goroutines concurrently with the
//     other methods.
type Session struct {
	broker   Broker
	printer  *Printer
	logger   *logging.Logger
	recorder Recorder
	prefix   string
	qos      byte
	now      func() time.Time

	topics TopicList
}

// New creates a Session.
func New(deps Deps) *Session {
	s := &Session{
		broker:   deps.Broker,
		printer:  deps.Printer,
		logger:   deps.Logger,
		recorder: deps.Recorder,
		prefix:   deps.Prefix,
		qos:      deps.QoS,
		now:      deps.Now,
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Prefix returns the topic prefix.
func (s *Session) Prefix() string { return s.prefix }

// ResolveTopic applies the prefix rules to a user-supplied topic.
//
// With addPrefix the prefix is always prepended; otherwise a leading "$/"
// is replaced by the prefix and other topics are left alone.
func (s *Session) ResolveTopic(topic string, addPrefix bool) string {
	return mqtt.ExpandTopic(s.prefix, topic, addPrefix)
}

// Subscribe resolves topic, subscribes to it and appends it to the list.
//
// Returns:
//   - string: The resolved topic
//   - error: Transport failure; the list is only changed on success
func (s *Session) Subscribe(topic string, addPrefix bool) (string, error) {
	resolved := s.ResolveTopic(topic, addPrefix)

	if err := s.broker.Subscribe(resolved, s.qos, s.HandleMessage); err != nil {
		return "", fmt.Errorf("subscribing to %s: %w", resolved, err)
	}

	s.topics.Append(resolved)
	s.logger.Debug("subscribed", "topic", resolved)
	return resolved, nil
}

// Unsubscribe removes the topic at index.
//
// Returns:
//   - string: The topic removed
//   - error: ErrNoTopics, ErrTopicIndex, or a transport failure; the list is
//     unchanged on error
func (s *Session) Unsubscribe(index int) (string, error) {
	topic, err := s.topics.Get(index)
	if err != nil {
		return "", err
	}

	if err := s.broker.Unsubscribe(topic); err != nil {
		return "", fmt.Errorf("unsubscribing from %s: %w", topic, err)
	}

	if err := s.topics.Remove(index, topic); err != nil {
		return "", err
	}

	s.logger.Debug("unsubscribed", "topic", topic)
	return topic, nil
}

// Topics returns a copy of the subscribed topics in subscription order.
func (s *Session) Topics() []string {
	return s.topics.Snapshot()
}

// Publish encodes rec and publishes it, not retained, to the topic at index.
//
// Input problems (no topics, bad index, unencodable record) are reported
// before anything is sent.
//
// Returns:
//   - string: The topic published to
//   - error: Input or transport failure
func (s *Session) Publish(index int, qos byte, rec codec.Record) (string, error) {
	topic, err := s.topics.Get(index)
	if err != nil {
		return "", err
	}

	payload, err := codec.Encode(rec)
	if err != nil {
		return "", err
	}

	if err := s.broker.Publish(topic, payload, qos, false); err != nil {
		return "", fmt.Errorf("publishing %s to %s: %w", rec.Type(), topic, err)
	}

	s.logger.Debug("published", "type", rec.Type().String(), "topic", topic, "qos", qos, "bytes", len(payload))
	return topic, nil
}

// HandleMessage decodes an inbound frame, prints it if the filter allows
// and forwards sensor updates to the recorder.
//
// Frame errors are logged and the message is dropped.
func (s *Session) HandleMessage(topic string, payload []byte) {
	s.logger.Debug("message received", "topic", topic, "bytes", len(payload))

	frame, err := codec.Decode(payload)
	if err != nil {
		msg := "dropping malformed frame"
		if errors.Is(err, codec.ErrUnknownType) {
			msg = "dropping unrecognized command"
		}
		s.logger.Warn(msg, "topic", topic, "error", err)
		return
	}

	if s.printer != nil {
		if _, err := s.printer.Print(frame.Record); err != nil {
			s.logger.Warn("printing frame failed", "topic", topic, "error", err)
		}
	}

	if u, ok := frame.Record.(codec.Update); ok && s.recorder != nil {
		s.recorder.WriteSensorUpdate(topic, u)
	}
}

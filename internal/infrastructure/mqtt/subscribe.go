package mqtt

import (
	"fmt"
	"sort"
)

// Subscribe starts delivering messages matching topic to handler.
//
// The filter may use + and # wildcards, e.g. "pandora/alice/#". The
// subscription is remembered and restored after a reconnect; if the broker
// rejects it, it is forgotten again.
//
// Parameters:
//   - topic: Topic filter
//   - qos: Maximum QoS for delivered messages (0-2)
//   - handler: Called for each message on a paho goroutine
//
// Returns:
//   - error: ErrInvalidTopic, ErrInvalidQoS, ErrNotConnected or ErrSubscribeFailed
func (c *Client) Subscribe(topic string, qos byte, handler MessageHandler) error {
	if err := ValidateFilter(topic); err != nil {
		return err
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if handler == nil {
		return fmt.Errorf("%w: handler cannot be nil", ErrSubscribeFailed)
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	c.subMu.Lock()
	c.subscriptions[topic] = subscription{qos: qos, handler: handler}
	c.subMu.Unlock()

	token := c.client.Subscribe(topic, qos, c.wrapHandler(handler))
	if err := await(token, defaultPublishTimeout, ErrSubscribeFailed); err != nil {
		c.forget(topic)
		return err
	}
	return nil
}

// Unsubscribe stops delivery for a filter previously passed to Subscribe.
// The filter is only forgotten once the broker acknowledges; messages
// already in flight may still arrive.
func (c *Client) Unsubscribe(topic string) error {
	if topic == "" {
		return ErrInvalidTopic
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	if err := await(c.client.Unsubscribe(topic), defaultPublishTimeout, ErrUnsubscribeFailed); err != nil {
		return err
	}
	c.forget(topic)
	return nil
}

func (c *Client) forget(topic string) {
	c.subMu.Lock()
	delete(c.subscriptions, topic)
	c.subMu.Unlock()
}

// SubscriptionCount returns the number of tracked filters.
func (c *Client) SubscriptionCount() int {
	c.subMu.RLock()
	defer c.subMu.RUnlock()
	return len(c.subscriptions)
}

// HasSubscription reports whether exactly topic is tracked. Wildcards are
// not matched.
func (c *Client) HasSubscription(topic string) bool {
	c.subMu.RLock()
	_, ok := c.subscriptions[topic]
	c.subMu.RUnlock()
	return ok
}

// Subscriptions returns the tracked topic filters in lexical order.
func (c *Client) Subscriptions() []string {
	c.subMu.RLock()
	defer c.subMu.RUnlock()

	topics := make([]string, 0, len(c.subscriptions))
	for t := range c.subscriptions {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics
}

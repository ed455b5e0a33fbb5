package mqtt

import (
	"fmt"
	"strings"
)

// PrefixPlaceholder at the start of a topic stands for the session's topic
// prefix, so "$/garden" becomes "pandora/alice/garden".
const PrefixPlaceholder = "$/"

// Wildcard characters defined by MQTT 3.1.1.
const (
	wildcardSingle = "+"
	wildcardMulti  = "#"
)

// ExpandTopic resolves a user-supplied topic against the session prefix.
//
// When addPrefix is true the prefix is prepended unconditionally. Otherwise
// only a leading PrefixPlaceholder is replaced and any other topic is used
// as given.
//
// Example:
//
//	ExpandTopic("pandora/alice/", "garden", true)    // "pandora/alice/garden"
//	ExpandTopic("pandora/alice/", "$/garden", false) // "pandora/alice/garden"
//	ExpandTopic("pandora/alice/", "other/x", false)  // "other/x"
func ExpandTopic(prefix, topic string, addPrefix bool) string {
	if addPrefix {
		return prefix + topic
	}
	if strings.HasPrefix(topic, PrefixPlaceholder) {
		return prefix + strings.TrimPrefix(topic, PrefixPlaceholder)
	}
	return topic
}

// ValidateFilter checks a subscription filter.
//
// "+" must fill a whole level and "#" must be the whole last level.
func ValidateFilter(topic string) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if strings.ContainsRune(topic, 0) {
		return fmt.Errorf("%w: contains NUL", ErrInvalidTopic)
	}

	levels := strings.Split(topic, "/")
	for i, level := range levels {
		if strings.Contains(level, wildcardMulti) && (level != wildcardMulti || i != len(levels)-1) {
			return fmt.Errorf("%w: %q: '#' must be the last level", ErrInvalidTopic, topic)
		}
		if strings.Contains(level, wildcardSingle) && level != wildcardSingle {
			return fmt.Errorf("%w: %q: '+' must occupy a whole level", ErrInvalidTopic, topic)
		}
	}
	return nil
}

// ValidatePublishTopic checks a topic used for publishing. Wildcards are not
// allowed, so publishing to a topic subscribed as "pandora/alice/#" fails
// here instead of being rejected by the broker.
func ValidatePublishTopic(topic string) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if strings.ContainsAny(topic, wildcardSingle+wildcardMulti) {
		return fmt.Errorf("%w: %q: wildcards not allowed when publishing", ErrInvalidTopic, topic)
	}
	if strings.ContainsRune(topic, 0) {
		return fmt.Errorf("%w: contains NUL", ErrInvalidTopic)
	}
	return nil
}

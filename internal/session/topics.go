package session

import (
	"fmt"
	"sync"
)

// TopicList is the ordered list of subscribed topics.
//
// Entries are addressed by index. Negative indices count from the end, so
// -1 is the most recent subscription.
//
// Thread Safety:
//   - Safe for concurrent use. The shell mutates the list while the status
//     endpoint and the delivery path may read it.
type TopicList struct {
	mu     sync.RWMutex
	topics []string
}

// Append adds a topic at the end of the list.
func (l *TopicList) Append(topic string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.topics = append(l.topics, topic)
}

// Len returns the number of topics.
func (l *TopicList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.topics)
}

// Get returns the topic at index.
//
// Returns:
//   - string: The topic
//   - error: ErrNoTopics if the list is empty, ErrTopicIndex if index is
//     outside [-Len, Len-1]
func (l *TopicList) Get(index int) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, err := resolveIndex(index, len(l.topics))
	if err != nil {
		return "", err
	}
	return l.topics[i], nil
}

// Remove deletes the entry at index if it still holds topic. The check
// guards against the list changing between Get and Remove.
//
// Returns:
//   - error: ErrNoTopics, ErrTopicIndex, or ErrTopicIndex when the entry no
//     longer matches; the list is unchanged on error
func (l *TopicList) Remove(index int, topic string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, err := resolveIndex(index, len(l.topics))
	if err != nil {
		return err
	}
	if l.topics[i] != topic {
		return fmt.Errorf("%w: entry %d changed", ErrTopicIndex, index)
	}

	l.topics = append(l.topics[:i], l.topics[i+1:]...)
	return nil
}

// Snapshot returns a copy of the list.
func (l *TopicList) Snapshot() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]string, len(l.topics))
	copy(out, l.topics)
	return out
}

// resolveIndex maps a possibly negative index onto [0, n).
func resolveIndex(index, n int) (int, error) {
	if n == 0 {
		return 0, ErrNoTopics
	}

	i := index
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: %d (have %d topics)", ErrTopicIndex, index, n)
	}
	return i, nil
}

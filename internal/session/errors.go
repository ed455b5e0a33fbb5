package session

import "errors"

// Sentinel errors for user input problems. None of them end the session;
// the shell reports them and reads the next line.
var (
	// ErrInvalidArgument is returned when an argument cannot be converted
	// to the kind its position requires.
	ErrInvalidArgument = errors.New("session: invalid argument")

	// ErrTooManyArguments is returned when a command line has more
	// arguments than the command accepts.
	ErrTooManyArguments = errors.New("session: too many arguments")

	// ErrTopicIndex is returned when a topic index is outside the list.
	ErrTopicIndex = errors.New("session: topic index out of range")

	// ErrNoTopics is returned by commands that need a subscribed topic.
	ErrNoTopics = errors.New("session: you must be subscribed to at least one topic")

	// ErrUnknownCommand is returned for a command name the shell does not know.
	ErrUnknownCommand = errors.New("session: unknown command")
)

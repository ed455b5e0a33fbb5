package codec

import "errors"

// Domain errors for the codec package.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrUnknownType is returned by Decode when the tag byte does not match
	// any known frame type.
	ErrUnknownType = errors.New("codec: unrecognized command")

	// ErrMalformedFrame is returned by Decode when the buffer is shorter than
	// the fixed size of its frame type.
	ErrMalformedFrame = errors.New("codec: malformed frame")

	// ErrNotEncodable is returned by Encode for records this client only
	// receives (UPDATE).
	ErrNotEncodable = errors.New("codec: record cannot be encoded")

	// ErrUnknownColor is returned when a colour name or code is not in the
	// colour table.
	ErrUnknownColor = errors.New("codec: unknown color")

	// ErrInvalidTimeRange is returned when a time range string does not have
	// the HH:MM-HH:MM shape.
	ErrInvalidTimeRange = errors.New("codec: invalid time range format")
)

package codec

import (
	"fmt"
	"regexp"
	"strconv"
)

// timeRangePattern matches HH:MM-HH:MM. Only the shape is checked; 99:99 is
// accepted because the controller firmware does its own clamping.
var timeRangePattern = regexp.MustCompile(`^([0-9]{2}):([0-9]{2})-([0-9]{2}):([0-9]{2})$`)

// TimeRange is a daily window, encoded on the wire as four bytes.
type TimeRange struct {
	StartHour   uint8
	StartMinute uint8
	EndHour     uint8
	EndMinute   uint8
}

// ParseTimeRange parses a window such as "12:15-14:30".
//
// Returns ErrInvalidTimeRange if s does not have the HH:MM-HH:MM shape.
// Hours and minutes are not checked against 23 and 59.
func ParseTimeRange(s string) (TimeRange, error) {
	m := timeRangePattern.FindStringSubmatch(s)
	if m == nil {
		return TimeRange{}, fmt.Errorf("%w: %q (want HH:MM-HH:MM)", ErrInvalidTimeRange, s)
	}

	var parts [4]uint8
	for i := range parts {
		// Two decimal digits always fit in a uint8.
		v, _ := strconv.ParseUint(m[i+1], 10, 8) //nolint:errcheck // guaranteed by the pattern
		parts[i] = uint8(v)
	}

	return TimeRange{
		StartHour:   parts[0],
		StartMinute: parts[1],
		EndHour:     parts[2],
		EndMinute:   parts[3],
	}, nil
}

// String formats the range as HH:MM-HH:MM.
func (r TimeRange) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", r.StartHour, r.StartMinute, r.EndHour, r.EndMinute)
}

func (r TimeRange) bytes() [4]byte {
	return [4]byte{r.StartHour, r.StartMinute, r.EndHour, r.EndMinute}
}

func timeRangeFrom(b []byte) TimeRange {
	return TimeRange{
		StartHour:   b[0],
		StartMinute: b[1],
		EndHour:     b[2],
		EndMinute:   b[3],
	}
}

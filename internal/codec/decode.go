package codec

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// Decode parses a frame received from a controller.
//
// The tag at offset 0 selects the layout. Bytes past the fixed frame size
// are ignored. Origin is read as a uint32 Unix timestamp.
//
// Parameters:
//   - data: Raw MQTT payload
//
// Returns:
//   - Frame: Header ID and typed record
//   - error: ErrUnknownType if the tag is not 0-4,
//     ErrMalformedFrame if data is shorter than the type requires
func Decode(data []byte) (Frame, error) {
	if len(data) == 0 {
		return Frame{}, fmt.Errorf("%w: empty payload", ErrMalformedFrame)
	}

	t := Type(data[0])
	if !t.Valid() {
		return Frame{}, fmt.Errorf("%w: tag %d", ErrUnknownType, data[0])
	}

	if len(data) < t.Size() {
		return Frame{}, fmt.Errorf("%w: %s too short (%d bytes, need %d)", ErrMalformedFrame, t, len(data), t.Size())
	}

	frame := Frame{ID: binary.LittleEndian.Uint32(data[4:8])}

	switch t {
	case TypeUpdate:
		frame.Record = Update{
			Dryness:     binary.LittleEndian.Uint16(data[8:10]),
			Brightness:  binary.LittleEndian.Uint16(data[10:12]),
			Humidity:    math.Float32frombits(binary.LittleEndian.Uint32(data[12:16])),
			Temperature: math.Float32frombits(binary.LittleEndian.Uint32(data[16:20])),
			Capacity:    data[20] != 0,
			Origin:      readOrigin(data[24:28]),
		}
	case TypeLight:
		frame.Record = Light{
			Color:  Color(data[8]),
			Limit:  binary.LittleEndian.Uint32(data[12:16]),
			Origin: readOrigin(data[16:20]),
		}
	case TypeDrain:
		frame.Record = Drain{
			On:     data[8] != 0,
			Limit:  binary.LittleEndian.Uint32(data[12:16]),
			Origin: readOrigin(data[16:20]),
		}
	case TypeAuto:
		frame.Record = Auto{
			On:            data[8] != 0,
			DrynessMax:    binary.LittleEndian.Uint16(data[12:14]),
			DrainWindow:   timeRangeFrom(data[16:20]),
			BrightnessMin: binary.LittleEndian.Uint16(data[20:22]),
			LightWindow:   timeRangeFrom(data[24:28]),
			Origin:        readOrigin(data[28:32]),
		}
	case TypeForceUpdate:
		frame.Record = ForceUpdate{
			On:     data[8] != 0,
			Origin: readOrigin(data[12:16]),
		}
	}

	return frame, nil
}

// readOrigin reads a uint32 Unix timestamp.
func readOrigin(b []byte) time.Time {
	return time.Unix(int64(binary.LittleEndian.Uint32(b)), 0)
}

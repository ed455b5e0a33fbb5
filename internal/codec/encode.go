package codec

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// Encode serialises a command record into its fixed-length wire frame.
//
// The header ID is always 0. Origin is written as float32 seconds since
// the Unix epoch.
//
// Parameters:
//   - r: Light, Drain, Auto or ForceUpdate
//
// Returns:
//   - []byte: Frame of exactly r.Type().Size() bytes
//   - error: ErrUnknownColor for a Light colour outside the table,
//     ErrNotEncodable for Update or unknown record types
func Encode(r Record) ([]byte, error) {
	switch rec := r.(type) {
	case Light:
		return encodeLight(rec)
	case Drain:
		return encodeDrain(rec), nil
	case Auto:
		return encodeAuto(rec), nil
	case ForceUpdate:
		return encodeForceUpdate(rec), nil
	case nil:
		return nil, fmt.Errorf("%w: nil record", ErrNotEncodable)
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotEncodable, r.Type())
	}
}

// newFrame allocates a zeroed frame and writes the header.
func newFrame(t Type) []byte {
	buf := make([]byte, t.Size())
	buf[0] = byte(t)
	binary.LittleEndian.PutUint32(buf[4:8], 0)
	return buf
}

func encodeLight(l Light) ([]byte, error) {
	if !l.Color.Valid() {
		return nil, fmt.Errorf("%w: code %d", ErrUnknownColor, uint8(l.Color))
	}

	buf := newFrame(TypeLight)
	buf[8] = byte(l.Color)
	binary.LittleEndian.PutUint32(buf[12:16], l.Limit)
	putOrigin(buf[16:20], l.Origin)
	return buf, nil
}

func encodeDrain(d Drain) []byte {
	buf := newFrame(TypeDrain)
	buf[8] = boolByte(d.On)
	binary.LittleEndian.PutUint32(buf[12:16], d.Limit)
	putOrigin(buf[16:20], d.Origin)
	return buf
}

func encodeAuto(a Auto) []byte {
	buf := newFrame(TypeAuto)
	buf[8] = boolByte(a.On)
	binary.LittleEndian.PutUint16(buf[12:14], a.DrynessMax)
	drain := a.DrainWindow.bytes()
	copy(buf[16:20], drain[:])
	binary.LittleEndian.PutUint16(buf[20:22], a.BrightnessMin)
	light := a.LightWindow.bytes()
	copy(buf[24:28], light[:])
	putOrigin(buf[28:32], a.Origin)
	return buf
}

func encodeForceUpdate(f ForceUpdate) []byte {
	buf := newFrame(TypeForceUpdate)
	buf[8] = boolByte(f.On)
	putOrigin(buf[12:16], f.Origin)
	return buf
}

// putOrigin writes t as float32 seconds. float32 only has 24 bits of
// mantissa, so current timestamps are rounded to roughly two minutes; the
// controllers accept this.
func putOrigin(dst []byte, t time.Time) {
	var secs float64
	if !t.IsZero() {
		secs = float64(t.UnixNano()) / float64(time.Second)
	}
	binary.LittleEndian.PutUint32(dst, math.Float32bits(float32(secs)))
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

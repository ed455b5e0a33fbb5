// Package codec encodes and decodes Pandora command frames.
//
// A frame is a fixed-length, little-endian binary record exchanged with the
// Pandora controllers over MQTT. There is no length prefix, checksum or version
// field: the frame type is identified by the tag byte at offset 0 and the
// length is implied by the type.
//
// # Frame Layout
//
// Every frame starts with the same 8-byte header:
//
//	Byte 0:   Type tag (0=UPDATE, 1=LIGHT, 2=DRAIN, 3=AUTO, 4=FORCE_UPDATE)
//	Byte 1-3: Padding
//	Byte 4-7: Frame ID (uint32, always 0 when sent by this client)
//
// The payload follows immediately. Multi-byte fields are little-endian and
// padding bytes keep trailing fields 4-byte aligned:
//
//	UPDATE        28 bytes  dryness u16, brightness u16, humidity f32,
//	                        temperature f32, capacity bool, 3 pad, origin u32
//	LIGHT         20 bytes  color u8, 3 pad, limit u32, origin
//	DRAIN         20 bytes  is_on bool, 3 pad, limit u32, origin
//	AUTO          32 bytes  is_on bool, 3 pad, dryness_max u16, 2 pad,
//	                        drain window 4×u8, brightness_min u16, 2 pad,
//	                        light window 4×u8, origin
//	FORCE_UPDATE  16 bytes  is_on bool, 3 pad, origin
//
// # Origin Width
//
// The controllers publish origin as a uint32 Unix timestamp, but accept
// commands whose origin is a float32 number of seconds. Both widths are
// 4 bytes so offsets line up; only the interpretation differs. Encode and
// Decode reproduce this exactly so the client stays interoperable with
// deployed firmware.
//
// # Usage
//
//	payload, err := codec.Encode(codec.Light{Color: codec.ColorWhite, Limit: 60, Origin: time.Now()})
//	if err != nil {
//	    return err
//	}
//
//	frame, err := codec.Decode(msg)
//	switch {
//	case errors.Is(err, codec.ErrUnknownType):
//	    // log and drop
//	case err != nil:
//	    // malformed frame, log and drop
//	}
package codec

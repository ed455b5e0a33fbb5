package codec

import (
	"strings"
	"time"
)

// Type is the frame type tag stored at offset 0.
type Type uint8

// Frame type tags.
const (
	TypeUpdate      Type = 0
	TypeLight       Type = 1
	TypeDrain       Type = 2
	TypeAuto        Type = 3
	TypeForceUpdate Type = 4
)

// Frame sizes in bytes, header included.
const (
	// HeaderSize is the size of the common type/id header.
	HeaderSize = 8

	UpdateSize      = 28
	LightSize       = 20
	DrainSize       = 20
	AutoSize        = 32
	ForceUpdateSize = 16
)

var typeNames = map[Type]string{
	TypeUpdate:      "UPDATE",
	TypeLight:       "LIGHT",
	TypeDrain:       "DRAIN",
	TypeAuto:        "AUTO",
	TypeForceUpdate: "FORCE_UPDATE",
}

// String returns the upper-case command name (e.g. "FORCE_UPDATE").
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Valid reports whether t is one of the five known frame types.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// Size returns the fixed frame length for t, or 0 for unknown types.
func (t Type) Size() int {
	switch t {
	case TypeUpdate:
		return UpdateSize
	case TypeLight:
		return LightSize
	case TypeDrain:
		return DrainSize
	case TypeAuto:
		return AutoSize
	case TypeForceUpdate:
		return ForceUpdateSize
	default:
		return 0
	}
}

// ParseType looks up a frame type by its command name. Matching is
// case-insensitive and accepts "force-update" as well as "force_update".
func ParseType(name string) (Type, bool) {
	name = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Record is one of Update, Light, Drain, Auto or ForceUpdate.
type Record interface {
	Type() Type
}

// Frame is a decoded frame: the header ID plus the typed record.
type Frame struct {
	// ID is carried in the header. Controllers currently always send 0.
	ID uint32

	Record Record
}

// Update is a sensor report published by a controller. It is never sent
// by this client.
type Update struct {
	Dryness     uint16
	Brightness  uint16
	Humidity    float32
	Temperature float32
	Capacity    bool
	Origin      time.Time
}

// Light switches the grow light to a colour for limit seconds.
type Light struct {
	Color  Color
	Limit  uint32
	Origin time.Time
}

// Drain opens or closes the water drain for limit seconds.
type Drain struct {
	On     bool
	Limit  uint32
	Origin time.Time
}

// Auto configures automatic mode: drain below a dryness threshold inside
// DrainWindow, light below a brightness threshold inside LightWindow.
type Auto struct {
	On            bool
	DrynessMax    uint16
	DrainWindow   TimeRange
	BrightnessMin uint16
	LightWindow   TimeRange
	Origin        time.Time
}

// ForceUpdate asks a controller to publish an Update immediately.
type ForceUpdate struct {
	On     bool
	Origin time.Time
}

// Type implements Record.
func (Update) Type() Type { return TypeUpdate }

// Type implements Record.
func (Light) Type() Type { return TypeLight }

// Type implements Record.
func (Drain) Type() Type { return TypeDrain }

// Type implements Record.
func (Auto) Type() Type { return TypeAuto }

// Type implements Record.
func (ForceUpdate) Type() Type { return TypeForceUpdate }

package codec

import (
	"fmt"
	"sort"
	"strings"
)

// Color is the RGB bitmask understood by the light controller.
type Color uint8

// Supported colours. Bits are red=1, green=2, blue=4.
const (
	ColorOff   Color = 0
	ColorRed   Color = 1
	ColorGreen Color = 2
	ColorBlue  Color = 4
	ColorWhite Color = 7
)

var colorNames = map[string]Color{
	"off":   ColorOff,
	"red":   ColorRed,
	"green": ColorGreen,
	"blue":  ColorBlue,
	"white": ColorWhite,
}

// ParseColor maps a colour name to its code. Names are case-insensitive.
func ParseColor(name string) (Color, error) {
	c, ok := colorNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownColor, name, strings.Join(ColorNames(), ", "))
	}
	return c, nil
}

// ColorNames returns the supported colour names in sorted order.
func ColorNames() []string {
	names := make([]string, 0, len(colorNames))
	for name := range colorNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Valid reports whether c is in the colour table.
func (c Color) Valid() bool {
	for _, code := range colorNames {
		if code == c {
			return true
		}
	}
	return false
}

// String returns the colour name, or the numeric code for values outside
// the table.
func (c Color) String() string {
	for name, code := range colorNames {
		if code == c {
			return name
		}
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

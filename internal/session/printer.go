package session

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mamaeo/pandora-mqtt/internal/codec"
)

// FilterAll selects every frame type in a print filter.
const FilterAll = "all"

// Printer writes decoded frames as one line each.
//
// It also implements io.Writer so the shell can share the same output
// without interleaving partial lines with frames delivered concurrently.
type Printer struct {
	mu  sync.Mutex
	w   io.Writer
	all bool
	// types is the set of frame types printed when all is false.
	types map[codec.Type]bool
	loc   *time.Location
}

// NewPrinter creates a Printer for the given filter.
//
// Parameters:
//   - w: Destination, usually os.Stdout
//   - commands: "all" or frame type names such as "UPDATE" or "force-update";
//     an empty filter prints everything
//
// Returns:
//   - *Printer: Ready to use
//   - error: codec.ErrUnknownType for a name that is not a frame type
func NewPrinter(w io.Writer, commands []string) (*Printer, error) {
	p := &Printer{
		w:     w,
		types: make(map[codec.Type]bool),
		loc:   time.Local,
	}

	if len(commands) == 0 {
		p.all = true
	}

	for _, name := range commands {
		if strings.EqualFold(strings.TrimSpace(name), FilterAll) {
			p.all = true
			continue
		}
		t, ok := codec.ParseType(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q in print filter", codec.ErrUnknownType, name)
		}
		p.types[t] = true
	}

	return p, nil
}

// Enabled reports whether frames of type t are printed.
func (p *Printer) Enabled(t codec.Type) bool {
	return p.all || p.types[t]
}

// Print writes r if its type passes the filter.
//
// Returns:
//   - bool: Whether a line was written
//   - error: From the underlying writer
func (p *Printer) Print(r codec.Record) (bool, error) {
	if r == nil || !p.Enabled(r.Type()) {
		return false, nil
	}

	line := FormatRecord(r, p.loc)

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := io.WriteString(p.w, line+"\n"); err != nil {
		return false, err
	}
	return true, nil
}

// Write implements io.Writer, serialised with frame output.
func (p *Printer) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.w.Write(b)
}

// FormatRecord renders r in the line format controller tooling parses,
// e.g.
//
//	LIGHT -> rgb=7	limit=60	origin=Tue Nov 14 22:13:20 2023
//
// Fields are tab separated and origin uses the ANSI C layout in loc.
func FormatRecord(r codec.Record, loc *time.Location) string {
	switch rec := r.(type) {
	case codec.Update:
		return fmt.Sprintf("UPDATE -> dryness=%d\tbrightness=%d\thumidity=%s\ttemperature=%s\tcapacity=%s\torigin=%s",
			rec.Dryness, rec.Brightness,
			formatFloat(rec.Humidity), formatFloat(rec.Temperature),
			formatBool(rec.Capacity), formatOrigin(rec.Origin, loc))
	case codec.Light:
		return fmt.Sprintf("LIGHT -> rgb=%d\tlimit=%d\torigin=%s",
			uint8(rec.Color), rec.Limit, formatOrigin(rec.Origin, loc))
	case codec.Drain:
		return fmt.Sprintf("DRAIN -> is_on=%s\tlimit=%d\torigin=%s",
			formatBool(rec.On), rec.Limit, formatOrigin(rec.Origin, loc))
	case codec.Auto:
		return fmt.Sprintf("AUTO -> is_on=%s\tdryness_max=%d\ttime_action_limit=%s\tbrightness_min=%d\ttime_action_limit=%s\torigin=%s",
			formatBool(rec.On), rec.DrynessMax, formatWindow(rec.DrainWindow),
			rec.BrightnessMin, formatWindow(rec.LightWindow), formatOrigin(rec.Origin, loc))
	case codec.ForceUpdate:
		return fmt.Sprintf("FORCE_UPDATE -> is_on=%s\torigin=%s",
			formatBool(rec.On), formatOrigin(rec.Origin, loc))
	default:
		return fmt.Sprintf("%s -> %+v", r.Type(), r)
	}
}

// formatBool capitalises like the controller firmware's own logs.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

// formatWindow prints a window without zero padding, e.g. (from 6:0 to 7:45).
func formatWindow(r codec.TimeRange) string {
	return fmt.Sprintf("(from %d:%d to %d:%d)", r.StartHour, r.StartMinute, r.EndHour, r.EndMinute)
}

func formatOrigin(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(time.ANSIC)
}

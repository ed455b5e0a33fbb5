package session

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the type an argument position is converted to.
type Kind int

// Argument kinds.
const (
	KindString Kind = iota
	KindBool
	KindInt
	KindUint16
	KindUint32
	KindQoS
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindQoS:
		return "qos"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Param describes one positional argument.
type Param struct {
	Name    string
	Kind    Kind
	Default string
}

// ArgError reports an argument that could not be converted.
// It matches ErrInvalidArgument with errors.Is.
type ArgError struct {
	Param string
	Kind  Kind
	Value string
	Err   error
}

// Error implements error.
func (e *ArgError) Error() string {
	msg := fmt.Sprintf("%v: %s: cannot use %q as %s", ErrInvalidArgument, e.Param, e.Value, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying conversion error.
func (e *ArgError) Unwrap() error { return e.Err }

// Is reports whether target is ErrInvalidArgument.
func (e *ArgError) Is(target error) bool { return target == ErrInvalidArgument }

// Args holds converted argument values by parameter name.
type Args struct {
	values map[string]any
}

// ParseArgs splits line on whitespace and converts each field according to
// params. Missing trailing arguments take the parameter's default.
//
// Parameters:
//   - line: Argument text after the command name
//   - params: Ordered descriptors for each position
//
// Returns:
//   - Args: Converted values
//   - error: *ArgError for a bad value, ErrTooManyArguments for extra fields
func ParseArgs(line string, params []Param) (Args, error) {
	fields := strings.Fields(line)
	if len(fields) > len(params) {
		return Args{}, fmt.Errorf("%w: got %d, accepts at most %d", ErrTooManyArguments, len(fields), len(params))
	}

	args := Args{values: make(map[string]any, len(params))}
	for i, p := range params {
		raw := p.Default
		if i < len(fields) {
			raw = fields[i]
		}

		v, err := convert(p.Kind, raw)
		if err != nil {
			return Args{}, &ArgError{Param: p.Name, Kind: p.Kind, Value: raw, Err: err}
		}
		args.values[p.Name] = v
	}

	return args, nil
}

func convert(kind Kind, raw string) (any, error) {
	switch kind {
	case KindString:
		return raw, nil
	case KindBool:
		return parseBool(raw)
	case KindInt:
		v, err := strconv.Atoi(raw)
		return v, unwrapNumError(err)
	case KindUint16:
		v, err := strconv.ParseUint(raw, 10, 16)
		return uint16(v), unwrapNumError(err)
	case KindUint32:
		v, err := strconv.ParseUint(raw, 10, 32)
		return uint32(v), unwrapNumError(err)
	case KindQoS:
		v, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return byte(0), unwrapNumError(err)
		}
		if v > 2 {
			return byte(0), fmt.Errorf("must be 0, 1, or 2")
		}
		return byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported kind %s", kind)
	}
}

// parseBool accepts strconv.ParseBool forms plus on/off and yes/no.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("want true/false, on/off, yes/no or 1/0")
	}
	return v, nil
}

// unwrapNumError drops the strconv prefix, which repeats the input.
func unwrapNumError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}

// String returns a string argument. It panics if name was not declared as
// KindString.
func (a Args) String(name string) string { return a.values[name].(string) }

// Bool returns a bool argument.
func (a Args) Bool(name string) bool { return a.values[name].(bool) }

// Int returns an int argument.
func (a Args) Int(name string) int { return a.values[name].(int) }

// Uint16 returns a uint16 argument.
func (a Args) Uint16(name string) uint16 { return a.values[name].(uint16) }

// Uint32 returns a uint32 argument.
func (a Args) Uint32(name string) uint32 { return a.values[name].(uint32) }

// QoS returns a QoS argument.
func (a Args) QoS(name string) byte { return a.values[name].(byte) }

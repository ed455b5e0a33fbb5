package session

import (
	"errors"
	"testing"
)

var testParams = []Param{
	{Name: "on", Kind: KindBool, Default: "true"},
	{Name: "limit", Kind: KindUint32, Default: "10"},
	{Name: "index", Kind: KindInt, Default: "-1"},
	{Name: "qos", Kind: KindQoS, Default: "0"},
}

func TestParseArgs_Defaults(t *testing.T) {
	args, err := ParseArgs("", testParams)
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}

	if !args.Bool("on") || args.Uint32("limit") != 10 || args.Int("index") != -1 || args.QoS("qos") != 0 {
		t.Errorf("defaults = %v", args.values)
	}
}

func TestParseArgs_PartialOverride(t *testing.T) {
	args, err := ParseArgs("  off\t30 ", testParams)
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}

	if args.Bool("on") {
		t.Error("on = true, want false")
	}
	if args.Uint32("limit") != 30 {
		t.Errorf("limit = %d, want 30", args.Uint32("limit"))
	}
	if args.Int("index") != -1 {
		t.Errorf("index = %d, want default -1", args.Int("index"))
	}
}

func TestParseArgs_Bool(t *testing.T) {
	params := []Param{{Name: "on", Kind: KindBool, Default: "true"}}

	tests := map[string]bool{
		"true": true, "True": true, "1": true, "on": true, "YES": true, "y": true,
		"false": false, "False": false, "0": false, "off": false, "no": false, "N": false,
	}

	for input, want := range tests {
		args, err := ParseArgs(input, params)
		if err != nil {
			t.Errorf("ParseArgs(%q) error = %v", input, err)
			continue
		}
		if args.Bool("on") != want {
			t.Errorf("ParseArgs(%q) = %v, want %v", input, args.Bool("on"), want)
		}
	}
}

func TestParseArgs_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		params    []Param
		wantParam string
	}{
		{"bool", "maybe", testParams, "on"},
		{"negative uint32", "true -5", testParams, "limit"},
		{"uint32 overflow", "true 4294967296", testParams, "limit"},
		{"int", "true 1 last", testParams, "index"},
		{"qos above 2", "true 1 0 3", testParams, "qos"},
		{"qos text", "true 1 0 high", testParams, "qos"},
		{"uint16 overflow", "70000", []Param{{Name: "dryness_max", Kind: KindUint16, Default: "0"}}, "dryness_max"},
		{"bad default", "", []Param{{Name: "n", Kind: KindInt, Default: "x"}}, "n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.line, tt.params)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("ParseArgs(%q) error = %v, want ErrInvalidArgument", tt.line, err)
			}

			var argErr *ArgError
			if !errors.As(err, &argErr) {
				t.Fatalf("error %T is not *ArgError", err)
			}
			if argErr.Param != tt.wantParam {
				t.Errorf("Param = %q, want %q", argErr.Param, tt.wantParam)
			}
		})
	}
}

func TestParseArgs_TooMany(t *testing.T) {
	_, err := ParseArgs("true 1 2 0 extra", testParams)
	if !errors.Is(err, ErrTooManyArguments) {
		t.Errorf("ParseArgs() error = %v, want ErrTooManyArguments", err)
	}
}

func TestArgError_Message(t *testing.T) {
	_, err := ParseArgs("maybe", testParams)
	if err == nil {
		t.Fatal("expected error")
	}

	want := `session: invalid argument: on: cannot use "maybe" as bool: want true/false, on/off, yes/no or 1/0`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

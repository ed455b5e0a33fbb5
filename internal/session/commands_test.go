package session

import (
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/mamaeo/pandora-mqtt/internal/codec"
)

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   []string
		line    string
		wantErr error
	}{
		{"unknown command", nil, "frobnicate", ErrUnknownCommand},
		{"help unknown", nil, "help frobnicate", ErrUnknownCommand},
		{"light without topics", nil, "light", ErrNoTopics},
		{"drain without topics", nil, "drain", ErrNoTopics},
		{"unsubscribe without topics", nil, "unsubscribe", ErrNoTopics},
		{"unsubscribe out of range", []string{"subscribe a"}, "unsubscribe 5", ErrTopicIndex},
		{"light unknown colour", []string{"subscribe a"}, "light purple", codec.ErrUnknownColor},
		{"light index out of range", []string{"subscribe a"}, "light white 60 3", ErrTopicIndex},
		{"drain bad bool", []string{"subscribe a"}, "drain maybe", ErrInvalidArgument},
		{"drain bad qos", []string{"subscribe a"}, "drain on 10 -1 7", ErrInvalidArgument},
		{"subscribe too many", nil, "subscribe a true extra", ErrTooManyArguments},
		{"auto bad drain range", []string{"subscribe a"}, "auto true 300 6:30-7:45", codec.ErrInvalidTimeRange},
		{"auto bad light range", []string{"subscribe a"}, "auto true 300 06:30-07:45 500 123:15-14:30", codec.ErrInvalidTimeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			for _, line := range tt.setup {
				if res := env.session.Execute(line); res.Err != nil {
					t.Fatalf("setup %q error = %v", line, res.Err)
				}
			}

			res := env.session.Execute(tt.line)
			if !errors.Is(res.Err, tt.wantErr) {
				t.Errorf("Execute(%q) error = %v, want %v", tt.line, res.Err, tt.wantErr)
			}
			if res.Exit {
				t.Error("error result requested exit")
			}
			if env.broker.publishCount() != 0 {
				t.Errorf("published %d frames for a failed command", env.broker.publishCount())
			}
		})
	}
}

func TestExecute_Commands(t *testing.T) {
	tests := []struct {
		line  string
		check func(t *testing.T, call publishCall)
	}{
		{
			line: "drain off 30",
			check: func(t *testing.T, call publishCall) {
				if len(call.payload) != codec.DrainSize || call.payload[0] != byte(codec.TypeDrain) {
					t.Fatalf("payload = % X", call.payload)
				}
				if call.payload[8] != 0 {
					t.Error("is_on byte set for off")
				}
				if got := binary.LittleEndian.Uint32(call.payload[12:16]); got != 30 {
					t.Errorf("limit = %d, want 30", got)
				}
			},
		},
		{
			line: "auto true 300 06:30-07:45 500 18:00-22:15 0 1",
			check: func(t *testing.T, call publishCall) {
				if len(call.payload) != codec.AutoSize || call.payload[0] != byte(codec.TypeAuto) {
					t.Fatalf("payload = % X", call.payload)
				}
				if call.qos != 1 {
					t.Errorf("qos = %d, want 1", call.qos)
				}
				if got := call.payload[16:20]; string(got) != string([]byte{6, 30, 7, 45}) {
					t.Errorf("drain window = %v", got)
				}
				if got := binary.LittleEndian.Uint16(call.payload[20:22]); got != 500 {
					t.Errorf("brightness_min = %d, want 500", got)
				}
			},
		},
		{
			line: "force_update false",
			check: func(t *testing.T, call publishCall) {
				if len(call.payload) != codec.ForceUpdateSize || call.payload[8] != 0 {
					t.Errorf("payload = % X", call.payload)
				}
			},
		},
		{
			line: "light BLUE 5 0 2",
			check: func(t *testing.T, call publishCall) {
				if call.payload[8] != byte(codec.ColorBlue) || call.qos != 2 {
					t.Errorf("payload = % X qos = %d", call.payload, call.qos)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			env := newTestEnv(t)
			env.session.Execute("subscribe sensors")

			res := env.session.Execute(tt.line)
			if res.Err != nil {
				t.Fatalf("Execute() error = %v", res.Err)
			}
			if len(env.broker.published) != 1 {
				t.Fatalf("published %d frames, want 1", len(env.broker.published))
			}

			call := env.broker.published[0]
			if call.topic != "pandora/alice/sensors" || call.retained {
				t.Errorf("topic = %q retained = %v", call.topic, call.retained)
			}
			tt.check(t, call)
		})
	}
}

func TestExecute_SubscribeListUnsubscribe(t *testing.T) {
	env := newTestEnv(t)

	for _, line := range []string{"subscribe", "subscribe $/garden false", "subscribe other/x false"} {
		if res := env.session.Execute(line); res.Err != nil {
			t.Fatalf("Execute(%q) error = %v", line, res.Err)
		}
	}

	res := env.session.Execute("list")
	want := "[0] pandora/alice/#\n[1] pandora/alice/garden\n[2] other/x"
	if res.Output != want {
		t.Errorf("list = %q, want %q", res.Output, want)
	}

	if res := env.session.Execute("unsubscribe"); res.Err != nil {
		t.Fatalf("unsubscribe error = %v", res.Err)
	}
	if res := env.session.Execute("unsubscribe 0"); res.Err != nil {
		t.Fatalf("unsubscribe 0 error = %v", res.Err)
	}

	if got := env.session.Execute("list").Output; got != "[0] pandora/alice/garden" {
		t.Errorf("list after unsubscribe = %q", got)
	}
	if len(env.broker.unsubscribed) != 2 || env.broker.unsubscribed[0] != "other/x" {
		t.Errorf("broker unsubscribed = %v", env.broker.unsubscribed)
	}
}

func TestExecute_PublishToWildcardFails(t *testing.T) {
	env := newTestEnv(t)
	env.broker.pubErr = errors.New("wildcards not allowed")
	env.session.Execute("subscribe")

	if res := env.session.Execute("force_update"); res.Err == nil {
		t.Error("expected transport error")
	}
}

func TestExecute_Help(t *testing.T) {
	env := newTestEnv(t)

	res := env.session.Execute("help")
	for _, name := range []string{"subscribe", "unsubscribe", "list", "drain", "light", "auto", "force_update", "exit"} {
		if !strings.Contains(res.Output, name) {
			t.Errorf("help output missing %q", name)
		}
	}

	if got := env.session.Execute("?").Output; got != res.Output {
		t.Error("? differs from help")
	}

	light := env.session.Execute("?light").Output
	if !strings.Contains(light, "blue, green, off, red, white") {
		t.Errorf("light help = %q, want colour list", light)
	}

	sub := env.session.Execute("help subscribe").Output
	if !strings.Contains(sub, testPrefix) {
		t.Errorf("subscribe help = %q, want prefix", sub)
	}
}

func TestExecute_ExitAndBlank(t *testing.T) {
	env := newTestEnv(t)

	for _, line := range []string{"exit", "quit", "  exit  "} {
		if res := env.session.Execute(line); !res.Exit || res.Err != nil {
			t.Errorf("Execute(%q) = %+v, want exit", line, res)
		}
	}

	if res := env.session.Execute("   "); res != (Result{}) {
		t.Errorf("blank line result = %+v", res)
	}
}

package codec

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want []byte
	}{
		{
			name: "light white 60s",
			// origin 1000.0 as float32 = 0x447A0000
			rec: Light{Color: ColorWhite, Limit: 60, Origin: time.Unix(1000, 0)},
			want: []byte{
				0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x07, 0x00, 0x00, 0x00,
				0x3C, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x7A, 0x44,
			},
		},
		{
			name: "light off",
			rec:  Light{Color: ColorOff, Limit: 0},
			want: []byte{
				0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00,
			},
		},
		{
			name: "drain on 10s",
			// origin 2.0 as float32 = 0x40000000
			rec: Drain{On: true, Limit: 10, Origin: time.Unix(2, 0)},
			want: []byte{
				0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x01, 0x00, 0x00, 0x00,
				0x0A, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x40,
			},
		},
		{
			name: "auto with windows",
			// dryness_max=300 (0x012C), brightness_min=500 (0x01F4), origin 1.0 = 0x3F800000
			rec: Auto{
				On:            true,
				DrynessMax:    300,
				DrainWindow:   TimeRange{StartHour: 6, StartMinute: 30, EndHour: 7, EndMinute: 45},
				BrightnessMin: 500,
				LightWindow:   TimeRange{StartHour: 18, StartMinute: 0, EndHour: 22, EndMinute: 15},
				Origin:        time.Unix(1, 0),
			},
			want: []byte{
				0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x01, 0x00, 0x00, 0x00,
				0x2C, 0x01, 0x00, 0x00,
				6, 30, 7, 45,
				0xF4, 0x01, 0x00, 0x00,
				18, 0, 22, 15,
				0x00, 0x00, 0x80, 0x3F,
			},
		},
		{
			name: "force update off",
			rec:  ForceUpdate{On: false, Origin: time.Unix(1000, 0)},
			want: []byte{
				0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x7A, 0x44,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.rec)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}

			if len(got) != tt.rec.Type().Size() {
				t.Errorf("len = %d, want %d", len(got), tt.rec.Type().Size())
			}

			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode() = % X, want % X", got, tt.want)
			}
		})
	}
}

func TestEncodeSizes(t *testing.T) {
	tests := []struct {
		rec  Record
		want int
	}{
		{Light{Color: ColorRed}, 20},
		{Drain{}, 20},
		{Auto{}, 32},
		{ForceUpdate{}, 16},
	}

	for _, tt := range tests {
		t.Run(tt.rec.Type().String(), func(t *testing.T) {
			got, err := Encode(tt.rec)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
			if Type(got[0]) != tt.rec.Type() {
				t.Errorf("tag = %d, want %d", got[0], tt.rec.Type())
			}
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		rec     Record
		wantErr error
	}{
		{"update is inbound only", Update{}, ErrNotEncodable},
		{"nil record", nil, ErrNotEncodable},
		{"colour outside table", Light{Color: Color(3)}, ErrUnknownColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.rec)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Encode() error = %v, want %v", err, tt.wantErr)
			}
			if got != nil {
				t.Errorf("Encode() = % X, want nil", got)
			}
		})
	}
}

func TestEncodeDecodeZeroOrigin(t *testing.T) {
	// With a zero origin both widths read back as 0, so the frame survives
	// a full round trip.
	in := Auto{
		On:            true,
		DrynessMax:    42,
		DrainWindow:   TimeRange{1, 2, 3, 4},
		BrightnessMin: 7,
		LightWindow:   TimeRange{5, 6, 7, 8},
		Origin:        time.Unix(0, 0),
	}

	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	frame, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	got, ok := frame.Record.(Auto)
	if !ok {
		t.Fatalf("Record = %T, want Auto", frame.Record)
	}
	if !got.Origin.Equal(in.Origin) {
		t.Errorf("Origin = %v, want %v", got.Origin, in.Origin)
	}
	got.Origin = in.Origin
	if got != in {
		t.Errorf("Decode(Encode()) = %+v, want %+v", got, in)
	}
}

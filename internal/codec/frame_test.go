package codec

import "testing"

func TestParseType(t *testing.T) {
	tests := []struct {
		name   string
		want   Type
		wantOK bool
	}{
		{"UPDATE", TypeUpdate, true},
		{"light", TypeLight, true},
		{"Drain", TypeDrain, true},
		{"auto", TypeAuto, true},
		{"force_update", TypeForceUpdate, true},
		{"force-update", TypeForceUpdate, true},
		{"all", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseType(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("ParseType(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseType(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestTypeString(t *testing.T) {
	if got := TypeForceUpdate.String(); got != "FORCE_UPDATE" {
		t.Errorf("String() = %q, want FORCE_UPDATE", got)
	}
	if got := Type(42).String(); got != "UNKNOWN" {
		t.Errorf("String() = %q, want UNKNOWN", got)
	}
	if Type(5).Valid() {
		t.Error("Type(5).Valid() = true, want false")
	}
	if Type(5).Size() != 0 {
		t.Errorf("Type(5).Size() = %d, want 0", Type(5).Size())
	}
}

package mqtt

import (
	"errors"
	"testing"
)

func TestExpandTopic(t *testing.T) {
	const prefix = "pandora/alice/"

	tests := []struct {
		topic     string
		addPrefix bool
		want      string
	}{
		{"sensors", true, "pandora/alice/sensors"},
		{"#", true, "pandora/alice/#"},
		{"$/sensors", true, "pandora/alice/$/sensors"},
		{"$/sensors", false, "pandora/alice/sensors"},
		{"$/", false, "pandora/alice/"},
		{"other/topic", false, "other/topic"},
		{"a/$/b", false, "a/$/b"},
	}

	for _, tt := range tests {
		if got := ExpandTopic(prefix, tt.topic, tt.addPrefix); got != tt.want {
			t.Errorf("ExpandTopic(%q, %v) = %q, want %q", tt.topic, tt.addPrefix, got, tt.want)
		}
	}
}

func TestValidateFilter(t *testing.T) {
	valid := []string{"#", "pandora/#", "pandora/+/garden", "+", "pandora/alice/garden", "/"}
	for _, topic := range valid {
		if err := ValidateFilter(topic); err != nil {
			t.Errorf("ValidateFilter(%q) error = %v", topic, err)
		}
	}

	invalid := []string{"", "pandora/#/x", "pandora/a#", "pandora/a+/b", "a\x00b"}
	for _, topic := range invalid {
		if err := ValidateFilter(topic); !errors.Is(err, ErrInvalidTopic) {
			t.Errorf("ValidateFilter(%q) error = %v, want ErrInvalidTopic", topic, err)
		}
	}
}

func TestValidatePublishTopic(t *testing.T) {
	if err := ValidatePublishTopic("pandora/alice/garden"); err != nil {
		t.Errorf("ValidatePublishTopic() error = %v", err)
	}

	for _, topic := range []string{"", "pandora/alice/#", "pandora/+/garden", "x\x00"} {
		if err := ValidatePublishTopic(topic); !errors.Is(err, ErrInvalidTopic) {
			t.Errorf("ValidatePublishTopic(%q) error = %v, want ErrInvalidTopic", topic, err)
		}
	}
}

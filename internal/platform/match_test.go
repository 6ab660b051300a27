package platform

import (
	"errors"
	"testing"
)

func TestMatch(t *testing.T) {
	devices := []DeviceInfo{
		{Name: "Speakers (Realtek High Definition Audio)"},
		{Name: "Headphones (USB Audio)", Default: true},
		{Name: "Monitor Audio (HDMI)"},
	}

	tests := []struct {
		name         string
		selector     string
		wantDevice   string
		wantFellBack bool
	}{
		{"empty selector uses default", "", "Headphones (USB Audio)", false},
		{"substring match", "Realtek", "Speakers (Realtek High Definition Audio)", false},
		{"exact name match", "Monitor Audio (HDMI)", "Monitor Audio (HDMI)", false},
		{"case sensitive, no match falls back", "realtek", "Headphones (USB Audio)", true},
		{"nonexistent falls back to default", "nonexistent-substring", "Headphones (USB Audio)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, fellBack, err := Match(devices, tt.selector)
			if err != nil {
				t.Fatal(err)
			}
			if dev.Name != tt.wantDevice {
				t.Errorf("expected device %q, got %q", tt.wantDevice, dev.Name)
			}
			if fellBack != tt.wantFellBack {
				t.Errorf("expected fellBack=%v, got %v", tt.wantFellBack, fellBack)
			}
		})
	}
}

func TestMatchNoDefaultMarkedUsesFirst(t *testing.T) {
	devices := []DeviceInfo{
		{Name: "Device A"},
		{Name: "Device B"},
	}
	dev, _, err := Match(devices, "")
	if err != nil {
		t.Fatal(err)
	}
	if dev.Name != "Device A" {
		t.Errorf("expected first device as fallback default, got %q", dev.Name)
	}
}

func TestMatchEmptyListFails(t *testing.T) {
	if _, _, err := Match(nil, ""); !errors.Is(err, ErrNoDevices) {
		t.Fatalf("expected ErrNoDevices, got %v", err)
	}
}

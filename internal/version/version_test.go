package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestBanner(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	color.NoColor = true

	defer func() {
		Version = orig
		color.NoColor = origNoColor
	}()

	tests := []struct {
		version string
		want    string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"1.2.3-rc.1+build.123", "1.2.3-rc.1+build.123"},
		{"nightly", "nightly"},
		{"  ", "dev"},
	}

	for _, tt := range tests {
		Version = tt.version
		if got := Banner(); got != tt.want {
			t.Errorf("Banner() with %q = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestBanner_Coloured(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	color.NoColor = false

	defer func() {
		Version = orig
		color.NoColor = origNoColor
	}()

	Version = "1.2.3"

	if got := Banner(); got == "1.2.3" {
		t.Errorf("Banner() = %q, want coloured output", got)
	}
}

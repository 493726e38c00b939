package core

import "testing"

func TestRuntimeConfigWithDefaults(t *testing.T) {
	got := RuntimeConfig{}.WithDefaults()
	if got.ScreenW != 80 || got.ScreenH != 24 {
		t.Errorf("screen = %dx%d, want 80x24", got.ScreenW, got.ScreenH)
	}
	if got.TickRate != 30 {
		t.Errorf("TickRate = %d, want 30", got.TickRate)
	}
	if got.Seed == 0 {
		t.Error("Seed left at zero")
	}

	set := RuntimeConfig{ScreenW: 100, ScreenH: 40, TickRate: 60, Seed: 7}
	if got := set.WithDefaults(); got != set {
		t.Errorf("WithDefaults() changed explicit values: %+v", got)
	}
}

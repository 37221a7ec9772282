package main

import (
	"strings"
	"testing"
)

func TestParseFlagMode(t *testing.T) {
	cases := []struct {
		value string
		want  flagMode
	}{
		{"", modeAuto},
		{"auto", modeAuto},
		{"on", modeOn},
		{"off", modeOff},
		{" On ", modeOn},
		{"OFF", modeOff},
	}
	for _, tc := range cases {
		got, err := parseFlagMode("ui", tc.value)
		if err != nil {
			t.Fatalf("parseFlagMode(%q): %v", tc.value, err)
		}
		if got != tc.want {
			t.Fatalf("parseFlagMode(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestParseFlagModeNamesTheFlag(t *testing.T) {
	_, err := parseFlagMode("color", "maybe")
	if err == nil {
		t.Fatalf("invalid mode accepted")
	}
	msg := err.Error()
	if !strings.Contains(msg, "--color") || !strings.Contains(msg, `"maybe"`) {
		t.Fatalf("error does not name the flag and value: %v", err)
	}
}

func TestForcedModesIgnoreTerminal(t *testing.T) {
	if !modeOn.enabled() {
		t.Fatalf("modeOn resolved to disabled")
	}
	if modeOff.enabled() {
		t.Fatalf("modeOff resolved to enabled")
	}
}

package main

import (
	"fmt"
	"os"
	"strings"
)

// flagMode is the tri-state carried by --ui and --color: force a feature
// on, force it off, or let terminal detection decide.
type flagMode int

const (
	modeAuto flagMode = iota
	modeOn
	modeOff
)

// parseFlagMode reads one tri-state flag value. The flag name only feeds
// the error message.
func parseFlagMode(flag, value string) (flagMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on":
		return modeOn, nil
	case "off":
		return modeOff, nil
	}
	return modeAuto, fmt.Errorf("--%s must be auto, on or off, got %q", flag, value)
}

// enabled resolves the mode, falling back to whether stdout is a terminal.
func (m flagMode) enabled() bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	}
	return isTerminal(os.Stdout)
}

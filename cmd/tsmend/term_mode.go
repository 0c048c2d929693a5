package main

import (
	"fmt"
	"os"
	"strings"
)

// termMode is the tri-state behind --ui and --color: explicit on/off, auto
// решает по TTY целевого потока.
type termMode uint8

const (
	termModeAuto termMode = iota
	termModeOn
	termModeOff
)

func parseTermMode(flag, value string) (termMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return termModeAuto, nil
	case "on":
		return termModeOn, nil
	case "off":
		return termModeOff, nil
	default:
		return termModeAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

// enabled reports whether the capability should be active for output to f.
func (m termMode) enabled(f *os.File) bool {
	switch m {
	case termModeOn:
		return true
	case termModeOff:
		return false
	default:
		return isTerminal(f)
	}
}

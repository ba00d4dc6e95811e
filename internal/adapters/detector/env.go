// Package detector picks the log format from the environment.
package detector

import (
	"os"

	"golang.org/x/term"
)

// LogFormat is the rendering format of log records.
type LogFormat int

const (
	// FormatAuto defers to detection.
	FormatAuto LogFormat = iota
	// FormatPretty renders colored human-readable lines.
	FormatPretty
	// FormatJSON renders one JSON object per record.
	FormatJSON
)

// DetectFormat returns pretty output on an interactive terminal and JSON otherwise.
// CI=true or CI=1 always selects JSON.
func DetectFormat() LogFormat {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return FormatJSON
	}
	return FormatPretty
}

// ResolveFormat applies the --log-format flag on top of detection.
// userFlag is one of "auto", "pretty", "text", "json" or empty.
func ResolveFormat(detected LogFormat, userFlag string) LogFormat {
	switch userFlag {
	case "pretty", "text":
		return FormatPretty
	case "json":
		return FormatJSON
	default:
		return detected
	}
}

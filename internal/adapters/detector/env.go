// Package detector picks how job progress is shown for the current environment.
package detector

import (
	"os"

	"golang.org/x/term"
)

// ProgressMode selects how completed jobs are echoed while counting.
type ProgressMode int

const (
	// ProgressAuto detects the mode from the environment.
	ProgressAuto ProgressMode = iota
	// ProgressPlain prints one line per completed job.
	ProgressPlain
	// ProgressNone prints nothing until the report.
	ProgressNone
)

// String returns the flag value of the mode.
func (m ProgressMode) String() string {
	switch m {
	case ProgressPlain:
		return "plain"
	case ProgressNone:
		return "none"
	default:
		return "auto"
	}
}

// DetectEnvironment returns ProgressPlain when stderr is a terminal outside CI,
// and ProgressNone otherwise.
func DetectEnvironment() ProgressMode {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ProgressNone
	}
	return ProgressPlain
}

// ResolveMode applies the --progress flag to the detected mode.
// Unknown values fall back to the detected mode.
func ResolveMode(autoDetected ProgressMode, userFlag string) ProgressMode {
	switch userFlag {
	case "plain":
		return ProgressPlain
	case "none":
		return ProgressNone
	default:
		return autoDetected
	}
}

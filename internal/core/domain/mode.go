package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Mode is the revisit policy applied to small caves.
type Mode uint8

const (
	// ModeStrict allows every small cave to be visited at most once.
	ModeStrict Mode = iota
	// ModeRelaxed allows exactly one small cave to be visited twice, all others at most once.
	ModeRelaxed
)

// AllModes lists every mode in report order.
var AllModes = []Mode{ModeStrict, ModeRelaxed}

// ModeFor maps the "allow one small cave twice" flag onto a Mode.
func ModeFor(allowOneSmallCaveTwice bool) Mode {
	if allowOneSmallCaveTwice {
		return ModeRelaxed
	}
	return ModeStrict
}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return ModeStrict, nil
	case "relaxed":
		return ModeRelaxed, nil
	default:
		return 0, zerr.With(ErrUnknownMode, "mode", s)
	}
}

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeRelaxed {
		return "relaxed"
	}
	return "strict"
}

// MaxVisits returns the highest count a single small cave may reach under m.
func (m Mode) MaxVisits() int {
	if m == ModeRelaxed {
		return 2
	}
	return 1
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

package domain

import (
	"strings"
	"unicode"
	"unique"

	"go.trai.ch/zerr"
)

// CaveKind classifies a cave by its revisit rules.
type CaveKind uint8

const (
	// KindSmall marks a cave with a limited revisit budget (all-lowercase label).
	KindSmall CaveKind = iota
	// KindBig marks a cave that may be revisited any number of times (all-uppercase label).
	KindBig
	// KindStart marks the unique start sentinel.
	KindStart
	// KindEnd marks the unique end sentinel.
	KindEnd
)

// String returns the lowercase name of the kind.
func (k CaveKind) String() string {
	switch k {
	case KindBig:
		return "big"
	case KindStart:
		return "start"
	case KindEnd:
		return "end"
	default:
		return "small"
	}
}

const (
	startLabel = "start"
	endLabel   = "end"
)

var (
	// StartCave is the sentinel every path begins at.
	StartCave = Cave{h: unique.Make(startLabel), kind: KindStart}
	// EndCave is the sentinel every path finishes at.
	EndCave = Cave{h: unique.Make(endLabel), kind: KindEnd}
)

// Cave is a value object naming a node of the cave system.
// The label is interned with unique.Handle so that equality and hashing are cheap,
// and the kind is derived once from the label's casing.
type Cave struct {
	h    unique.Handle[string]
	kind CaveKind
}

// NewCave classifies label and returns the corresponding Cave.
// Labels must be non-empty, free of whitespace, and either entirely lowercase or
// entirely uppercase; anything else yields ErrInvalidCaveName.
func NewCave(label string) (Cave, error) {
	switch label {
	case startLabel:
		return StartCave, nil
	case endLabel:
		return EndCave, nil
	}

	kind, ok := classify(label)
	if !ok {
		return Cave{}, zerr.With(ErrInvalidCaveName, "cave", label)
	}
	return Cave{h: unique.Make(label), kind: kind}, nil
}

// MustCave is like NewCave but panics on an invalid label. Intended for tests and constants.
func MustCave(label string) Cave {
	c, err := NewCave(label)
	if err != nil {
		panic(err)
	}
	return c
}

func classify(label string) (CaveKind, bool) {
	if label == "" || strings.IndexFunc(label, unicode.IsSpace) >= 0 {
		return 0, false
	}

	var upper, lower bool
	for _, r := range label {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		}
	}

	switch {
	case lower && !upper:
		return KindSmall, true
	case upper && !lower:
		return KindBig, true
	default:
		return 0, false
	}
}

// String returns the cave label.
func (c Cave) String() string {
	var zero unique.Handle[string]
	if c.h == zero {
		return ""
	}
	return c.h.Value()
}

// Kind returns the classification of the cave.
func (c Cave) Kind() CaveKind {
	return c.kind
}

// IsBig reports whether the cave can be revisited without limit.
func (c Cave) IsBig() bool {
	return c.kind == KindBig
}

// IsSmall reports whether the cave consumes revisit budget.
func (c Cave) IsSmall() bool {
	return c.kind == KindSmall
}

// IsZero reports whether c is the zero Cave.
func (c Cave) IsZero() bool {
	var zero unique.Handle[string]
	return c.h == zero
}

// Compare orders caves lexicographically by label.
func (c Cave) Compare(other Cave) int {
	return strings.Compare(c.String(), other.String())
}

// MarshalText implements encoding.TextMarshaler.
func (c Cave) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// It reclassifies the label, so invalid labels are rejected.
func (c *Cave) UnmarshalText(text []byte) error {
	parsed, err := NewCave(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

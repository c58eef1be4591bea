package domain

import (
	"slices"
	"strconv"
	"strings"
)

// CaveVisit records how many times a small cave appears on a partial path.
type CaveVisit struct {
	Cave  Cave
	Count int
}

// StateKey is the comparable form of a VisitState, suitable as a map key.
// Two states that reach the same cave with the same small-cave counts under the
// same mode share a key, whatever order the caves were visited in.
type StateKey struct {
	last   Cave
	mode   Mode
	visits string
}

// VisitState is an immutable snapshot of a partial path: the cave currently
// occupied, the small caves visited so far (sorted by label), and the revisit mode.
// The start cave is never part of the visited set.
type VisitState struct {
	last   Cave
	mode   Mode
	visits []CaveVisit
	twice  bool
	key    StateKey
}

// InitialState returns the state every search begins from: positioned at the
// start cave with no small caves visited.
func InitialState(mode Mode) VisitState {
	return newVisitState(StartCave, mode, nil, false)
}

func newVisitState(last Cave, mode Mode, visits []CaveVisit, twice bool) VisitState {
	return VisitState{
		last:   last,
		mode:   mode,
		visits: visits,
		twice:  twice,
		key: StateKey{
			last:   last,
			mode:   mode,
			visits: encodeVisits(visits),
		},
	}
}

// encodeVisits serializes the sorted visit list. Labels are length-prefixed so
// that no label content can make two different lists encode alike.
func encodeVisits(visits []CaveVisit) string {
	if len(visits) == 0 {
		return ""
	}
	var b strings.Builder
	for _, v := range visits {
		label := v.Cave.String()
		b.WriteString(strconv.Itoa(len(label)))
		b.WriteByte(':')
		b.WriteString(label)
		b.WriteString(strconv.Itoa(v.Count))
		b.WriteByte(';')
	}
	return b.String()
}

// Append attempts to move from the current cave into c.
// It returns false when the move breaks the revisit policy:
//   - the start cave can never be re-entered, and the end cave is terminal and is
//     never appended;
//   - big caves are always accepted and leave the visited set untouched;
//   - a small cave may not exceed the mode's per-cave limit (1 strict, 2 relaxed),
//     and in relaxed mode only one small cave may reach a count of two.
func (s VisitState) Append(c Cave) (VisitState, bool) {
	switch c.Kind() {
	case KindStart, KindEnd:
		return VisitState{}, false
	case KindBig:
		return newVisitState(c, s.mode, s.visits, s.twice), true
	}

	idx, found := slices.BinarySearchFunc(s.visits, c, func(v CaveVisit, target Cave) int {
		return v.Cave.Compare(target)
	})

	count := 1
	if found {
		count = s.visits[idx].Count + 1
	}
	if count > s.mode.MaxVisits() {
		return VisitState{}, false
	}
	if count == 2 && s.twice {
		return VisitState{}, false
	}

	visits := make([]CaveVisit, len(s.visits), len(s.visits)+1)
	copy(visits, s.visits)
	if found {
		visits[idx].Count = count
	} else {
		visits = slices.Insert(visits, idx, CaveVisit{Cave: c, Count: 1})
	}

	return newVisitState(c, s.mode, visits, s.twice || count == 2), true
}

// Last returns the cave the path currently occupies.
func (s VisitState) Last() Cave {
	return s.last
}

// Mode returns the revisit policy of the state.
func (s VisitState) Mode() Mode {
	return s.mode
}

// Visits returns a copy of the visited small caves in label order.
func (s VisitState) Visits() []CaveVisit {
	return slices.Clone(s.visits)
}

// Count returns how many times c has been visited. Big caves and the sentinels always report zero.
func (s VisitState) Count(c Cave) int {
	idx, found := slices.BinarySearchFunc(s.visits, c, func(v CaveVisit, target Cave) int {
		return v.Cave.Compare(target)
	})
	if !found {
		return 0
	}
	return s.visits[idx].Count
}

// UsedTwice reports whether some small cave has already been visited twice.
func (s VisitState) UsedTwice() bool {
	return s.twice
}

// Depth returns the number of small-cave visits on the path.
func (s VisitState) Depth() int {
	n := 0
	for _, v := range s.visits {
		n += v.Count
	}
	return n
}

// Key returns the canonical, comparable identity of the state.
func (s VisitState) Key() StateKey {
	return s.key
}

// String renders the state for diagnostics, e.g. "b@strict{b:1 c:1}".
func (s VisitState) String() string {
	var b strings.Builder
	b.WriteString(s.last.String())
	b.WriteByte('@')
	b.WriteString(s.mode.String())
	b.WriteByte('{')
	for i, v := range s.visits {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v.Cave.String())
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(v.Count))
	}
	b.WriteByte('}')
	return b.String()
}

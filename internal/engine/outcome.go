package engine

import (
	"fmt"
)

// SpaceSize is the number of possible 5-digit outcomes
const SpaceSize = 100000

// Outcome is a single 5-digit draw result. Digits are ordered
// wan, qian, bai, shi, ge.
type Outcome struct {
	Digits [5]int
}

// OutcomeFromIndex maps an index in [0, SpaceSize) to its outcome
func OutcomeFromIndex(i int) Outcome {
	var o Outcome
	for pos := 4; pos >= 0; pos-- {
		o.Digits[pos] = i % 10
		i /= 10
	}
	return o
}

// Index returns the outcome's position in [0, SpaceSize)
func (o Outcome) Index() int {
	i := 0
	for _, d := range o.Digits {
		i = i*10 + d
	}
	return i
}

// String renders the outcome as a 5-character digit string
func (o Outcome) String() string {
	return fmt.Sprintf("%d%d%d%d%d", o.Digits[0], o.Digits[1], o.Digits[2], o.Digits[3], o.Digits[4])
}

// ParseOutcome parses a 5-character digit string
func ParseOutcome(s string) (Outcome, error) {
	var o Outcome
	if len(s) != 5 {
		return o, fmt.Errorf("invalid outcome %q: want exactly 5 digits", s)
	}
	for i := 0; i < 5; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return o, fmt.Errorf("invalid outcome %q: non-digit character at position %d", s, i)
		}
		o.Digits[i] = int(c - '0')
	}
	return o, nil
}

// Side is the dragon-vs-tiger comparison of wan against ge
type Side int

const (
	SideDragon Side = iota
	SideTiger
	SideTie
)

// String returns the ledger spelling of the side
func (s Side) String() string {
	switch s {
	case SideDragon:
		return "dragon"
	case SideTiger:
		return "tiger"
	default:
		return "tie"
	}
}

// ParseSide parses a ledger side string
func ParseSide(s string) (Side, bool) {
	switch s {
	case "dragon":
		return SideDragon, true
	case "tiger":
		return SideTiger, true
	case "tie":
		return SideTie, true
	}
	return 0, false
}

// Attrs carries one outcome together with every derived attribute the
// evaluator branches on. Attributes are computed exactly once per
// draw-analysis pass; the per-bet evaluation loop only reads them.
type Attrs struct {
	Outcome  Outcome
	Sum      int
	SumBig   bool // sum >= 23 on the 0..45 range
	SumOdd   bool
	Dragon   Side
	BullRank int // 0 no bull, 1..9, 10 bull-bull
	Poker    PokerHand
	Spans    [3]int // front3, mid3, back3
}

// ComputeAttrs derives all shared attributes for one outcome
func ComputeAttrs(o Outcome) Attrs {
	a := Attrs{Outcome: o}
	for _, d := range o.Digits {
		a.Sum += d
	}
	a.SumBig = a.Sum >= 23
	a.SumOdd = a.Sum%2 == 1
	switch {
	case o.Digits[0] > o.Digits[4]:
		a.Dragon = SideDragon
	case o.Digits[0] < o.Digits[4]:
		a.Dragon = SideTiger
	default:
		a.Dragon = SideTie
	}
	a.BullRank = bullRank(o.Digits)
	a.Poker = pokerHand(o.Digits)
	for t := 0; t < 3; t++ {
		lo, hi := o.Digits[t], o.Digits[t]
		for _, d := range o.Digits[t+1 : t+3] {
			if d < lo {
				lo = d
			}
			if d > hi {
				hi = d
			}
		}
		a.Spans[t] = hi - lo
	}
	return a
}

// Space is one enumerated, attribute-cached pass over the outcome
// space. The table is built once per draw analysis and shared by every
// bet evaluation; nothing in it is mutated afterwards.
type Space struct {
	attrs []Attrs
}

// Enumerate builds the outcome table. A limit in (0, SpaceSize) caps
// the pass to the first limit outcomes; any other value enumerates the
// full space.
func Enumerate(limit int) *Space {
	n := SpaceSize
	if limit > 0 && limit < SpaceSize {
		n = limit
	}
	attrs := make([]Attrs, n)
	for i := 0; i < n; i++ {
		attrs[i] = ComputeAttrs(OutcomeFromIndex(i))
	}
	return &Space{attrs: attrs}
}

// Len returns the number of outcomes in this pass
func (s *Space) Len() int { return len(s.attrs) }

// At returns the cached attributes of the i-th outcome
func (s *Space) At(i int) *Attrs { return &s.attrs[i] }

// WinCount returns how many outcomes in this pass win the given bet
func (s *Space) WinCount(b *ParsedBet) int {
	count := 0
	for i := range s.attrs {
		if Win(&s.attrs[i], b) {
			count++
		}
	}
	return count
}

package engine

import "sort"

// Bull-bull and poker classification of a 5-digit hand. The ranking is
// an explicit rule table: odds for every rank and hand category come
// from the odds configuration, never from code.

// BullNone and BullBull bound the bull rank range
const (
	BullNone = 0
	BullBull = 10
)

// bullRank returns 0 when no three digits sum to a multiple of 10,
// otherwise the best achievable rank: (sum of the remaining two
// digits) mod 10, with 0 promoted to BullBull.
func bullRank(d [5]int) int {
	total := d[0] + d[1] + d[2] + d[3] + d[4]
	best := BullNone
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 4; j++ {
			for k := j + 1; k < 5; k++ {
				if (d[i]+d[j]+d[k])%10 != 0 {
					continue
				}
				rank := (total - d[i] - d[j] - d[k]) % 10
				if rank == 0 {
					rank = BullBull
				}
				if rank > best {
					best = rank
				}
			}
		}
	}
	return best
}

// PokerHand is the poker-style category of a 5-digit hand
type PokerHand int

const (
	HandHighCard PokerHand = iota
	HandOnePair
	HandTwoPair
	HandThreeKind
	HandStraight
	HandFullHouse
	HandFourKind
	HandFiveKind
)

var pokerHandNames = map[PokerHand]string{
	HandHighCard:  "high_card",
	HandOnePair:   "one_pair",
	HandTwoPair:   "two_pair",
	HandThreeKind: "three_kind",
	HandStraight:  "straight",
	HandFullHouse: "full_house",
	HandFourKind:  "four_kind",
	HandFiveKind:  "five_kind",
}

// String returns the ledger spelling of the hand category
func (h PokerHand) String() string {
	if name, ok := pokerHandNames[h]; ok {
		return name
	}
	return "high_card"
}

// ParsePokerHand parses a ledger hand category string
func ParsePokerHand(s string) (PokerHand, bool) {
	for hand, name := range pokerHandNames {
		if name == s {
			return hand, true
		}
	}
	return 0, false
}

// pokerHand classifies the digit multiset. A straight is five strictly
// consecutive digit values in any order; sequences do not wrap past 9.
func pokerHand(d [5]int) PokerHand {
	var counts [10]int
	for _, v := range d {
		counts[v]++
	}
	pairs, threes := 0, 0
	for _, c := range counts {
		switch c {
		case 5:
			return HandFiveKind
		case 4:
			return HandFourKind
		case 3:
			threes++
		case 2:
			pairs++
		}
	}
	switch {
	case threes == 1 && pairs == 1:
		return HandFullHouse
	case threes == 1:
		return HandThreeKind
	case pairs == 2:
		return HandTwoPair
	case pairs == 1:
		return HandOnePair
	}
	sorted := d
	sort.Ints(sorted[:])
	straight := true
	for i := 1; i < 5; i++ {
		if sorted[i] != sorted[i-1]+1 {
			straight = false
			break
		}
	}
	if straight {
		return HandStraight
	}
	return HandHighCard
}

package engine

// Digit face membership tables. Room convention: 1 counts as prime,
// 0 as composite.
var primeDigit = [10]bool{1: true, 2: true, 3: true, 5: true, 7: true}

// sumPrime marks the prime sums on the 0..45 range
var sumPrime = [46]bool{
	2: true, 3: true, 5: true, 7: true, 11: true, 13: true, 17: true,
	19: true, 23: true, 29: true, 31: true, 37: true, 41: true, 43: true,
}

// digitFace reports whether digit d shows the given face
func digitFace(d int, f Face) bool {
	switch f {
	case FaceBig:
		return d >= 5
	case FaceSmall:
		return d <= 4
	case FaceOdd:
		return d%2 == 1
	case FaceEven:
		return d%2 == 0
	case FacePrime:
		return primeDigit[d]
	default:
		return !primeDigit[d]
	}
}

// Win reports whether the bet wins under the cached outcome
// attributes. Pure and allocation-free: it is invoked up to 100,000
// times per active bet during a draw analysis.
func Win(a *Attrs, b *ParsedBet) bool {
	switch b.Kind {
	case KindDigit:
		return a.Outcome.Digits[b.Position] == b.Value
	case KindDoubleFace:
		return digitFace(a.Outcome.Digits[b.Position], b.Face)
	case KindSumFace:
		switch b.Face {
		case FaceBig:
			return a.SumBig
		case FaceSmall:
			return !a.SumBig
		case FaceOdd:
			return a.SumOdd
		case FaceEven:
			return !a.SumOdd
		case FacePrime:
			return sumPrime[a.Sum]
		default:
			return !sumPrime[a.Sum]
		}
	case KindSumBigSmall:
		return a.SumBig == (b.Face == FaceBig)
	case KindSumOddEven:
		return a.SumOdd == (b.Face == FaceOdd)
	case KindTwoDigit, KindThreeDigit:
		for i := 0; i < b.NDigits; i++ {
			if a.Outcome.Digits[b.StartPos+i] != b.Digits[i] {
				return false
			}
		}
		return true
	case KindSpan:
		return a.Spans[b.StartPos] == b.Value
	case KindDragonTiger:
		return a.Dragon == b.Side
	case KindBull:
		return a.BullRank == b.Rank
	case KindPoker:
		return a.Poker == b.Hand
	case KindBullFace:
		if a.BullRank == BullNone {
			return false
		}
		switch b.Face {
		case FaceBig:
			return a.BullRank >= 6
		case FaceSmall:
			return a.BullRank <= 5
		case FaceOdd:
			return a.BullRank%2 == 1
		default:
			return a.BullRank%2 == 0
		}
	}
	return false
}

// Payout returns the member payout of the bet under the outcome:
// amount times resolved odds on a win, zero otherwise.
func Payout(a *Attrs, b *ParsedBet) float64 {
	if !Win(a, b) {
		return 0
	}
	return b.Amount * b.Odds
}

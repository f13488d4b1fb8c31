package engine

import (
	"fmt"
	"strconv"

	"github.com/lucky5/draw-engine/internal/models"
)

// Kind is the precomputed bet-type tag the evaluator branches on
type Kind int

const (
	KindDigit Kind = iota
	KindDoubleFace
	KindSumFace
	KindSumBigSmall
	KindSumOddEven
	KindTwoDigit
	KindThreeDigit
	KindSpan
	KindDragonTiger
	KindBull
	KindPoker
	KindBullFace
)

// Face is a double-face selection on a digit, the sum, or the bull rank
type Face int

const (
	FaceBig Face = iota
	FaceSmall
	FaceOdd
	FaceEven
	FacePrime
	FaceComposite
)

// String returns the ledger spelling of the face
func (f Face) String() string {
	switch f {
	case FaceBig:
		return "big"
	case FaceSmall:
		return "small"
	case FaceOdd:
		return "odd"
	case FaceEven:
		return "even"
	case FacePrime:
		return "prime"
	default:
		return "composite"
	}
}

// ParseFace parses a ledger face string
func ParseFace(s string) (Face, bool) {
	switch s {
	case "big":
		return FaceBig, true
	case "small":
		return FaceSmall, true
	case "odd":
		return FaceOdd, true
	case "even":
		return FaceEven, true
	case "prime":
		return FacePrime, true
	case "composite":
		return FaceComposite, true
	}
	return 0, false
}

// ParsedBet is the validated, odds-resolved form of a ledger bet. It
// is built once at ingestion so the 100k-outcome evaluation loop works
// on plain tagged fields with no runtime type inspection.
type ParsedBet struct {
	Kind     Kind
	Position int    // digit position for KindDigit/KindDoubleFace
	Value    int    // digit value or span value
	StartPos int    // first position for multi-digit straights; triplet index for spans
	Digits   [3]int // straight positioning digits
	NDigits  int    // 2 or 3 for positioning bets
	Face     Face
	Side     Side
	Hand     PokerHand
	Rank     int // bull rank for KindBull
	Amount   float64
	Odds     float64
}

// bullRankSelection maps a bull rank to its odds-table selection key
func bullRankSelection(rank int) string {
	switch rank {
	case BullNone:
		return "none"
	case BullBull:
		return "bullbull"
	default:
		return strconv.Itoa(rank)
	}
}

// ParseBet validates a ledger bet against its game-type schema and
// resolves the odds it pays at. A bet-level odds capture takes
// precedence over the odds table. Schema violations and missing odds
// rows are configuration errors; the caller excludes such bets from
// aggregation without aborting the draw.
func ParseBet(bet *models.Bet, odds models.OddsTable) (*ParsedBet, error) {
	if bet.Amount <= 0 {
		return nil, &models.ConfigurationError{Field: "amount", Reason: "must be positive"}
	}
	p := &ParsedBet{Amount: bet.Amount}
	content := betContent(bet.BetContent)
	selection := ""

	switch bet.GameType {
	case models.GameDigit:
		pos, ok := content.intField("position")
		if !ok || pos < 0 || pos > 4 {
			return nil, &models.ConfigurationError{Field: "position", Reason: "want 0..4"}
		}
		val, ok := content.intField("value")
		if !ok || val < 0 || val > 9 {
			return nil, &models.ConfigurationError{Field: "value", Reason: "want 0..9"}
		}
		p.Kind, p.Position, p.Value = KindDigit, pos, val
		selection = "straight"

	case models.GameDoubleFace:
		face, ok := parseFaceField(content, "face")
		if !ok {
			return nil, &models.ConfigurationError{Field: "face", Reason: "unknown face"}
		}
		// "position": "sum" targets the digit sum instead of one digit
		if raw, isStr := content.stringField("position"); isStr && raw == "sum" {
			p.Kind, p.Face = KindSumFace, face
			selection = "sum_" + face.String()
			break
		}
		pos, ok := content.intField("position")
		if !ok || pos < 0 || pos > 4 {
			return nil, &models.ConfigurationError{Field: "position", Reason: "want 0..4 or sum"}
		}
		p.Kind, p.Position, p.Face = KindDoubleFace, pos, face
		selection = face.String()

	case models.GameSumBigSmall:
		face, ok := parseFaceField(content, "face")
		if !ok || (face != FaceBig && face != FaceSmall) {
			return nil, &models.ConfigurationError{Field: "face", Reason: "want big or small"}
		}
		p.Kind, p.Face = KindSumBigSmall, face
		selection = face.String()

	case models.GameSumOddEven:
		face, ok := parseFaceField(content, "face")
		if !ok || (face != FaceOdd && face != FaceEven) {
			return nil, &models.ConfigurationError{Field: "face", Reason: "want odd or even"}
		}
		p.Kind, p.Face = KindSumOddEven, face
		selection = face.String()

	case models.GameTwoDigit:
		start, ok := straightStart(content, 2)
		if !ok {
			return nil, &models.ConfigurationError{Field: "positions", Reason: "want front2 or back2"}
		}
		if !content.digitsField("digits", p.Digits[:2]) {
			return nil, &models.ConfigurationError{Field: "digits", Reason: "want 2 digits 0..9"}
		}
		p.Kind, p.StartPos, p.NDigits = KindTwoDigit, start, 2
		selection = "straight"

	case models.GameThreeDigit:
		start, ok := straightStart(content, 3)
		if !ok {
			return nil, &models.ConfigurationError{Field: "positions", Reason: "want front3, mid3 or back3"}
		}
		if !content.digitsField("digits", p.Digits[:3]) {
			return nil, &models.ConfigurationError{Field: "digits", Reason: "want 3 digits 0..9"}
		}
		p.Kind, p.StartPos, p.NDigits = KindThreeDigit, start, 3
		selection = "straight"

	case models.GameSpan:
		triplet, ok := tripletIndex(content)
		if !ok {
			return nil, &models.ConfigurationError{Field: "triplet", Reason: "want front3, mid3 or back3"}
		}
		val, ok := content.intField("value")
		if !ok || val < 0 || val > 9 {
			return nil, &models.ConfigurationError{Field: "value", Reason: "want 0..9"}
		}
		p.Kind, p.StartPos, p.Value = KindSpan, triplet, val
		selection = strconv.Itoa(val)

	case models.GameDragonTiger:
		raw, ok := content.stringField("side")
		if !ok {
			return nil, &models.ConfigurationError{Field: "side", Reason: "missing"}
		}
		side, ok := ParseSide(raw)
		if !ok {
			return nil, &models.ConfigurationError{Field: "side", Reason: "want dragon, tiger or tie"}
		}
		p.Kind, p.Side = KindDragonTiger, side
		selection = side.String()

	case models.GameBull:
		rank, ok := content.intField("rank")
		if !ok || rank < BullNone || rank > BullBull {
			return nil, &models.ConfigurationError{Field: "rank", Reason: "want 0..10"}
		}
		p.Kind, p.Rank = KindBull, rank
		selection = bullRankSelection(rank)

	case models.GamePoker:
		raw, ok := content.stringField("hand")
		if !ok {
			return nil, &models.ConfigurationError{Field: "hand", Reason: "missing"}
		}
		hand, ok := ParsePokerHand(raw)
		if !ok {
			return nil, &models.ConfigurationError{Field: "hand", Reason: "unknown hand category"}
		}
		p.Kind, p.Hand = KindPoker, hand
		selection = hand.String()

	case models.GameBullFace:
		face, ok := parseFaceField(content, "face")
		if !ok || face == FacePrime || face == FaceComposite {
			return nil, &models.ConfigurationError{Field: "face", Reason: "want big, small, odd or even"}
		}
		p.Kind, p.Face = KindBullFace, face
		selection = face.String()

	default:
		return nil, &models.ConfigurationError{Field: "gameType", Reason: fmt.Sprintf("unknown game type %q", bet.GameType)}
	}

	if bet.Odds > 0 {
		p.Odds = bet.Odds
		return p, nil
	}
	tableOdds, ok := odds.Lookup(bet.GameType, selection)
	if !ok {
		return nil, &models.ConfigurationError{
			Field:  "odds",
			Reason: fmt.Sprintf("no odds row for %s/%s", bet.GameType, selection),
		}
	}
	p.Odds = tableOdds
	return p, nil
}

// betContent wraps the raw tagged-variant map with typed accessors.
// Numeric fields may arrive as int32/int64/float64 depending on the
// ledger writer, so each accessor normalizes.
type betContent map[string]interface{}

func (c betContent) intField(key string) (int, bool) {
	switch v := c[key].(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}

func (c betContent) stringField(key string) (string, bool) {
	v, ok := c[key].(string)
	return v, ok
}

// digitsField decodes an array field of digit values into dst
func (c betContent) digitsField(key string, dst []int) bool {
	raw, ok := c[key].([]interface{})
	if !ok || len(raw) != len(dst) {
		return false
	}
	for i, item := range raw {
		var d int
		switch v := item.(type) {
		case int:
			d = v
		case int32:
			d = int(v)
		case int64:
			d = int(v)
		case float64:
			d = int(v)
		default:
			return false
		}
		if d < 0 || d > 9 {
			return false
		}
		dst[i] = d
	}
	return true
}

func parseFaceField(c betContent, key string) (Face, bool) {
	raw, ok := c.stringField(key)
	if !ok {
		return 0, false
	}
	return ParseFace(raw)
}

// straightStart resolves the positioning window of a 2- or 3-digit
// straight bet to its first digit position.
func straightStart(c betContent, n int) (int, bool) {
	raw, ok := c.stringField("positions")
	if !ok {
		return 0, false
	}
	if n == 2 {
		switch raw {
		case "front2":
			return 0, true
		case "back2":
			return 3, true
		}
		return 0, false
	}
	switch raw {
	case "front3":
		return 0, true
	case "mid3":
		return 1, true
	case "back3":
		return 2, true
	}
	return 0, false
}

// tripletIndex resolves a span bet's triplet name to its index
func tripletIndex(c betContent) (int, bool) {
	raw, ok := c.stringField("triplet")
	if !ok {
		return 0, false
	}
	switch raw {
	case "front3":
		return 0, true
	case "mid3":
		return 1, true
	case "back3":
		return 2, true
	}
	return 0, false
}

package hands

import (
	"sort"

	"github.com/lazharichir/holdem/cards"
)

// HandRank represents the strength category of a poker hand
type HandRank int

const (
	HighCard HandRank = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (r HandRank) String() string {
	switch r {
	case HighCard:
		return "High Card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// categorize names the rank of a 5-card hand
func categorize(hand cards.Stack) HandRank {
	counts := make(map[cards.Rank]int)
	for _, c := range hand {
		counts[c.Rank]++
	}

	flush := isFlush(hand)
	straight, high := isStraight(hand)

	switch {
	case flush && straight && high == cards.Ace:
		return RoyalFlush
	case flush && straight:
		return StraightFlush
	case hasCount(counts, 4):
		return FourOfAKind
	case hasCount(counts, 3) && hasCount(counts, 2):
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case hasCount(counts, 3):
		return ThreeOfAKind
	case countPairs(counts) == 2:
		return TwoPair
	case countPairs(counts) == 1:
		return OnePair
	default:
		return HighCard
	}
}

func hasCount(counts map[cards.Rank]int, n int) bool {
	for _, c := range counts {
		if c == n {
			return true
		}
	}
	return false
}

func countPairs(counts map[cards.Rank]int) int {
	pairs := 0
	for _, c := range counts {
		if c == 2 {
			pairs++
		}
	}
	return pairs
}

func isFlush(hand cards.Stack) bool {
	if len(hand) == 0 {
		return false
	}
	suit := hand[0].Suit
	for _, c := range hand[1:] {
		if c.Suit != suit {
			return false
		}
	}
	return true
}

// isStraight reports whether the 5 cards are consecutive and the high rank
// of the straight. The wheel (A-5-4-3-2) counts with Five as its high card.
func isStraight(hand cards.Stack) (bool, cards.Rank) {
	ranks := make([]int, len(hand))
	for i, c := range hand {
		ranks[i] = int(c.Rank)
	}
	sort.Ints(ranks)

	consecutive := true
	for i := 1; i < len(ranks); i++ {
		if ranks[i] != ranks[i-1]+1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return true, cards.Rank(ranks[len(ranks)-1])
	}

	// Wheel: 2 3 4 5 A
	if len(ranks) == 5 &&
		ranks[0] == int(cards.Two) && ranks[1] == int(cards.Three) &&
		ranks[2] == int(cards.Four) && ranks[3] == int(cards.Five) &&
		ranks[4] == int(cards.Ace) {
		return true, cards.Five
	}

	return false, 0
}

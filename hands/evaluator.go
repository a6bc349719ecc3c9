package hands

import (
	"errors"
	"fmt"

	poker "github.com/paulhankin/poker"

	"github.com/lazharichir/holdem/cards"
)

// PlayerHand is the evaluation outcome for a single player, indexed
// relative to the list of hands passed to Evaluate.
type PlayerHand struct {
	Index       int
	RankName    string
	RankValue   int
	Description string
}

// Result holds the winner set (more than one on a tie) and the per-player
// evaluations.
type Result struct {
	WinnerIndices []int
	PerPlayer     []PlayerHand
}

// Evaluator ranks each player's hole cards combined with the shared board
// and picks the winning subset.
type Evaluator interface {
	Evaluate(holes []cards.Stack, board cards.Stack) (Result, error)
}

var ErrNoHands = errors.New("no hands to evaluate")

// FullEvaluator delegates to the paulhankin/poker 7-card evaluator. It
// needs at least 5 cards per player (hole plus board); with fewer it
// returns an error so callers can degrade to a fallback.
type FullEvaluator struct{}

func (FullEvaluator) Evaluate(holes []cards.Stack, board cards.Stack) (Result, error) {
	if len(holes) == 0 {
		return Result{}, ErrNoHands
	}

	perPlayer := make([]PlayerHand, len(holes))
	scores := make([]int16, len(holes))

	for i, hole := range holes {
		available := append(hole.Clone(), board...)
		if len(available) < 5 {
			return Result{}, fmt.Errorf("player %d has only %d cards available", i, len(available))
		}

		score, best, err := bestFive(available)
		if err != nil {
			return Result{}, err
		}

		description := best.String()
		if libCards, convErr := toLibCards(available); convErr == nil {
			if d, descErr := poker.Describe(libCards); descErr == nil {
				description = d
			}
		}

		rank := categorize(best)
		scores[i] = score
		perPlayer[i] = PlayerHand{
			Index:       i,
			RankName:    rank.String(),
			RankValue:   int(rank),
			Description: description,
		}
	}

	// Higher library score wins; ties are joint winners
	bestScore := scores[0]
	for _, s := range scores[1:] {
		if s > bestScore {
			bestScore = s
		}
	}

	var winners []int
	for i, s := range scores {
		if s == bestScore {
			winners = append(winners, i)
		}
	}

	return Result{WinnerIndices: winners, PerPlayer: perPlayer}, nil
}

// bestFive finds the strongest 5-card subset of the available cards and
// returns its library score alongside the cards themselves.
func bestFive(available cards.Stack) (int16, cards.Stack, error) {
	libCards, err := toLibCards(available)
	if err != nil {
		return 0, nil, err
	}

	first := true
	var bestScore int16
	var bestHand cards.Stack

	var five [5]poker.Card
	idx := [5]int{}
	n := len(available)

	var walk func(start, k int)
	walk = func(start, k int) {
		if k == 5 {
			for i := 0; i < 5; i++ {
				five[i] = libCards[idx[i]]
			}
			score := poker.Eval5(&five)
			if first || score > bestScore {
				first = false
				bestScore = score
				hand := make(cards.Stack, 5)
				for i := 0; i < 5; i++ {
					hand[i] = available[idx[i]]
				}
				bestHand = hand
			}
			return
		}
		for i := start; i <= n-(5-k); i++ {
			idx[k] = i
			walk(i+1, k+1)
		}
	}
	walk(0, 0)

	return bestScore, bestHand, nil
}

// toLibCards converts cards to the library representation. The library
// numbers ranks 1..13 with Ace as 1.
func toLibCards(stack cards.Stack) ([]poker.Card, error) {
	out := make([]poker.Card, len(stack))
	for i, c := range stack {
		var s poker.Suit
		switch c.Suit {
		case cards.Clubs:
			s = poker.Club
		case cards.Diamonds:
			s = poker.Diamond
		case cards.Hearts:
			s = poker.Heart
		case cards.Spades:
			s = poker.Spade
		default:
			return nil, fmt.Errorf("invalid suit: %q", c.Suit)
		}

		r := poker.Rank(c.Rank)
		if c.Rank == cards.Ace {
			r = poker.Rank(1)
		}

		card, err := poker.MakeCard(s, r)
		if err != nil {
			return nil, fmt.Errorf("invalid card %s: %w", c, err)
		}
		out[i] = card
	}
	return out, nil
}

// FallbackEvaluator compares hole-card ranks only, sorted descending,
// lexicographically. It ignores the board entirely and exists to keep the
// game running when the full evaluator is unavailable, not to produce
// correct poker results.
type FallbackEvaluator struct{}

func (FallbackEvaluator) Evaluate(holes []cards.Stack, board cards.Stack) (Result, error) {
	if len(holes) == 0 {
		return Result{}, ErrNoHands
	}

	keys := make([][]int, len(holes))
	perPlayer := make([]PlayerHand, len(holes))
	for i, hole := range holes {
		key := make([]int, len(hole))
		for j, c := range hole {
			key[j] = int(c.Rank)
		}
		// sort descending
		for a := 0; a < len(key); a++ {
			for b := a + 1; b < len(key); b++ {
				if key[b] > key[a] {
					key[a], key[b] = key[b], key[a]
				}
			}
		}
		keys[i] = key

		label := "no cards"
		if len(key) > 0 {
			label = fmt.Sprintf("%s high (hole cards only)", rankWord(cards.Rank(key[0])))
		}
		perPlayer[i] = PlayerHand{
			Index:       i,
			RankName:    HighCard.String(),
			RankValue:   int(HighCard),
			Description: label,
		}
	}

	best := 0
	for i := 1; i < len(keys); i++ {
		if compareKeys(keys[i], keys[best]) > 0 {
			best = i
		}
	}

	var winners []int
	for i := range keys {
		if compareKeys(keys[i], keys[best]) == 0 {
			winners = append(winners, i)
		}
	}

	return Result{WinnerIndices: winners, PerPlayer: perPlayer}, nil
}

func compareKeys(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	return len(a) - len(b)
}

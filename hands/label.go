package hands

import "github.com/lazharichir/holdem/cards"

var rankWords = map[cards.Rank]string{
	cards.Two:   "Two",
	cards.Three: "Three",
	cards.Four:  "Four",
	cards.Five:  "Five",
	cards.Six:   "Six",
	cards.Seven: "Seven",
	cards.Eight: "Eight",
	cards.Nine:  "Nine",
	cards.Ten:   "Ten",
	cards.Jack:  "Jack",
	cards.Queen: "Queen",
	cards.King:  "King",
	cards.Ace:   "Ace",
}

var rankPlurals = map[cards.Rank]string{
	cards.Two:   "Twos",
	cards.Three: "Threes",
	cards.Four:  "Fours",
	cards.Five:  "Fives",
	cards.Six:   "Sixes",
	cards.Seven: "Sevens",
	cards.Eight: "Eights",
	cards.Nine:  "Nines",
	cards.Ten:   "Tens",
	cards.Jack:  "Jacks",
	cards.Queen: "Queens",
	cards.King:  "Kings",
	cards.Ace:   "Aces",
}

func rankWord(r cards.Rank) string {
	if w, ok := rankWords[r]; ok {
		return w
	}
	return "Unknown"
}

// PreflopLabel describes two hole cards before any board is dealt using a
// simple pair / high-card heuristic.
func PreflopLabel(hole cards.Stack) string {
	if len(hole) != 2 {
		return ""
	}

	if hole[0].Rank == hole[1].Rank {
		return "Pair of " + rankPlurals[hole[0].Rank]
	}

	high := hole[0].Rank
	if hole[1].Rank > high {
		high = hole[1].Rank
	}
	return rankWord(high) + " high"
}

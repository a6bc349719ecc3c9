package cards

import "fmt"

// Suit represents a card suit as its lowercase letter
type Suit string

const (
	Spades   Suit = "s"
	Hearts   Suit = "h"
	Diamonds Suit = "d"
	Clubs    Suit = "c"
)

// Rank represents a card rank from Two (2) up to Ace (14)
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankLetters = map[Rank]string{
	Two:   "2",
	Three: "3",
	Four:  "4",
	Five:  "5",
	Six:   "6",
	Seven: "7",
	Eight: "8",
	Nine:  "9",
	Ten:   "T",
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Ace:   "A",
}

// Card represents a playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// Code returns the two-character code of the card, e.g. "As" or "Td"
func (c Card) Code() string {
	return rankLetters[c.Rank] + string(c.Suit)
}

// String returns the string representation of a card
func (c Card) String() string {
	return c.Code()
}

// Equals checks if two cards are equal
func (c Card) Equals(other Card) bool {
	return c.Suit == other.Suit && c.Rank == other.Rank
}

// CardFromString creates a card from its two-character code
// e.g., "As" or "AS" or "aS" -> Card{Rank: Ace, Suit: Spades}
func CardFromString(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card code: %q", s)
	}

	var rank Rank
	switch s[0] {
	case 'A', 'a':
		rank = Ace
	case 'K', 'k':
		rank = King
	case 'Q', 'q':
		rank = Queen
	case 'J', 'j':
		rank = Jack
	case 'T', 't':
		rank = Ten
	case '9':
		rank = Nine
	case '8':
		rank = Eight
	case '7':
		rank = Seven
	case '6':
		rank = Six
	case '5':
		rank = Five
	case '4':
		rank = Four
	case '3':
		rank = Three
	case '2':
		rank = Two
	default:
		return Card{}, fmt.Errorf("invalid card rank: %q", s[:1])
	}

	var suit Suit
	switch s[1] {
	case 's', 'S':
		suit = Spades
	case 'h', 'H':
		suit = Hearts
	case 'd', 'D':
		suit = Diamonds
	case 'c', 'C':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid card suit: %q", s[1:])
	}

	return Card{Rank: rank, Suit: suit}, nil
}

package cards

import "math/rand"

// NewDeck52 creates the 52 canonical cards in deterministic order,
// rank-major then suit
func NewDeck52() Deck {
	var deck Deck
	suits := []Suit{Spades, Hearts, Diamonds, Clubs}

	for rank := Two; rank <= Ace; rank++ {
		for _, suit := range suits {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}

	return deck
}

// Deck is an ordered sequence of cards dealt from the tail
type Deck []Card

// Shuffle shuffles the deck in place using the process-wide random source
func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// DealCard removes and returns the card at the tail of the deck.
// Running out of cards cannot happen in a well-formed single-table hand,
// so an empty deck is an internal invariant violation.
func (d *Deck) DealCard() Card {
	if d.IsEmpty() {
		panic("cards: deal from empty deck")
	}

	card := (*d)[len(*d)-1]
	*d = (*d)[:len(*d)-1]
	return card
}

// DealCards removes and returns count cards from the tail of the deck
func (d *Deck) DealCards(count int) Stack {
	dealt := make(Stack, 0, count)
	for i := 0; i < count; i++ {
		dealt = append(dealt, d.DealCard())
	}
	return dealt
}

// IsEmpty checks if the deck has no cards left
func (d Deck) IsEmpty() bool {
	return len(d) == 0
}

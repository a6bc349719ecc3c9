package cards

import "strings"

// Stack represents multiple cards
type Stack []Card

// NewStack creates a new stack from the given cards
func NewStack(cards ...Card) Stack {
	return cards
}

func (s Stack) String() string {
	codes := make([]string, len(s))
	for i, c := range s {
		codes[i] = c.Code()
	}
	return strings.Join(codes, " ")
}

// Contains checks whether a card is part of the stack
func (s Stack) Contains(card Card) bool {
	for _, c := range s {
		if c.Equals(card) {
			return true
		}
	}
	return false
}

// Clone returns a copy of the stack
func (s Stack) Clone() Stack {
	out := make(Stack, len(s))
	copy(out, s)
	return out
}

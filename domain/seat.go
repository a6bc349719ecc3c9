package domain

import "github.com/lazharichir/holdem/cards"

// Seat represents one table position. A seat persists across hands
// (occupancy, identity, chip stack); the hand-scoped fields are reset by
// StartHand and cleared again once the hand is resolved.
type Seat struct {
	PlayerID  string // empty means unoccupied
	Name      string
	Chips     int
	Bet       int // chips committed in the current betting round only
	Committed int // cumulative chips put into the pot across the whole hand
	HoleCards cards.Stack
	Folded    bool
	AllIn     bool
	IsDealer  bool
	Acted     bool
}

// Occupied checks if a player holds the seat
func (s *Seat) Occupied() bool {
	return s.PlayerID != ""
}

// CanAct checks if the seat is an eligible actor in a betting round
func (s *Seat) CanAct() bool {
	return s.Occupied() && !s.Folded && !s.AllIn
}

// InHand checks if the seat is still contending for the pot
func (s *Seat) InHand() bool {
	return s.Occupied() && !s.Folded
}

func (s *Seat) resetForHand() {
	s.Bet = 0
	s.Committed = 0
	s.HoleCards = nil
	s.Folded = false
	s.AllIn = false
	s.IsDealer = false
	s.Acted = false
}

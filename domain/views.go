package domain

import (
	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/hands"
)

// SeatView is the per-seat slice of a table snapshot. HoleCards is empty
// unless the viewer is entitled to see them.
type SeatView struct {
	SeatIndex int         `json:"seat_index"`
	PlayerID  string      `json:"player_id"`
	Name      string      `json:"name"`
	Chips     int         `json:"chips"`
	Bet       int         `json:"bet"`
	Folded    bool        `json:"folded"`
	AllIn     bool        `json:"all_in"`
	IsDealer  bool        `json:"is_dealer"`
	HoleCards cards.Stack `json:"hole_cards,omitempty"`
}

// TableView is a spectator-safe snapshot of the table
type TableView struct {
	TableID      string      `json:"table_id"`
	HandID       string      `json:"hand_id"`
	Stage        string      `json:"stage"`
	Pot          int         `json:"pot"`
	MinRaise     int         `json:"min_raise"`
	SmallBlind   int         `json:"small_blind"`
	BigBlind     int         `json:"big_blind"`
	ButtonIndex  int         `json:"button_index"`
	CurrentToAct int         `json:"current_to_act"`
	Board        cards.Stack `json:"board"`
	Seats        []SeatView  `json:"seats"`
}

// PlayerView is what one seated player sees: the public snapshot plus their
// own hole cards and a plain-language description of their current hand
type PlayerView struct {
	TableView
	SeatIndex int         `json:"seat_index"`
	HoleCards cards.Stack `json:"hole_cards"`
	HandLabel string      `json:"hand_label"`
}

// PublicView builds the snapshot a spectator may see. Hole cards only
// appear once the hand reached showdown, and only for seats still in it.
func (e *Engine) PublicView() TableView {
	view := TableView{
		TableID:      e.TableID,
		HandID:       e.HandID,
		Stage:        string(e.stage),
		Pot:          e.pot,
		MinRaise:     e.minRaise,
		SmallBlind:   e.smallBlind,
		BigBlind:     e.bigBlind,
		ButtonIndex:  e.buttonIndex,
		CurrentToAct: e.current,
		Board:        e.board.Clone(),
	}

	revealed := e.stage == StageShowdown || e.stage == StageResults

	for i := range e.seats {
		s := &e.seats[i]
		sv := SeatView{
			SeatIndex: i,
			PlayerID:  s.PlayerID,
			Name:      s.Name,
			Chips:     s.Chips,
			Bet:       s.Bet,
			Folded:    s.Folded,
			AllIn:     s.AllIn,
			IsDealer:  s.IsDealer,
		}
		if revealed && s.InHand() {
			sv.HoleCards = s.HoleCards.Clone()
		}
		view.Seats = append(view.Seats, sv)
	}

	return view
}

// PrivateView builds the snapshot for the player on the given seat
func (e *Engine) PrivateView(seatIndex int) (PlayerView, error) {
	if seatIndex < 0 || seatIndex >= len(e.seats) || !e.seats[seatIndex].Occupied() {
		return PlayerView{}, ErrInvalidSeat
	}

	seat := &e.seats[seatIndex]

	view := PlayerView{
		TableView: e.PublicView(),
		SeatIndex: seatIndex,
		HoleCards: seat.HoleCards.Clone(),
		HandLabel: e.handLabel(seatIndex),
	}

	return view, nil
}

// handLabel describes the seat's current best combination: a pair / high
// card heuristic preflop, the evaluator's wording once a board exists
func (e *Engine) handLabel(seatIndex int) string {
	seat := &e.seats[seatIndex]
	if len(seat.HoleCards) != 2 || seat.Folded {
		return ""
	}

	if len(e.board) == 0 {
		return hands.PreflopLabel(seat.HoleCards)
	}

	result, err := e.evaluator.Evaluate([]cards.Stack{seat.HoleCards.Clone()}, e.board.Clone())
	if err != nil || len(result.PerPlayer) == 0 {
		return hands.PreflopLabel(seat.HoleCards)
	}
	return result.PerPlayer[0].Description
}

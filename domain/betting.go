package domain

import (
	"time"

	"github.com/lazharichir/holdem/domain/events"
)

// ActionType represents a kind of betting action
type ActionType string

const (
	ActionFold  ActionType = "fold"
	ActionCheck ActionType = "check"
	ActionCall  ActionType = "call"
	ActionRaise ActionType = "raise"
	ActionAllIn ActionType = "allin"
)

// Action is a single player decision. Amount is the raise increment on top
// of the current maximum bet and is ignored for every other action type.
type Action struct {
	Type   ActionType
	Amount int
}

// ActionResult reports the outcome the transport layer needs to react to
type ActionResult struct {
	StageChangedToShowdown bool
}

// ApplyAction validates and applies one action for the given seat. A
// returned error means nothing was mutated; the hand continues normally.
func (e *Engine) ApplyAction(seatIndex int, action Action) (ActionResult, error) {
	if seatIndex < 0 || seatIndex >= len(e.seats) || !e.seats[seatIndex].Occupied() {
		return ActionResult{}, ErrInvalidSeat
	}
	if !e.stage.IsBetting() {
		return ActionResult{}, ErrHandNotActive
	}
	if e.current == NoActor {
		return ActionResult{}, ErrNoActiveActor
	}
	if seatIndex != e.current {
		return ActionResult{}, ErrNotYourTurn
	}

	seat := &e.seats[seatIndex]
	if seat.Folded {
		return ActionResult{}, ErrAlreadyFolded
	}
	if seat.AllIn {
		return ActionResult{}, ErrAlreadyAllIn
	}

	maxBefore := e.maxBet()
	paid := 0

	switch action.Type {
	case ActionFold:
		seat.Folded = true
		// the chips behind the bet are already in the pot; forfeited
		seat.Bet = 0

	case ActionCheck:
		if seat.Bet != maxBefore {
			return ActionResult{}, ErrInvalidCheck
		}

	case ActionCall:
		paid = e.pay(seatIndex, maxBefore-seat.Bet)

	case ActionRaise:
		if action.Amount <= 0 || action.Amount < e.minRaise {
			return ActionResult{}, ErrInvalidRaiseAmount
		}
		paid = e.pay(seatIndex, (maxBefore-seat.Bet)+action.Amount)
		if action.Amount > e.minRaise {
			e.minRaise = action.Amount
		}

	case ActionAllIn:
		paid = e.pay(seatIndex, seat.Chips)

	default:
		return ActionResult{}, ErrUnknownActionType
	}

	seat.Acted = true

	e.emitEvent(events.PlayerActed{
		TableID:   e.TableID,
		HandID:    e.HandID,
		SeatIndex: seatIndex,
		PlayerID:  seat.PlayerID,
		Action:    string(action.Type),
		Paid:      paid,
		AllIn:     seat.AllIn,
		At:        time.Now(),
	})

	// Aggression re-opens the action: every other live seat is entitled
	// to respond again, even if it had already acted this round.
	if e.maxBet() > maxBefore {
		for i := range e.seats {
			if i != seatIndex && e.seats[i].CanAct() {
				e.seats[i].Acted = false
			}
		}
	}

	if e.countContenders() == 1 {
		e.enterShowdown()
		return ActionResult{StageChangedToShowdown: true}, nil
	}

	if e.roundEqualized() {
		e.closeBettingRound()
		return ActionResult{StageChangedToShowdown: e.stage == StageShowdown}, nil
	}

	e.setCurrent(e.nextEligible(seatIndex))

	return ActionResult{}, nil
}

// roundEqualized checks whether the betting round can close: every
// contender has matched the maximum bet or is all-in, and every contender
// has acted since the round opened or was re-opened.
func (e *Engine) roundEqualized() bool {
	max := e.maxBet()
	for i := range e.seats {
		s := &e.seats[i]
		if !s.InHand() {
			continue
		}
		if s.Bet != max && !s.AllIn {
			return false
		}
		if !s.Acted && !s.AllIn {
			return false
		}
	}
	return true
}

// closeBettingRound resets the round bookkeeping (the chips are already in
// the pot) and advances the stage
func (e *Engine) closeBettingRound() {
	for i := range e.seats {
		e.seats[i].Bet = 0
	}

	e.emitEvent(events.BettingRoundEnded{
		TableID: e.TableID,
		HandID:  e.HandID,
		Stage:   string(e.stage),
		Pot:     e.pot,
		At:      time.Now(),
	})

	e.advanceStage()
}

func (e *Engine) advanceStage() {
	previous := e.stage

	switch e.stage {
	case StagePreflop:
		e.stage = StageFlop
		e.dealCommunityCards(3)
	case StageFlop:
		e.stage = StageTurn
		e.dealCommunityCards(1)
	case StageTurn:
		e.stage = StageRiver
		e.dealCommunityCards(1)
	case StageRiver:
		e.enterShowdown()
		return
	default:
		return
	}

	e.emitEvent(events.StageChanged{
		TableID:       e.TableID,
		HandID:        e.HandID,
		PreviousStage: string(previous),
		NewStage:      string(e.stage),
		At:            time.Now(),
	})

	for i := range e.seats {
		e.seats[i].Acted = false
	}

	next := e.nextEligible(e.buttonIndex)
	if next == NoActor {
		// every contender is all-in; run the board out
		e.current = NoActor
		e.closeBettingRound()
		return
	}

	e.setCurrent(next)
}

func (e *Engine) dealCommunityCards(count int) {
	dealt := e.deck.DealCards(count)
	e.board = append(e.board, dealt...)

	e.emitEvent(events.CommunityCardsDealt{
		TableID: e.TableID,
		HandID:  e.HandID,
		Stage:   string(e.stage),
		Cards:   dealt,
		Board:   e.board.Clone(),
		At:      time.Now(),
	})
}

func (e *Engine) enterShowdown() {
	for i := range e.seats {
		e.seats[i].Bet = 0
	}

	previous := e.stage
	e.stage = StageShowdown
	e.current = NoActor

	e.emitEvent(events.StageChanged{
		TableID:       e.TableID,
		HandID:        e.HandID,
		PreviousStage: string(previous),
		NewStage:      string(e.stage),
		At:            time.Now(),
	})

	var contenders []int
	for i := range e.seats {
		if e.seats[i].InHand() {
			contenders = append(contenders, i)
		}
	}

	e.emitEvent(events.ShowdownStarted{
		TableID:    e.TableID,
		HandID:     e.HandID,
		Contenders: contenders,
		At:         time.Now(),
	})
}

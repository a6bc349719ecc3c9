package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/domain/events"
	"github.com/lazharichir/holdem/hands"
)

// Stage represents where the current hand is in its lifecycle
type Stage string

const (
	StageWaiting  Stage = "waiting"
	StagePreflop  Stage = "preflop"
	StageFlop     Stage = "flop"
	StageTurn     Stage = "turn"
	StageRiver    Stage = "river"
	StageShowdown Stage = "showdown"
	StageResults  Stage = "results"
)

// IsBetting checks if players act during this stage
func (s Stage) IsBetting() bool {
	switch s {
	case StagePreflop, StageFlop, StageTurn, StageRiver:
		return true
	}
	return false
}

// NoActor is the current-actor index when nobody is due to act
const NoActor = -1

// Engine owns the table and hand state for one room and drives a hand from
// blinds to payout. It is not safe for concurrent use: the room layer must
// serialize calls into it.
type Engine struct {
	TableID string
	HandID  string

	seats []Seat
	deck  cards.Deck
	board cards.Stack

	pot        int
	minRaise   int
	smallBlind int
	bigBlind   int

	stage       Stage
	buttonIndex int
	current     int

	evaluator     hands.Evaluator
	handStartedAt time.Time

	eventHandlers []events.EventHandler
}

// NewEngine creates an engine with the given fixed seat capacity and blinds
func NewEngine(tableID string, seatCount, smallBlind, bigBlind int, evaluator hands.Evaluator) *Engine {
	return &Engine{
		TableID:    tableID,
		seats:      make([]Seat, seatCount),
		stage:      StageWaiting,
		current:    NoActor,
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
		evaluator:  evaluator,
	}
}

// RegisterEventHandler registers a callback function that will be called when events occur
func (e *Engine) RegisterEventHandler(handler events.EventHandler) {
	e.eventHandlers = append(e.eventHandlers, handler)
}

func (e *Engine) emitEvent(event events.Event) {
	for _, handler := range e.eventHandlers {
		handler(event)
	}
}

// SeatPlayer puts a player on the given seat with their buy-in
func (e *Engine) SeatPlayer(seatIndex int, playerID, name string, chips int) error {
	if seatIndex < 0 || seatIndex >= len(e.seats) {
		return ErrInvalidSeat
	}
	if e.seats[seatIndex].Occupied() {
		return ErrSeatTaken
	}

	e.seats[seatIndex] = Seat{PlayerID: playerID, Name: name, Chips: chips}

	e.emitEvent(events.PlayerSeated{
		TableID:   e.TableID,
		SeatIndex: seatIndex,
		PlayerID:  playerID,
		Chips:     chips,
		At:        time.Now(),
	})

	return nil
}

// PlayerLeaves frees a seat. Folding an in-hand player first is the room
// layer's responsibility.
func (e *Engine) PlayerLeaves(seatIndex int) error {
	if seatIndex < 0 || seatIndex >= len(e.seats) || !e.seats[seatIndex].Occupied() {
		return ErrInvalidSeat
	}

	playerID := e.seats[seatIndex].PlayerID
	e.seats[seatIndex] = Seat{}

	e.emitEvent(events.PlayerLeftTable{
		TableID:   e.TableID,
		SeatIndex: seatIndex,
		PlayerID:  playerID,
		At:        time.Now(),
	})

	return nil
}

// StartHand begins a new hand with the given button seat. With fewer than
// two occupied seats the engine is left in a degraded no-op state (no
// blinds, no actor) and the caller must not proceed.
func (e *Engine) StartHand(buttonIndex int) error {
	if buttonIndex < 0 || buttonIndex >= len(e.seats) {
		return ErrInvalidSeat
	}

	e.deck = cards.NewDeck52()
	e.deck.Shuffle()
	e.board = nil
	e.pot = 0
	e.stage = StagePreflop
	e.HandID = uuid.NewString()
	e.handStartedAt = time.Now()
	e.buttonIndex = buttonIndex
	e.current = NoActor

	for i := range e.seats {
		e.seats[i].resetForHand()
	}
	e.seats[buttonIndex].IsDealer = true

	smallBlindSeat := e.nextOccupied(buttonIndex)
	if smallBlindSeat == NoActor || e.countOccupied() < 2 {
		return ErrNotEnoughPlayers
	}
	bigBlindSeat := e.nextOccupied(smallBlindSeat)

	playerIDs := make([]string, 0, len(e.seats))
	for _, s := range e.seats {
		if s.Occupied() {
			playerIDs = append(playerIDs, s.PlayerID)
		}
	}
	e.emitEvent(events.HandStarted{
		TableID:     e.TableID,
		HandID:      e.HandID,
		ButtonIndex: buttonIndex,
		Players:     playerIDs,
		At:          time.Now(),
	})

	e.postBlind(smallBlindSeat, e.smallBlind, "small")
	e.postBlind(bigBlindSeat, e.bigBlind, "big")
	e.minRaise = e.bigBlind

	e.dealHoleCards()

	for i := range e.seats {
		e.seats[i].Acted = false
	}

	e.setCurrent(e.nextEligible(bigBlindSeat))

	// Blinds can put every contender all-in before anyone acts. No betting
	// is possible, so close the round now and let the board run out.
	if e.current == NoActor {
		e.closeBettingRound()
	}

	return nil
}

// postBlind takes a forced bet, short if the stack cannot cover it
func (e *Engine) postBlind(seatIndex, amount int, kind string) {
	paid := e.pay(seatIndex, amount)

	e.emitEvent(events.BlindPosted{
		TableID:   e.TableID,
		HandID:    e.HandID,
		SeatIndex: seatIndex,
		PlayerID:  e.seats[seatIndex].PlayerID,
		Kind:      kind,
		Amount:    paid,
		AllIn:     e.seats[seatIndex].AllIn,
		At:        time.Now(),
	})
}

// pay moves chips from the seat's stack into the pot, capped at the stack,
// and tracks the round and hand contributions. Returns the amount moved.
func (e *Engine) pay(seatIndex, amount int) int {
	seat := &e.seats[seatIndex]
	if amount > seat.Chips {
		amount = seat.Chips
	}

	previousPot := e.pot
	seat.Chips -= amount
	seat.Bet += amount
	seat.Committed += amount
	e.pot += amount
	if seat.Chips == 0 {
		seat.AllIn = true
	}

	if amount > 0 {
		e.emitEvent(events.PotChanged{
			TableID:        e.TableID,
			HandID:         e.HandID,
			PreviousAmount: previousPot,
			NewAmount:      e.pot,
			At:             time.Now(),
		})
	}

	return amount
}

// dealHoleCards deals one card to each occupied seat, twice, starting from
// the seat after the button and proceeding clockwise
func (e *Engine) dealHoleCards() {
	for round := 0; round < 2; round++ {
		for i := 1; i <= len(e.seats); i++ {
			idx := (e.buttonIndex + i) % len(e.seats)
			if !e.seats[idx].Occupied() {
				continue
			}
			card := e.deck.DealCard()
			e.seats[idx].HoleCards = append(e.seats[idx].HoleCards, card)
		}
	}

	for i := range e.seats {
		if !e.seats[i].Occupied() {
			continue
		}
		e.emitEvent(events.HoleCardsDealt{
			TableID:   e.TableID,
			HandID:    e.HandID,
			SeatIndex: i,
			PlayerID:  e.seats[i].PlayerID,
			Cards:     e.seats[i].HoleCards.Clone(),
			At:        time.Now(),
		})
	}
}

func (e *Engine) setCurrent(seatIndex int) {
	e.current = seatIndex
	if seatIndex == NoActor {
		return
	}
	e.emitEvent(events.PlayerTurnStarted{
		TableID:   e.TableID,
		HandID:    e.HandID,
		SeatIndex: seatIndex,
		PlayerID:  e.seats[seatIndex].PlayerID,
		Stage:     string(e.stage),
		At:        time.Now(),
	})
}

// nextOccupied returns the first occupied seat strictly after the given
// index, wrapping around the table, or NoActor if there is none
func (e *Engine) nextOccupied(from int) int {
	for i := 1; i <= len(e.seats); i++ {
		idx := (from + i) % len(e.seats)
		if e.seats[idx].Occupied() {
			return idx
		}
	}
	return NoActor
}

// nextEligible returns the first seat strictly after the given index that
// can act (occupied, not folded, not all-in), or NoActor if there is none
func (e *Engine) nextEligible(from int) int {
	for i := 1; i <= len(e.seats); i++ {
		idx := (from + i) % len(e.seats)
		if e.seats[idx].CanAct() {
			return idx
		}
	}
	return NoActor
}

func (e *Engine) countOccupied() int {
	count := 0
	for i := range e.seats {
		if e.seats[i].Occupied() {
			count++
		}
	}
	return count
}

func (e *Engine) countContenders() int {
	count := 0
	for i := range e.seats {
		if e.seats[i].InHand() {
			count++
		}
	}
	return count
}

// maxBet returns the highest current-round bet at the table
func (e *Engine) maxBet() int {
	max := 0
	for i := range e.seats {
		if e.seats[i].Bet > max {
			max = e.seats[i].Bet
		}
	}
	return max
}

// Read accessors. Snapshots copy state so callers cannot mutate seats
// behind the engine's back.

func (e *Engine) Stage() Stage       { return e.stage }
func (e *Engine) Pot() int           { return e.pot }
func (e *Engine) MinRaise() int      { return e.minRaise }
func (e *Engine) SmallBlind() int    { return e.smallBlind }
func (e *Engine) BigBlind() int      { return e.bigBlind }
func (e *Engine) ButtonIndex() int   { return e.buttonIndex }
func (e *Engine) CurrentToAct() int  { return e.current }
func (e *Engine) SeatCount() int     { return len(e.seats) }
func (e *Engine) Board() cards.Stack { return e.board.Clone() }

// Seat returns a copy of the seat at the given index
func (e *Engine) Seat(seatIndex int) (Seat, error) {
	if seatIndex < 0 || seatIndex >= len(e.seats) {
		return Seat{}, ErrInvalidSeat
	}
	seat := e.seats[seatIndex]
	seat.HoleCards = seat.HoleCards.Clone()
	return seat, nil
}

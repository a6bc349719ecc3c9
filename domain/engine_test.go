package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/domain/events"
	"github.com/lazharichir/holdem/hands"
)

// stubEvaluator returns a canned result or error, so showdown tests do not
// depend on shuffled cards
type stubEvaluator struct {
	result hands.Result
	err    error
}

func (s stubEvaluator) Evaluate(holes []cards.Stack, board cards.Stack) (hands.Result, error) {
	if s.err != nil {
		return hands.Result{}, s.err
	}
	return s.result, nil
}

// newTestEngine seats the given stacks starting at seat 0 and records every
// emitted event
func newTestEngine(t *testing.T, stacks []int, evaluator hands.Evaluator) (*Engine, *[]events.Event) {
	t.Helper()

	if evaluator == nil {
		evaluator = hands.FallbackEvaluator{}
	}

	engine := NewEngine("tbl_test", len(stacks), 50, 100, evaluator)

	recorded := &[]events.Event{}
	engine.RegisterEventHandler(func(event events.Event) {
		*recorded = append(*recorded, event)
	})

	for i, chips := range stacks {
		playerID := "player-" + string(rune('a'+i))
		require.NoError(t, engine.SeatPlayer(i, playerID, "Player "+string(rune('A'+i)), chips))
	}

	return engine, recorded
}

func findEventOfType(recorded []events.Event, eventType string) (events.Event, bool) {
	for _, event := range recorded {
		if event.Name() == eventType {
			return event, true
		}
	}
	return nil, false
}

// chipTotal is sum of all stacks plus the pot; conserved by every operation
func chipTotal(e *Engine) int {
	total := e.pot
	for i := range e.seats {
		total += e.seats[i].Chips
	}
	return total
}

func TestSeatPlayer(t *testing.T) {
	t.Run("seats a player and emits an event", func(t *testing.T) {
		engine, recorded := newTestEngine(t, []int{1000}, nil)

		seat, err := engine.Seat(0)
		require.NoError(t, err)
		assert.Equal(t, "player-a", seat.PlayerID)
		assert.Equal(t, 1000, seat.Chips)

		event, found := findEventOfType(*recorded, "PLAYER_SEATED")
		require.True(t, found)
		seated := event.(events.PlayerSeated)
		assert.Equal(t, 0, seated.SeatIndex)
		assert.Equal(t, "player-a", seated.PlayerID)
	})

	t.Run("rejects a taken seat", func(t *testing.T) {
		engine, _ := newTestEngine(t, []int{1000}, nil)
		err := engine.SeatPlayer(0, "intruder", "Intruder", 500)
		assert.ErrorIs(t, err, ErrSeatTaken)
	})

	t.Run("rejects an out-of-range seat", func(t *testing.T) {
		engine, _ := newTestEngine(t, []int{1000}, nil)
		assert.ErrorIs(t, engine.SeatPlayer(-1, "x", "X", 500), ErrInvalidSeat)
		assert.ErrorIs(t, engine.SeatPlayer(5, "x", "X", 500), ErrInvalidSeat)
	})
}

func TestPlayerLeaves(t *testing.T) {
	engine, recorded := newTestEngine(t, []int{1000, 1000}, nil)

	require.NoError(t, engine.PlayerLeaves(1))

	seat, err := engine.Seat(1)
	require.NoError(t, err)
	assert.False(t, seat.Occupied())

	_, found := findEventOfType(*recorded, "PLAYER_LEFT_TABLE")
	assert.True(t, found)

	assert.ErrorIs(t, engine.PlayerLeaves(1), ErrInvalidSeat)
}

func TestStartHandHeadsUp(t *testing.T) {
	// Two seats, stacks 1000/1000, blinds 50/100, button on seat 0. The
	// seat after the button posts the small blind and acts first.
	engine, recorded := newTestEngine(t, []int{1000, 1000}, nil)

	require.NoError(t, engine.StartHand(0))

	smallBlindSeat, err := engine.Seat(1)
	require.NoError(t, err)
	assert.Equal(t, 50, smallBlindSeat.Bet)
	assert.Equal(t, 950, smallBlindSeat.Chips)

	bigBlindSeat, err := engine.Seat(0)
	require.NoError(t, err)
	assert.Equal(t, 100, bigBlindSeat.Bet)
	assert.Equal(t, 900, bigBlindSeat.Chips)

	assert.Equal(t, 150, engine.Pot())
	assert.Equal(t, 1, engine.CurrentToAct())
	assert.Equal(t, StagePreflop, engine.Stage())
	assert.Equal(t, 100, engine.MinRaise())
	assert.True(t, bigBlindSeat.IsDealer)

	assert.Len(t, smallBlindSeat.HoleCards, 2)
	assert.Len(t, bigBlindSeat.HoleCards, 2)

	event, found := findEventOfType(*recorded, "HAND_STARTED")
	require.True(t, found)
	started := event.(events.HandStarted)
	assert.Equal(t, 0, started.ButtonIndex)
	assert.Len(t, started.Players, 2)

	assert.Equal(t, 2000, chipTotal(engine))
}

func TestStartHandThreePlayers(t *testing.T) {
	engine, _ := newTestEngine(t, []int{1000, 1000, 1000}, nil)

	require.NoError(t, engine.StartHand(0))

	// seat 1 small blind, seat 2 big blind, seat 0 first to act
	seat1, _ := engine.Seat(1)
	seat2, _ := engine.Seat(2)
	assert.Equal(t, 50, seat1.Bet)
	assert.Equal(t, 100, seat2.Bet)
	assert.Equal(t, 0, engine.CurrentToAct())
	assert.Equal(t, 150, engine.Pot())
}

func TestStartHandNotEnoughPlayers(t *testing.T) {
	engine, _ := newTestEngine(t, []int{1000}, nil)

	err := engine.StartHand(0)
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)
	assert.Equal(t, NoActor, engine.CurrentToAct())
	assert.Equal(t, 0, engine.Pot())
}

func TestStartHandShortBlind(t *testing.T) {
	// A stack smaller than the blind posts what it has and is all-in
	engine, _ := newTestEngine(t, []int{1000, 30}, nil)

	require.NoError(t, engine.StartHand(0))

	smallBlindSeat, _ := engine.Seat(1)
	assert.Equal(t, 30, smallBlindSeat.Bet)
	assert.Equal(t, 0, smallBlindSeat.Chips)
	assert.True(t, smallBlindSeat.AllIn)
	assert.Equal(t, 130, engine.Pot())
}

func TestStartHandAllInBlindsRunOutBoard(t *testing.T) {
	// both stacks are consumed by their blinds, so nobody can act and the
	// board runs out to showdown immediately
	engine, _ := newTestEngine(t, []int{100, 50}, nil)

	require.NoError(t, engine.StartHand(0))

	assert.Equal(t, StageShowdown, engine.Stage())
	assert.Equal(t, NoActor, engine.CurrentToAct())
	assert.Len(t, engine.Board(), 5)
	assert.Equal(t, 150, engine.Pot())
	assert.Equal(t, 150, chipTotal(engine))

	result, err := engine.ShowdownAndDistribute()
	require.NoError(t, err)
	require.NotEmpty(t, result.Payouts)
	assert.Equal(t, 150, chipTotal(engine))

	// the next hand starts cleanly with the settled stacks
	assert.Equal(t, StageResults, engine.Stage())
}

func TestHoleCardsAreUnique(t *testing.T) {
	engine, _ := newTestEngine(t, []int{1000, 1000, 1000, 1000}, nil)

	require.NoError(t, engine.StartHand(2))

	seen := map[string]bool{}
	for i := 0; i < engine.SeatCount(); i++ {
		seat, err := engine.Seat(i)
		require.NoError(t, err)
		require.Len(t, seat.HoleCards, 2)
		for _, card := range seat.HoleCards {
			assert.False(t, seen[card.Code()], "card %s dealt twice", card.Code())
			seen[card.Code()] = true
		}
	}
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyActionValidation(t *testing.T) {
	t.Run("rejects unoccupied or out-of-range seats", func(t *testing.T) {
		engine, _ := newTestEngine(t, []int{1000, 1000}, nil)
		require.NoError(t, engine.StartHand(0))

		_, err := engine.ApplyAction(-1, Action{Type: ActionFold})
		assert.ErrorIs(t, err, ErrInvalidSeat)
		_, err = engine.ApplyAction(7, Action{Type: ActionFold})
		assert.ErrorIs(t, err, ErrInvalidSeat)
	})

	t.Run("rejects actions outside a betting stage", func(t *testing.T) {
		engine, _ := newTestEngine(t, []int{1000, 1000}, nil)

		_, err := engine.ApplyAction(0, Action{Type: ActionCheck})
		assert.ErrorIs(t, err, ErrHandNotActive)

		require.NoError(t, engine.StartHand(0))
		engine.stage = StageResults
		_, err = engine.ApplyAction(0, Action{Type: ActionCheck})
		assert.ErrorIs(t, err, ErrHandNotActive)
	})

	t.Run("rejects when no actor is set", func(t *testing.T) {
		engine, _ := newTestEngine(t, []int{1000, 1000}, nil)
		require.NoError(t, engine.StartHand(0))
		engine.current = NoActor

		_, err := engine.ApplyAction(1, Action{Type: ActionCall})
		assert.ErrorIs(t, err, ErrNoActiveActor)
	})

	t.Run("rejects out-of-turn actions", func(t *testing.T) {
		engine, _ := newTestEngine(t, []int{1000, 1000}, nil)
		require.NoError(t, engine.StartHand(0))
		require.Equal(t, 1, engine.CurrentToAct())

		_, err := engine.ApplyAction(0, Action{Type: ActionCall})
		assert.ErrorIs(t, err, ErrNotYourTurn)
	})

	t.Run("rejects folded and all-in seats", func(t *testing.T) {
		engine, _ := newTestEngine(t, []int{1000, 1000, 1000}, nil)
		require.NoError(t, engine.StartHand(0))

		engine.seats[0].Folded = true
		engine.current = 0
		_, err := engine.ApplyAction(0, Action{Type: ActionCheck})
		assert.ErrorIs(t, err, ErrAlreadyFolded)

		engine.seats[0].Folded = false
		engine.seats[0].AllIn = true
		_, err = engine.ApplyAction(0, Action{Type: ActionCheck})
		assert.ErrorIs(t, err, ErrAlreadyAllIn)
	})

	t.Run("rejects a check behind the max bet", func(t *testing.T) {
		engine, _ := newTestEngine(t, []int{1000, 1000}, nil)
		require.NoError(t, engine.StartHand(0))

		// small blind owes 50 more; checking is not a silent call
		_, err := engine.ApplyAction(1, Action{Type: ActionCheck})
		assert.ErrorIs(t, err, ErrInvalidCheck)
		seat, _ := engine.Seat(1)
		assert.Equal(t, 50, seat.Bet)
		assert.Equal(t, 1, engine.CurrentToAct())
	})

	t.Run("rejects bad raise amounts", func(t *testing.T) {
		engine, _ := newTestEngine(t, []int{1000, 1000}, nil)
		require.NoError(t, engine.StartHand(0))

		_, err := engine.ApplyAction(1, Action{Type: ActionRaise, Amount: 0})
		assert.ErrorIs(t, err, ErrInvalidRaiseAmount)
		_, err = engine.ApplyAction(1, Action{Type: ActionRaise, Amount: -20})
		assert.ErrorIs(t, err, ErrInvalidRaiseAmount)
		_, err = engine.ApplyAction(1, Action{Type: ActionRaise, Amount: 99})
		assert.ErrorIs(t, err, ErrInvalidRaiseAmount)
	})

	t.Run("rejects unknown action types", func(t *testing.T) {
		engine, _ := newTestEngine(t, []int{1000, 1000}, nil)
		require.NoError(t, engine.StartHand(0))

		_, err := engine.ApplyAction(1, Action{Type: ActionType("steal")})
		assert.ErrorIs(t, err, ErrUnknownActionType)
	})
}

func TestCallThenCheckAdvancesToFlop(t *testing.T) {
	engine, _ := newTestEngine(t, []int{1000, 1000}, nil)
	require.NoError(t, engine.StartHand(0))

	before := chipTotal(engine)

	// small blind completes
	_, err := engine.ApplyAction(1, Action{Type: ActionCall})
	require.NoError(t, err)
	seat1, _ := engine.Seat(1)
	assert.Equal(t, 900, seat1.Chips)
	assert.Equal(t, StagePreflop, engine.Stage())
	assert.Equal(t, 0, engine.CurrentToAct())

	// big blind checks back; round equalizes
	result, err := engine.ApplyAction(0, Action{Type: ActionCheck})
	require.NoError(t, err)
	assert.False(t, result.StageChangedToShowdown)

	assert.Equal(t, StageFlop, engine.Stage())
	assert.Len(t, engine.Board(), 3)
	assert.Equal(t, 200, engine.Pot())
	for i := 0; i < engine.SeatCount(); i++ {
		seat, _ := engine.Seat(i)
		assert.Equal(t, 0, seat.Bet)
	}

	assert.Equal(t, before, chipTotal(engine))
}

func TestRaiseReopensAction(t *testing.T) {
	engine, _ := newTestEngine(t, []int{1000, 1000, 1000}, nil)
	require.NoError(t, engine.StartHand(0))

	// reach the flop: everyone in for 100
	_, err := engine.ApplyAction(0, Action{Type: ActionCall})
	require.NoError(t, err)
	_, err = engine.ApplyAction(1, Action{Type: ActionCall})
	require.NoError(t, err)
	_, err = engine.ApplyAction(2, Action{Type: ActionCheck})
	require.NoError(t, err)
	require.Equal(t, StageFlop, engine.Stage())
	require.Equal(t, 1, engine.CurrentToAct())

	// seat 1 checks, then seat 2 raises over the 0 max
	_, err = engine.ApplyAction(1, Action{Type: ActionCheck})
	require.NoError(t, err)
	assert.True(t, engine.seats[1].Acted)

	_, err = engine.ApplyAction(2, Action{Type: ActionRaise, Amount: 200})
	require.NoError(t, err)

	assert.Equal(t, 200, engine.MinRaise())
	assert.True(t, engine.seats[2].Acted)
	assert.False(t, engine.seats[1].Acted, "a raise entitles every live seat to act again")
	assert.False(t, engine.seats[0].Acted)
	assert.Equal(t, StageFlop, engine.Stage())
}

func TestRaiseAmountsAndMinRaise(t *testing.T) {
	engine, _ := newTestEngine(t, []int{1000, 1000, 1000}, nil)
	require.NoError(t, engine.StartHand(0))

	// seat 0 raises by 200 over the 100 blind: pays 300 in total
	_, err := engine.ApplyAction(0, Action{Type: ActionRaise, Amount: 200})
	require.NoError(t, err)

	seat0, _ := engine.Seat(0)
	assert.Equal(t, 700, seat0.Chips)
	assert.Equal(t, 300, seat0.Bet)
	assert.Equal(t, 200, engine.MinRaise())
	assert.Equal(t, 450, engine.Pot())

	// a re-raise below the new minimum is rejected
	_, err = engine.ApplyAction(1, Action{Type: ActionRaise, Amount: 150})
	assert.ErrorIs(t, err, ErrInvalidRaiseAmount)

	// minRaise never decreases
	_, err = engine.ApplyAction(1, Action{Type: ActionRaise, Amount: 200})
	require.NoError(t, err)
	assert.Equal(t, 200, engine.MinRaise())
}

func TestUnderFundedRaiseBecomesAllIn(t *testing.T) {
	engine, _ := newTestEngine(t, []int{1000, 1000, 250}, nil)
	require.NoError(t, engine.StartHand(0))

	// seat 0 raises to 300, seat 1 calls, seat 2 cannot cover the call
	// plus increment and ends up all-in for its remaining 150
	_, err := engine.ApplyAction(0, Action{Type: ActionRaise, Amount: 200})
	require.NoError(t, err)
	_, err = engine.ApplyAction(1, Action{Type: ActionRaise, Amount: 200})
	require.NoError(t, err)
	_, err = engine.ApplyAction(2, Action{Type: ActionRaise, Amount: 200})
	require.NoError(t, err)

	seat2, _ := engine.Seat(2)
	assert.Equal(t, 0, seat2.Chips)
	assert.Equal(t, 250, seat2.Committed)
	assert.True(t, seat2.AllIn)
}

func TestFoldShortCircuitsToShowdown(t *testing.T) {
	engine, _ := newTestEngine(t, []int{1000, 1000}, nil)
	require.NoError(t, engine.StartHand(0))

	result, err := engine.ApplyAction(1, Action{Type: ActionFold})
	require.NoError(t, err)

	assert.True(t, result.StageChangedToShowdown)
	assert.Equal(t, StageShowdown, engine.Stage())
	assert.Equal(t, NoActor, engine.CurrentToAct())

	seat1, _ := engine.Seat(1)
	assert.True(t, seat1.Folded)
	assert.Equal(t, 0, seat1.Bet)
	// the blind stays forfeited in the pot
	assert.Equal(t, 150, engine.Pot())
}

func TestFullStreetProgression(t *testing.T) {
	engine, _ := newTestEngine(t, []int{1000, 1000}, nil)
	require.NoError(t, engine.StartHand(0))

	checkDown := func(first, second int) {
		_, err := engine.ApplyAction(first, Action{Type: ActionCheck})
		require.NoError(t, err)
		_, err = engine.ApplyAction(second, Action{Type: ActionCheck})
		require.NoError(t, err)
	}

	_, err := engine.ApplyAction(1, Action{Type: ActionCall})
	require.NoError(t, err)
	_, err = engine.ApplyAction(0, Action{Type: ActionCheck})
	require.NoError(t, err)
	require.Equal(t, StageFlop, engine.Stage())
	require.Len(t, engine.Board(), 3)

	checkDown(1, 0)
	require.Equal(t, StageTurn, engine.Stage())
	require.Len(t, engine.Board(), 4)

	checkDown(1, 0)
	require.Equal(t, StageRiver, engine.Stage())
	require.Len(t, engine.Board(), 5)

	_, err = engine.ApplyAction(1, Action{Type: ActionCheck})
	require.NoError(t, err)
	result, err := engine.ApplyAction(0, Action{Type: ActionCheck})
	require.NoError(t, err)

	assert.True(t, result.StageChangedToShowdown)
	assert.Equal(t, StageShowdown, engine.Stage())
	assert.Equal(t, NoActor, engine.CurrentToAct())
}

func TestAllInRunOutDealsRemainingBoard(t *testing.T) {
	engine, _ := newTestEngine(t, []int{1000, 1000}, nil)
	require.NoError(t, engine.StartHand(0))

	_, err := engine.ApplyAction(1, Action{Type: ActionAllIn})
	require.NoError(t, err)
	result, err := engine.ApplyAction(0, Action{Type: ActionAllIn})
	require.NoError(t, err)

	// nobody left to act, so the board runs out to showdown
	assert.True(t, result.StageChangedToShowdown)
	assert.Equal(t, StageShowdown, engine.Stage())
	assert.Len(t, engine.Board(), 5)
	assert.Equal(t, 2000, engine.Pot())
	assert.Equal(t, NoActor, engine.CurrentToAct())
}

func TestTurnMonotonicity(t *testing.T) {
	// after any non-terminal action the current actor is occupied, live
	// and not all-in
	engine, _ := newTestEngine(t, []int{1000, 1000, 1000, 1000}, nil)
	require.NoError(t, engine.StartHand(1))

	actions := []struct {
		seat   int
		action Action
	}{
		{0, Action{Type: ActionCall}},
		{1, Action{Type: ActionFold}},
		{2, Action{Type: ActionCall}},
		{3, Action{Type: ActionRaise, Amount: 100}},
	}

	for _, step := range actions {
		_, err := engine.ApplyAction(step.seat, step.action)
		require.NoError(t, err)

		current := engine.CurrentToAct()
		if current == NoActor {
			continue
		}
		seat, err := engine.Seat(current)
		require.NoError(t, err)
		assert.True(t, seat.Occupied())
		assert.False(t, seat.Folded)
		assert.False(t, seat.AllIn)
	}
}

func TestChipConservationAcrossHand(t *testing.T) {
	engine, _ := newTestEngine(t, []int{1000, 800, 1200}, nil)
	require.NoError(t, engine.StartHand(0))

	total := chipTotal(engine)
	assert.Equal(t, 3000, total)

	steps := []struct {
		seat   int
		action Action
	}{
		{0, Action{Type: ActionRaise, Amount: 150}},
		{1, Action{Type: ActionCall}},
		{2, Action{Type: ActionFold}},
		{1, Action{Type: ActionCheck}},
		{0, Action{Type: ActionCheck}},
	}

	for _, step := range steps {
		_, err := engine.ApplyAction(step.seat, step.action)
		require.NoError(t, err)
		assert.Equal(t, total, chipTotal(engine), "chips created or destroyed by %s", step.action.Type)
	}
}

func TestEqualizationIsIdempotent(t *testing.T) {
	engine, _ := newTestEngine(t, []int{1000, 1000}, nil)
	require.NoError(t, engine.StartHand(0))

	_, err := engine.ApplyAction(1, Action{Type: ActionCall})
	require.NoError(t, err)
	_, err = engine.ApplyAction(0, Action{Type: ActionCheck})
	require.NoError(t, err)
	require.Equal(t, StageFlop, engine.Stage())

	// re-checking the predicate without a new action never advances the
	// stage again
	board := engine.Board()
	for i := 0; i < 3; i++ {
		engine.roundEqualized()
	}
	assert.Equal(t, StageFlop, engine.Stage())
	assert.Equal(t, board, engine.Board())
}

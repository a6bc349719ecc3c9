package domain

import (
	"time"

	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/domain/events"
)

// Payout is one seat's share of the pot
type Payout struct {
	SeatIndex int
	PlayerID  string
	Amount    int
}

// WinnerDetail explains why a seat won; Index is the seat's position in
// the contenders list handed to the evaluator.
type WinnerDetail struct {
	SeatIndex int
	PlayerID  string
	Index     int
	Reason    string
}

// ShowdownResult is returned to the transport layer for display
type ShowdownResult struct {
	Payouts []Payout
	Winners []WinnerDetail
}

// ShowdownAndDistribute evaluates the contenders' hands, splits the pot
// and resets the hand-scoped state. Evaluator failures are recovered with
// a crude highest-first-hole-card comparison so a hand always resolves.
func (e *Engine) ShowdownAndDistribute() (ShowdownResult, error) {
	if e.stage != StageShowdown {
		return ShowdownResult{}, ErrNotInShowdown
	}

	var contenders []int
	for i := range e.seats {
		if e.seats[i].InHand() {
			contenders = append(contenders, i)
		}
	}

	if len(contenders) == 0 {
		e.finishHand(nil)
		return ShowdownResult{}, nil
	}

	winners, reasons := e.pickWinners(contenders)

	// Even split; the integer remainder goes to the first winner
	share := e.pot / len(winners)
	remainder := e.pot % len(winners)

	result := ShowdownResult{}
	for i, w := range winners {
		amount := share
		if i == 0 {
			amount += remainder
		}

		seatIndex := contenders[w]
		seat := &e.seats[seatIndex]
		seat.Chips += amount

		result.Payouts = append(result.Payouts, Payout{
			SeatIndex: seatIndex,
			PlayerID:  seat.PlayerID,
			Amount:    amount,
		})
		result.Winners = append(result.Winners, WinnerDetail{
			SeatIndex: seatIndex,
			PlayerID:  seat.PlayerID,
			Index:     w,
			Reason:    reasons[w],
		})

		e.emitEvent(events.PotAwarded{
			TableID:   e.TableID,
			HandID:    e.HandID,
			SeatIndex: seatIndex,
			PlayerID:  seat.PlayerID,
			Amount:    amount,
			Reason:    reasons[w],
			At:        time.Now(),
		})
	}

	e.finishHand(result.Winners)

	return result, nil
}

// pickWinners returns winner positions within the contenders list plus a
// reason per contender position.
func (e *Engine) pickWinners(contenders []int) ([]int, map[int]string) {
	reasons := make(map[int]string)

	if len(contenders) == 1 {
		e.emitShowedHand(contenders[0], "last player standing")
		reasons[0] = "last player standing"
		return []int{0}, reasons
	}

	holes := make([]cards.Stack, len(contenders))
	for i, seatIndex := range contenders {
		holes[i] = e.seats[seatIndex].HoleCards.Clone()
	}

	evaluation, err := e.evaluator.Evaluate(holes, e.board.Clone())
	if err != nil {
		// Last resort: highest first hole card wins. Deliberately crude;
		// only reachable when the evaluator itself failed.
		winners := fallbackWinners(holes)
		for _, w := range winners {
			reasons[w] = "high card (evaluator unavailable)"
		}
		for _, w := range winners {
			e.emitShowedHand(contenders[w], reasons[w])
		}
		return winners, reasons
	}

	for _, ph := range evaluation.PerPlayer {
		reasons[ph.Index] = ph.Description
	}
	for _, seatIndex := range contenders {
		pos := indexOf(contenders, seatIndex)
		e.emitShowedHand(seatIndex, reasons[pos])
	}

	return evaluation.WinnerIndices, reasons
}

func (e *Engine) emitShowedHand(seatIndex int, description string) {
	e.emitEvent(events.PlayerShowedHand{
		TableID:     e.TableID,
		HandID:      e.HandID,
		SeatIndex:   seatIndex,
		PlayerID:    e.seats[seatIndex].PlayerID,
		HoleCards:   e.seats[seatIndex].HoleCards.Clone(),
		Description: description,
		At:          time.Now(),
	})
}

// fallbackWinners selects the contender positions holding the single
// highest first hole card by rank
func fallbackWinners(holes []cards.Stack) []int {
	best := cards.Rank(0)
	for _, hole := range holes {
		if len(hole) > 0 && hole[0].Rank > best {
			best = hole[0].Rank
		}
	}

	var winners []int
	for i, hole := range holes {
		if len(hole) > 0 && hole[0].Rank == best {
			winners = append(winners, i)
		}
	}
	if len(winners) == 0 {
		// no hole cards at all; everyone ties
		for i := range holes {
			winners = append(winners, i)
		}
	}
	return winners
}

// finishHand resets the hand-scoped state and moves to results
func (e *Engine) finishHand(winners []WinnerDetail) {
	var winnerIDs []string
	for _, w := range winners {
		winnerIDs = append(winnerIDs, w.PlayerID)
	}

	e.pot = 0
	e.board = nil
	e.stage = StageResults
	e.current = NoActor
	e.minRaise = 0

	for i := range e.seats {
		e.seats[i].Bet = 0
		e.seats[i].Committed = 0
		e.seats[i].HoleCards = nil
		e.seats[i].Folded = false
		e.seats[i].AllIn = false
		e.seats[i].Acted = false
	}

	e.emitEvent(events.HandEnded{
		TableID:  e.TableID,
		HandID:   e.HandID,
		Duration: time.Since(e.handStartedAt).Milliseconds(),
		Winners:  winnerIDs,
		At:       time.Now(),
	})
}

func indexOf(list []int, value int) int {
	for i, v := range list {
		if v == value {
			return i
		}
	}
	return -1
}

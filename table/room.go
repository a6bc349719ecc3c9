package table

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sanity-io/litter"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/domain/events"
	"github.com/lazharichir/holdem/hands"
)

// Rules are the per-room parameters fixed at creation time
type Rules struct {
	SeatCount   int
	SmallBlind  int
	BigBlind    int
	TurnTimeout time.Duration
}

// Room owns one engine and serializes every call into it through a single
// command channel, so concurrent rooms run independently while actions on
// the same table never interleave.
type Room struct {
	ID    string
	Name  string
	Rules Rules

	engine   *domain.Engine
	commands chan func()
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	logger   *log.Logger

	turnTimer *time.Timer
	turnSeq   int

	observers     []events.EventHandler
	observersLock sync.RWMutex
}

// NewRoom creates a room with its own engine. Call Start before use.
func NewRoom(name string, rules Rules, evaluator hands.Evaluator, logger *log.Logger) *Room {
	ctx, cancel := context.WithCancel(context.Background())

	room := &Room{
		ID:       uuid.NewString(),
		Name:     name,
		Rules:    rules,
		commands: make(chan func(), 100),
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger.With("room", name),
	}
	room.engine = domain.NewEngine(room.ID, rules.SeatCount, rules.SmallBlind, rules.BigBlind, evaluator)
	room.engine.RegisterEventHandler(room.onEngineEvent)

	return room
}

// Start runs the room's command loop
func (r *Room) Start() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.runLoop()
	}()
}

// Stop shuts the room down and waits for the loop to drain
func (r *Room) Stop() {
	r.cancel()
	r.wg.Wait()
	if r.turnTimer != nil {
		r.turnTimer.Stop()
	}
}

func (r *Room) runLoop() {
	for {
		select {
		case <-r.ctx.Done():
			return
		case command := <-r.commands:
			command()
		}
	}
}

// do runs fn on the room's loop goroutine and waits for it to finish
func (r *Room) do(fn func()) error {
	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		fn()
	}

	select {
	case r.commands <- wrapped:
	case <-r.ctx.Done():
		return ErrRoomClosed
	}

	select {
	case <-done:
		return nil
	case <-r.ctx.Done():
		return ErrRoomClosed
	}
}

// RegisterObserver subscribes to every engine event the room produces.
// Handlers run on the room's loop goroutine and must not block.
func (r *Room) RegisterObserver(handler events.EventHandler) {
	r.observersLock.Lock()
	defer r.observersLock.Unlock()
	r.observers = append(r.observers, handler)
}

func (r *Room) onEngineEvent(event events.Event) {
	r.logger.Debug("engine event", "event", event.Name())

	if turn, ok := event.(events.PlayerTurnStarted); ok {
		r.armTurnTimer(turn.SeatIndex)
	}

	r.observersLock.RLock()
	observers := make([]events.EventHandler, len(r.observers))
	copy(observers, r.observers)
	r.observersLock.RUnlock()

	for _, observer := range observers {
		observer(event)
	}
}

// armTurnTimer schedules a forced fold if the seat does not act in time.
// The sequence number discards stale timers after the turn already moved.
func (r *Room) armTurnTimer(seatIndex int) {
	if r.Rules.TurnTimeout <= 0 {
		return
	}

	r.turnSeq++
	seq := r.turnSeq

	if r.turnTimer != nil {
		r.turnTimer.Stop()
	}
	r.turnTimer = time.AfterFunc(r.Rules.TurnTimeout, func() {
		r.forceFold(seatIndex, seq)
	})
}

func (r *Room) forceFold(seatIndex, seq int) {
	err := r.do(func() {
		if seq != r.turnSeq || r.engine.CurrentToAct() != seatIndex {
			return
		}

		r.logger.Info("turn timed out, folding", "seat", seatIndex)
		result, err := r.engine.ApplyAction(seatIndex, domain.Action{Type: domain.ActionFold})
		if err != nil {
			r.logger.Error("forced fold failed", "seat", seatIndex, "err", err)
			return
		}
		if result.StageChangedToShowdown {
			r.resolveShowdown()
		}
	})
	if err != nil {
		r.logger.Debug("room closed before forced fold", "seat", seatIndex)
	}
}

// SeatPlayer puts a player on the given seat
func (r *Room) SeatPlayer(seatIndex int, playerID, name string, chips int) error {
	var actErr error
	if err := r.do(func() {
		actErr = r.engine.SeatPlayer(seatIndex, playerID, name, chips)
	}); err != nil {
		return err
	}
	return actErr
}

// PlayerLeaves frees a seat, folding the player first if a hand is live
func (r *Room) PlayerLeaves(seatIndex int) error {
	var actErr error
	if err := r.do(func() {
		if r.engine.Stage().IsBetting() && r.engine.CurrentToAct() == seatIndex {
			result, foldErr := r.engine.ApplyAction(seatIndex, domain.Action{Type: domain.ActionFold})
			if foldErr == nil && result.StageChangedToShowdown {
				r.resolveShowdown()
			}
		}
		actErr = r.engine.PlayerLeaves(seatIndex)
	}); err != nil {
		return err
	}
	return actErr
}

// StartHand begins a new hand with the given button seat
func (r *Room) StartHand(buttonIndex int) error {
	var actErr error
	if err := r.do(func() {
		actErr = r.engine.StartHand(buttonIndex)
	}); err != nil {
		return err
	}
	return actErr
}

// Act applies one player action; when the action ends the hand the room
// resolves the showdown in the same serialized step
func (r *Room) Act(seatIndex int, action domain.Action) (domain.ActionResult, error) {
	var result domain.ActionResult
	var actErr error
	if err := r.do(func() {
		result, actErr = r.engine.ApplyAction(seatIndex, action)
		if actErr == nil && result.StageChangedToShowdown {
			r.resolveShowdown()
		}
	}); err != nil {
		return domain.ActionResult{}, err
	}
	return result, actErr
}

// resolveShowdown runs on the loop goroutine
func (r *Room) resolveShowdown() {
	result, err := r.engine.ShowdownAndDistribute()
	if err != nil {
		r.logger.Error("showdown failed", "err", err)
		return
	}
	r.logger.Debug("showdown resolved", "result", litter.Sdump(result))
}

// PublicView snapshots the table for spectators
func (r *Room) PublicView() (domain.TableView, error) {
	var view domain.TableView
	if err := r.do(func() {
		view = r.engine.PublicView()
	}); err != nil {
		return domain.TableView{}, err
	}
	return view, nil
}

// PrivateView snapshots the table for the player on the given seat
func (r *Room) PrivateView(seatIndex int) (domain.PlayerView, error) {
	var view domain.PlayerView
	var actErr error
	if err := r.do(func() {
		view, actErr = r.engine.PrivateView(seatIndex)
	}); err != nil {
		return domain.PlayerView{}, err
	}
	return view, actErr
}

// SeatIndexOf finds the seat currently held by the given player
func (r *Room) SeatIndexOf(playerID string) (int, error) {
	found := domain.NoActor
	if err := r.do(func() {
		for i := 0; i < r.engine.SeatCount(); i++ {
			seat, err := r.engine.Seat(i)
			if err == nil && seat.PlayerID == playerID {
				found = i
				return
			}
		}
	}); err != nil {
		return domain.NoActor, err
	}
	if found == domain.NoActor {
		return domain.NoActor, ErrPlayerNotSeated
	}
	return found, nil
}

package domain

import "errors"

// Rejections of a single StartHand/ApplyAction/ShowdownAndDistribute call.
// Validation happens before any mutation, so a returned error means the
// engine state is unchanged and the hand continues normally.
var (
	ErrInvalidSeat        = errors.New("seat index out of range or unoccupied")
	ErrHandNotActive      = errors.New("no betting is possible in the current stage")
	ErrNoActiveActor      = errors.New("no player is due to act")
	ErrNotYourTurn        = errors.New("not this seat's turn to act")
	ErrAlreadyFolded      = errors.New("seat has already folded")
	ErrAlreadyAllIn       = errors.New("seat is already all-in")
	ErrInvalidCheck       = errors.New("cannot check behind the current bet")
	ErrInvalidRaiseAmount = errors.New("raise amount must be positive and at least the minimum raise")
	ErrUnknownActionType  = errors.New("unknown action type")
	ErrNotEnoughPlayers   = errors.New("need at least 2 occupied seats to start a hand")
	ErrNotInShowdown      = errors.New("hand has not reached showdown")
	ErrSeatTaken          = errors.New("seat is already occupied")
)

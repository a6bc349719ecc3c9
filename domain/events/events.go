package events

import (
	"time"

	"github.com/lazharichir/holdem/cards"
)

type EventHandler func(event Event)

// Event is the interface that all domain events must implement.
type Event interface {
	Name() string
}

// Table membership events

type PlayerSeated struct {
	TableID   string
	SeatIndex int
	PlayerID  string
	Chips     int
	At        time.Time
}

func (e PlayerSeated) Name() string { return "PLAYER_SEATED" }

type PlayerLeftTable struct {
	TableID   string
	SeatIndex int
	PlayerID  string
	At        time.Time
}

func (e PlayerLeftTable) Name() string { return "PLAYER_LEFT_TABLE" }

// Hand lifecycle events

type HandStarted struct {
	TableID     string
	HandID      string
	ButtonIndex int
	Players     []string
	At          time.Time
}

func (e HandStarted) Name() string { return "HAND_STARTED" }

type BlindPosted struct {
	TableID   string
	HandID    string
	SeatIndex int
	PlayerID  string
	Kind      string // "small" or "big"
	Amount    int
	AllIn     bool
	At        time.Time
}

func (e BlindPosted) Name() string { return "BLIND_POSTED" }

// HoleCardsDealt carries a single seat's cards; the transport must only
// relay it to the seat's own player.
type HoleCardsDealt struct {
	TableID   string
	HandID    string
	SeatIndex int
	PlayerID  string
	Cards     cards.Stack
	At        time.Time
}

func (e HoleCardsDealt) Name() string { return "HOLE_CARDS_DEALT" }

type CommunityCardsDealt struct {
	TableID string
	HandID  string
	Stage   string
	Cards   cards.Stack
	Board   cards.Stack
	At      time.Time
}

func (e CommunityCardsDealt) Name() string { return "COMMUNITY_CARDS_DEALT" }

type StageChanged struct {
	TableID       string
	HandID        string
	PreviousStage string
	NewStage      string
	At            time.Time
}

func (e StageChanged) Name() string { return "STAGE_CHANGED" }

// Betting events

type PlayerTurnStarted struct {
	TableID   string
	HandID    string
	SeatIndex int
	PlayerID  string
	Stage     string
	At        time.Time
}

func (e PlayerTurnStarted) Name() string { return "PLAYER_TURN_STARTED" }

type PlayerActed struct {
	TableID   string
	HandID    string
	SeatIndex int
	PlayerID  string
	Action    string
	Paid      int
	AllIn     bool
	At        time.Time
}

func (e PlayerActed) Name() string { return "PLAYER_ACTED" }

type PotChanged struct {
	TableID        string
	HandID         string
	PreviousAmount int
	NewAmount      int
	At             time.Time
}

func (e PotChanged) Name() string { return "POT_CHANGED" }

type BettingRoundEnded struct {
	TableID string
	HandID  string
	Stage   string
	Pot     int
	At      time.Time
}

func (e BettingRoundEnded) Name() string { return "BETTING_ROUND_ENDED" }

// Showdown events

type ShowdownStarted struct {
	TableID    string
	HandID     string
	Contenders []int
	At         time.Time
}

func (e ShowdownStarted) Name() string { return "SHOWDOWN_STARTED" }

type PlayerShowedHand struct {
	TableID     string
	HandID      string
	SeatIndex   int
	PlayerID    string
	HoleCards   cards.Stack
	Description string
	At          time.Time
}

func (e PlayerShowedHand) Name() string { return "PLAYER_SHOWED_HAND" }

type PotAwarded struct {
	TableID   string
	HandID    string
	SeatIndex int
	PlayerID  string
	Amount    int
	Reason    string
	At        time.Time
}

func (e PotAwarded) Name() string { return "POT_AWARDED" }

type HandEnded struct {
	TableID  string
	HandID   string
	Duration int64 // in milliseconds
	Winners  []string
	At       time.Time
}

func (e HandEnded) Name() string { return "HAND_ENDED" }

// ExtractTableID returns the table an event belongs to, or "" when the
// event type is unknown
func ExtractTableID(event Event) string {
	switch e := event.(type) {
	case PlayerSeated:
		return e.TableID
	case PlayerLeftTable:
		return e.TableID
	case HandStarted:
		return e.TableID
	case BlindPosted:
		return e.TableID
	case HoleCardsDealt:
		return e.TableID
	case CommunityCardsDealt:
		return e.TableID
	case StageChanged:
		return e.TableID
	case PlayerTurnStarted:
		return e.TableID
	case PlayerActed:
		return e.TableID
	case PotChanged:
		return e.TableID
	case BettingRoundEnded:
		return e.TableID
	case ShowdownStarted:
		return e.TableID
	case PlayerShowedHand:
		return e.TableID
	case PotAwarded:
		return e.TableID
	case HandEnded:
		return e.TableID
	}
	return ""
}

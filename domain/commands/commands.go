package commands

// Command is an incoming client instruction
type Command interface {
	Name() string
}

type JoinTable struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	TableID    string `json:"table_id"`
	SeatIndex  int    `json:"seat_index"`
	BuyIn      int    `json:"buy_in"`
}

func (c JoinTable) Name() string { return "JOIN_TABLE" }

type LeaveTable struct {
	PlayerID string `json:"player_id"`
	TableID  string `json:"table_id"`
}

func (c LeaveTable) Name() string { return "LEAVE_TABLE" }

type StartHand struct {
	TableID     string `json:"table_id"`
	ButtonIndex int    `json:"button_index"`
}

func (c StartHand) Name() string { return "START_HAND" }

// PlayerActs carries one betting decision. Amount is only meaningful for
// raises, where it is the increment over the current maximum bet.
type PlayerActs struct {
	PlayerID string `json:"player_id"`
	TableID  string `json:"table_id"`
	Action   string `json:"action"`
	Amount   int    `json:"amount"`
}

func (c PlayerActs) Name() string { return "PLAYER_ACTS" }

type GetTableState struct {
	PlayerID string `json:"player_id"`
	TableID  string `json:"table_id"`
}

func (c GetTableState) Name() string { return "GET_TABLE_STATE" }

package handlers

import (
	"encoding/json"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/domain/commands"
	"github.com/lazharichir/holdem/server/connection"
	"github.com/lazharichir/holdem/table"
)

var ErrUnknownCommand = errors.New("unknown command type")

// CommandRouter routes incoming commands to the appropriate handler
type CommandRouter struct {
	rooms   *table.Manager
	connMgr *connection.Manager
	logger  *log.Logger
}

// NewCommandRouter creates a new command router
func NewCommandRouter(rooms *table.Manager, connMgr *connection.Manager, logger *log.Logger) *CommandRouter {
	return &CommandRouter{
		rooms:   rooms,
		connMgr: connMgr,
		logger:  logger,
	}
}

// HandleCommand processes an incoming command message
func (r *CommandRouter) HandleCommand(client *connection.Client, message []byte) error {
	var baseCmd struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(message, &baseCmd); err != nil {
		return err
	}

	switch baseCmd.Name {
	case commands.JoinTable{}.Name():
		var cmd commands.JoinTable
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handleJoinTable(client, cmd)

	case commands.LeaveTable{}.Name():
		var cmd commands.LeaveTable
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handleLeaveTable(client, cmd)

	case commands.StartHand{}.Name():
		var cmd commands.StartHand
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handleStartHand(client, cmd)

	case commands.PlayerActs{}.Name():
		var cmd commands.PlayerActs
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handlePlayerActs(client, cmd)

	case commands.GetTableState{}.Name():
		var cmd commands.GetTableState
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handleGetTableState(client, cmd)

	default:
		r.logger.Warn("unknown command", "name", baseCmd.Name)
		return ErrUnknownCommand
	}
}

func (r *CommandRouter) handleJoinTable(client *connection.Client, cmd commands.JoinTable) error {
	room, err := r.rooms.Room(cmd.TableID)
	if err != nil {
		return err
	}

	if client.PlayerID == "" {
		client.PlayerID = cmd.PlayerID
		r.connMgr.BindPlayer(client.ID, cmd.PlayerID)
	}

	if err := room.SeatPlayer(cmd.SeatIndex, cmd.PlayerID, cmd.PlayerName, cmd.BuyIn); err != nil {
		return err
	}

	r.connMgr.AddTableToClient(client.ID, cmd.TableID)
	return nil
}

func (r *CommandRouter) handleLeaveTable(client *connection.Client, cmd commands.LeaveTable) error {
	room, err := r.rooms.Room(cmd.TableID)
	if err != nil {
		return err
	}

	seatIndex, err := room.SeatIndexOf(client.PlayerID)
	if err != nil {
		return err
	}

	if err := room.PlayerLeaves(seatIndex); err != nil {
		return err
	}

	r.connMgr.RemoveTableFromClient(client.ID, cmd.TableID)
	return nil
}

func (r *CommandRouter) handleStartHand(client *connection.Client, cmd commands.StartHand) error {
	room, err := r.rooms.Room(cmd.TableID)
	if err != nil {
		return err
	}
	return room.StartHand(cmd.ButtonIndex)
}

func (r *CommandRouter) handlePlayerActs(client *connection.Client, cmd commands.PlayerActs) error {
	room, err := r.rooms.Room(cmd.TableID)
	if err != nil {
		return err
	}

	seatIndex, err := room.SeatIndexOf(client.PlayerID)
	if err != nil {
		return err
	}

	_, err = room.Act(seatIndex, domain.Action{
		Type:   domain.ActionType(cmd.Action),
		Amount: cmd.Amount,
	})
	return err
}

func (r *CommandRouter) handleGetTableState(client *connection.Client, cmd commands.GetTableState) error {
	room, err := r.rooms.Room(cmd.TableID)
	if err != nil {
		return err
	}

	seatIndex, err := room.SeatIndexOf(client.PlayerID)
	if err != nil {
		// spectators get the public snapshot
		view, viewErr := room.PublicView()
		if viewErr != nil {
			return viewErr
		}
		return r.sendView(client, "TABLE_STATE", view)
	}

	view, err := room.PrivateView(seatIndex)
	if err != nil {
		return err
	}
	return r.sendView(client, "TABLE_STATE", view)
}

func (r *CommandRouter) sendView(client *connection.Client, name string, view any) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return err
	}
	envelope, err := json.Marshal(struct {
		Name    string          `json:"name"`
		Payload json.RawMessage `json:"payload"`
	}{Name: name, Payload: payload})
	if err != nil {
		return err
	}

	client.Send <- envelope
	return nil
}

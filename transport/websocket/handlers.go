package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/warehouse-backend/internal/apperror"
	"github.com/rocketscienceinc/warehouse-backend/internal/entity"
)

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleNewGame")

	view, err := that.uGame.CreateGame(ctx)
	if err != nil {
		log.Error("failed to create game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new game", apperror.KindInternal)
	}

	log.Info("game created", "gameID", view.ID)

	return that.sendMessage(conn, msg.Action, ResponsePayload{Game: view})
}

func (that *Server) handleGameState(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	gameID, ok, err := that.requireGameID(msg, conn)
	if !ok {
		return err
	}

	view, err := that.uGame.GetView(ctx, gameID)

	return that.respond(conn, msg.Action, view, err)
}

func (that *Server) handleSubmit(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleSubmit")

	var payloadReq RequestPayload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		log.Error("failed to unmarshal payload", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "malformed payload", kindBadRequest)
	}

	if payloadReq.Game == nil || payloadReq.Game.ID == "" {
		return that.sendErrorResponse(conn, msg.Action, "Game is required", kindBadRequest)
	}

	if payloadReq.X == nil || payloadReq.Y == nil {
		return that.sendErrorResponse(conn, msg.Action, "Coordinates are required", kindBadRequest)
	}

	view, err := that.uGame.SubmitCoordinate(ctx, payloadReq.Game.ID, payloadReq.Role, *payloadReq.X, *payloadReq.Y)

	return that.respond(conn, msg.Action, view, err)
}

func (that *Server) handleRoundStart(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	gameID, ok, err := that.requireGameID(msg, conn)
	if !ok {
		return err
	}

	view, err := that.uGame.TriggerRoundStart(ctx, gameID)

	return that.respond(conn, msg.Action, view, err)
}

func (that *Server) handleReset(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	gameID, ok, err := that.requireGameID(msg, conn)
	if !ok {
		return err
	}

	view, err := that.uGame.Reset(ctx, gameID)

	return that.respond(conn, msg.Action, view, err)
}

func (that *Server) handleDelete(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	gameID, ok, err := that.requireGameID(msg, conn)
	if !ok {
		return err
	}

	if err = that.uGame.DeleteGame(ctx, gameID); err != nil {
		return that.respond(conn, msg.Action, nil, err)
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{Deleted: gameID})
}

// requireGameID - extracts payload.game.id. When it is missing an error response is sent
// and ok is false; err is then the result of sending it.
func (that *Server) requireGameID(msg *Message, conn *websocket.Conn) (string, bool, error) {
	var payloadReq RequestPayload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return "", false, that.sendErrorResponse(conn, msg.Action, "malformed payload", kindBadRequest)
	}

	if payloadReq.Game == nil || payloadReq.Game.ID == "" {
		return "", false, that.sendErrorResponse(conn, msg.Action, "Game is required", kindBadRequest)
	}

	return payloadReq.Game.ID, true, nil
}

// respond - sends the view, or the error with its kind. Rejected input also carries the view.
func (that *Server) respond(conn *websocket.Conn, action string, view *entity.View, err error) error {
	log := that.logger.With("method", "respond", "action", action)

	if err == nil {
		return that.sendMessage(conn, action, ResponsePayload{Game: view})
	}

	kind := apperror.Kind(err)

	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return that.sendErrorResponse(conn, action, "game doesn't exist", kind)
	case apperror.IsValidation(err):
		log.Debug("input rejected", "kind", kind, "error", err)
		return that.sendMessage(conn, action, ResponsePayload{Game: view, Error: err.Error(), Kind: kind})
	default:
		log.Error("failed to handle action", "error", err)
		return that.sendErrorResponse(conn, action, "internal error", kind)
	}
}

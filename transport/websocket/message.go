package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/warehouse-backend/internal/entity"
)

const (
	actionGameNew    = "game:new"
	actionGameState  = "game:state"
	actionGameSubmit = "game:submit"
	actionGameRound  = "game:round"
	actionGameReset  = "game:reset"
	actionGameDelete = "game:delete"
)

const kindBadRequest = "bad_request"

// Message - envelope of every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type GameRef struct {
	ID string `json:"id"`
}

type RequestPayload struct {
	Game *GameRef `json:"game,omitempty"`
	Role string   `json:"role,omitempty"`
	X    *int     `json:"x,omitempty"`
	Y    *int     `json:"y,omitempty"`
}

type ResponsePayload struct {
	Game    *entity.View `json:"game,omitempty"`
	Deleted string       `json:"deleted,omitempty"`
	Error   string       `json:"error,omitempty"`
	Kind    string       `json:"kind,omitempty"`
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err = conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *websocket.Conn, action, errorMsg, kind string) error {
	if err := that.sendMessage(conn, action, ResponsePayload{Error: errorMsg, Kind: kind}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

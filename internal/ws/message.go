package ws

import (
	"encoding/json"

	"passball/internal/game"
)

// входящие события
const (
	EventSetName     = "set_name"
	EventCreateRoom  = "create_room"
	EventJoinRoom    = "join_room"
	EventTossCall    = "toss_call"
	EventTossProceed = "toss_proceed"
	EventTossDecide  = "toss_decide"
	EventPlay        = "play"
)

// исходящие события
const (
	EventConnected    = "connected"
	EventRoomList     = "room_list"
	EventRoomCreated  = "room_created"
	EventRoomReady    = "room_ready"
	EventJoinError    = "join_error"
	EventTossResult   = "toss_result"
	EventGameUpdate   = "game_update"
	EventOpponentLeft = "opponent_left"
)

const joinErrorText = "Room unavailable"

// Message - кадр websocket в обе стороны: {"type": ..., "payload": ...}
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type ConnectedPayload struct {
	ID string `json:"id"`
}

type RoomReadyPayload struct {
	Players  []string `json:"players"`
	Caller   string   `json:"caller"`
	CallerID string   `json:"callerId"`
}

type TossResultPayload struct {
	Number int    `json:"number"`
	Winner string `json:"winner"`
}

type OpponentLeftPayload struct {
	Name string `json:"name"`
}

// decodeString - payload должен быть JSON-строкой
func decodeString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// decodeBool - payload create_room; отсутствие значения считаем false
func decodeBool(raw json.RawMessage) (bool, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return false, true
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, false
	}
	return b, true
}

// decodeMove принимает скаляр (число, строку, bool) и возвращает его
// каноническую JSON-запись: 5 и 5.0 - один ход, 5 и "5" - разные
func decodeMove(raw json.RawMessage) (game.Move, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	switch v.(type) {
	case float64, string, bool:
	default:
		return "", false
	}

	canonical, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return game.Move(canonical), true
}

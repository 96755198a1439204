package websocket

import "encoding/json"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload,omitempty"`
}

// NewErrorMessage encodes an error notice for a client.
func NewErrorMessage(text string) []byte {
	return encode(Message{Action: "error", Payload: map[string]string{"message": text}})
}

// NewPongMessage encodes the reply to a client ping.
func NewPongMessage() []byte {
	return encode(Message{Action: "pong"})
}

func encode(msg Message) []byte {
	b, _ := json.Marshal(msg)
	return b
}

package gateway

import "encoding/json"

// Inbound event types received from WebSocket clients.
const (
	WSTypeJoin           = "join"
	WSTypeSendMessage    = "send_message"
	WSTypeSendPrivateMsg = "send_private_message"
	WSTypeTyping         = "typing"
	WSTypeStopTyping     = "stop_typing"
	WSTypeConnected      = "connected"
	WSTypeError          = "error"
)

// WSMessage is the wire frame exchanged with WebSocket clients.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// JoinPayload is the payload for registering a display identity.
// Avatar is an opaque emoji token or inline-encoded image blob.
type JoinPayload struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// MessagePayload is the payload for a public chat message.
type MessagePayload struct {
	Text string `json:"text"`
}

// PrivateMessagePayload is the payload for a private chat message.
type PrivateMessagePayload struct {
	RecipientID string `json:"recipient_id"`
	Text        string `json:"text"`
}

// TypingPayload is the payload for typing indicators. RecipientID is
// optional; when empty the indicator is room-wide.
type TypingPayload struct {
	Username    string `json:"username,omitempty"`
	RecipientID string `json:"recipient_id,omitempty"`
}

// ConnectedPayload carries the server-assigned connection id so the
// client can address private messages.
type ConnectedPayload struct {
	ConnectionID string `json:"connection_id"`
}

// HealthResponse is the API health check response.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the API error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

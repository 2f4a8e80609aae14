package presence

import "time"

// UserProfile is the joined identity bound to one live connection.
// Avatar is opaque to the server: an emoji token or an inline-encoded
// image payload, stored and echoed but never interpreted.
type UserProfile struct {
	ConnectionID string `json:"connection_id"`
	Username     string `json:"username"`
	Avatar       string `json:"avatar"`
}

// Message is a chat message stamped by the server at routing time.
// It is ephemeral: constructed, delivered, discarded.
type Message struct {
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	IsPrivate bool      `json:"is_private"`
	Recipient string    `json:"recipient,omitempty"`
}

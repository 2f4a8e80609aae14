package events

import (
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/Natek01/full-stack-chat-app/domain/presence"
)

// MessageBroadcastEvent is emitted when a chat message is routed to
// every connected client, sender included.
type MessageBroadcastEvent struct {
	Message presence.Message `json:"message"`
}

// PrivateMessageEvent is emitted when a chat message is routed to a
// single recipient plus the sender's own connection (sender echo).
type PrivateMessageEvent struct {
	Message     presence.Message `json:"message"`
	SenderID    string           `json:"sender_id"`
	RecipientID string           `json:"recipient_id"`
}

// TypingStartedEvent is emitted when a client starts typing.
// An empty RecipientID means a room-wide indicator delivered to every
// connection except the sender.
type TypingStartedEvent struct {
	Username    string `json:"username"`
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id,omitempty"`
}

// TypingStoppedEvent is emitted when a client stops typing, with the
// same targeting rule as TypingStartedEvent.
type TypingStoppedEvent struct {
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id,omitempty"`
}

// PresenceUpdatedEvent carries the full presence snapshot published
// after every registry mutation. No diffing; consumers reconcile
// against their previous view by connection id.
type PresenceUpdatedEvent struct {
	Users []presence.UserProfile `json:"users"`
}

// Event definitions for the relay domain.
var (
	MessageBroadcastV1 = helper.EventDefinition[MessageBroadcastEvent](
		"relay",
		"MessageBroadcast",
		"v1",
	)

	PrivateMessageV1 = helper.EventDefinition[PrivateMessageEvent](
		"relay",
		"PrivateMessage",
		"v1",
	)

	TypingStartedV1 = helper.EventDefinition[TypingStartedEvent](
		"relay",
		"TypingStarted",
		"v1",
	)

	TypingStoppedV1 = helper.EventDefinition[TypingStoppedEvent](
		"relay",
		"TypingStopped",
		"v1",
	)

	PresenceUpdatedV1 = helper.EventDefinition[PresenceUpdatedEvent](
		"relay",
		"PresenceUpdated",
		"v1",
	)
)

package relay

import (
	"time"

	"github.com/go-monolith/mono/pkg/types"

	"github.com/Natek01/full-stack-chat-app/domain/presence"
	"github.com/Natek01/full-stack-chat-app/modules/registry"
)

// Outbound receives the deliveries the router computes. The broadcast
// module implements it; deliveries are fire-and-forget with no
// acknowledgment or backpressure.
type Outbound interface {
	// MessageBroadcast delivers a public message to every connected
	// client, the sender included.
	MessageBroadcast(msg presence.Message)

	// PrivateMessage delivers a private message to exactly two
	// destinations: the recipient and the sender's own connection.
	PrivateMessage(msg presence.Message, senderID, recipientID string)

	// TypingStarted delivers a typing indicator. An empty recipientID
	// targets every connection except the sender.
	TypingStarted(username, senderID, recipientID string)

	// TypingStopped delivers a stop-typing indicator with the same
	// targeting rule as TypingStarted.
	TypingStopped(senderID, recipientID string)

	// PresenceUpdated delivers the full presence snapshot to every
	// connected client.
	PresenceUpdated(users []presence.UserProfile)
}

// Router classifies inbound client events and computes their
// destination sets. It consults and mutates the registry; registry
// mutations trigger a presence publish.
type Router struct {
	store  *registry.Store
	out    Outbound
	logger types.Logger
	now    func() time.Time
}

// NewRouter creates a new router over the given registry store.
func NewRouter(store *registry.Store, out Outbound, logger types.Logger) *Router {
	return &Router{
		store:  store,
		out:    out,
		logger: logger,
		now:    time.Now,
	}
}

// Join registers the profile for a connection and publishes a presence
// snapshot. Re-joining overwrites the previous profile. No validation
// is performed; empty and duplicate usernames are accepted.
func (r *Router) Join(connectionID, username, avatar string) {
	r.store.Register(connectionID, username, avatar)
	r.logger.Info("User joined", "connectionID", connectionID, "username", username)
	r.out.PresenceUpdated(r.store.List())
}

// BroadcastMessage stamps a public message and delivers it to all
// connections, including the sender. The sender identity comes from
// the registry, not from the payload; a never-joined sender yields an
// empty sender name.
func (r *Router) BroadcastMessage(connectionID, text string) {
	sender, ok := r.store.Get(connectionID)
	if !ok {
		r.logger.Warn("Broadcast from unregistered sender",
			"connectionID", connectionID, "error", ErrUnregisteredSender)
	}

	r.out.MessageBroadcast(presence.Message{
		Text:      text,
		Sender:    sender.Username,
		Timestamp: r.now(),
		IsPrivate: false,
	})
}

// PrivateMessage routes a message to one recipient plus the sender's
// own connection. An unknown recipient drops the message with zero
// deliveries; the returned error is for logging only and is never
// forwarded to the client.
func (r *Router) PrivateMessage(connectionID, recipientID, text string) error {
	recipient, ok := r.store.Get(recipientID)
	if !ok {
		return ErrUnknownRecipient
	}

	sender, ok := r.store.Get(connectionID)
	if !ok {
		r.logger.Warn("Private message from unregistered sender",
			"connectionID", connectionID, "error", ErrUnregisteredSender)
	}

	r.out.PrivateMessage(presence.Message{
		Text:      text,
		Sender:    sender.Username,
		Timestamp: r.now(),
		IsPrivate: true,
		Recipient: recipient.Username,
	}, connectionID, recipientID)
	return nil
}

// Typing forwards a typing indicator. With a recipient id it targets
// that connection only; without one it reaches every other connection.
// An unresolvable recipient drops the event.
func (r *Router) Typing(connectionID, username, recipientID string) {
	if recipientID != "" {
		if _, ok := r.store.Get(recipientID); !ok {
			r.logger.Debug("Typing indicator dropped",
				"recipientID", recipientID, "error", ErrUnknownRecipient)
			return
		}
	}
	r.out.TypingStarted(username, connectionID, recipientID)
}

// StopTyping forwards a stop-typing indicator with the same targeting
// rule as Typing.
func (r *Router) StopTyping(connectionID, recipientID string) {
	if recipientID != "" {
		if _, ok := r.store.Get(recipientID); !ok {
			r.logger.Debug("Stop-typing indicator dropped",
				"recipientID", recipientID, "error", ErrUnknownRecipient)
			return
		}
	}
	r.out.TypingStopped(connectionID, recipientID)
}

// Disconnect purges the registry entry for a connection and publishes
// a presence snapshot. Disconnecting a connection that never joined
// leaves the registry untouched and publishes nothing.
func (r *Router) Disconnect(connectionID string) {
	profile, removed := r.store.Remove(connectionID)
	if !removed {
		return
	}
	r.logger.Info("User disconnected",
		"connectionID", connectionID, "username", profile.Username)
	r.out.PresenceUpdated(r.store.List())
}

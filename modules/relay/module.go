package relay

import (
	"context"
	"log/slog"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"

	"github.com/Natek01/full-stack-chat-app/domain/presence"
	"github.com/Natek01/full-stack-chat-app/events"
	"github.com/Natek01/full-stack-chat-app/modules/registry"
)

// Module wraps the router and publishes its deliveries as typed events
// on the EventBus, where the broadcast module picks them up.
type Module struct {
	router   *Router
	eventBus mono.EventBus
	logger   types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module              = (*Module)(nil)
	_ mono.EventBusAwareModule = (*Module)(nil)
	_ mono.EventEmitterModule  = (*Module)(nil)
	_ Outbound                 = (*Module)(nil)
)

// NewModule creates a new relay module over the given registry store.
func NewModule(store *registry.Store, logger types.Logger) *Module {
	m := &Module{logger: logger}
	m.router = NewRouter(store, m, logger)
	return m
}

// Name returns the module name.
func (m *Module) Name() string {
	return "relay"
}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.MessageBroadcastV1.ToBase(),
		events.PrivateMessageV1.ToBase(),
		events.TypingStartedV1.ToBase(),
		events.TypingStoppedV1.ToBase(),
		events.PresenceUpdatedV1.ToBase(),
	}
}

// Start initializes the module.
func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Relay module started")
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Relay module stopped")
	return nil
}

// Router returns the message router for the transport layer.
func (m *Module) Router() *Router {
	return m.router
}

// Outbound implementation. Publishing is fire-and-forget: a failed
// publish loses the delivery, consistent with best-effort semantics.

// MessageBroadcast publishes a public message delivery.
func (m *Module) MessageBroadcast(msg presence.Message) {
	err := events.MessageBroadcastV1.Publish(m.eventBus, events.MessageBroadcastEvent{
		Message: msg,
	}, nil)
	if err != nil {
		slog.Warn("Failed to publish MessageBroadcast event", "error", err)
	}
}

// PrivateMessage publishes a private message delivery.
func (m *Module) PrivateMessage(msg presence.Message, senderID, recipientID string) {
	err := events.PrivateMessageV1.Publish(m.eventBus, events.PrivateMessageEvent{
		Message:     msg,
		SenderID:    senderID,
		RecipientID: recipientID,
	}, nil)
	if err != nil {
		slog.Warn("Failed to publish PrivateMessage event", "error", err)
	}
}

// TypingStarted publishes a typing indicator delivery.
func (m *Module) TypingStarted(username, senderID, recipientID string) {
	err := events.TypingStartedV1.Publish(m.eventBus, events.TypingStartedEvent{
		Username:    username,
		SenderID:    senderID,
		RecipientID: recipientID,
	}, nil)
	if err != nil {
		slog.Warn("Failed to publish TypingStarted event", "error", err)
	}
}

// TypingStopped publishes a stop-typing indicator delivery.
func (m *Module) TypingStopped(senderID, recipientID string) {
	err := events.TypingStoppedV1.Publish(m.eventBus, events.TypingStoppedEvent{
		SenderID:    senderID,
		RecipientID: recipientID,
	}, nil)
	if err != nil {
		slog.Warn("Failed to publish TypingStopped event", "error", err)
	}
}

// PresenceUpdated publishes the full presence snapshot.
func (m *Module) PresenceUpdated(users []presence.UserProfile) {
	err := events.PresenceUpdatedV1.Publish(m.eventBus, events.PresenceUpdatedEvent{
		Users: users,
	}, nil)
	if err != nil {
		slog.Warn("Failed to publish PresenceUpdated event", "error", err)
	}
}

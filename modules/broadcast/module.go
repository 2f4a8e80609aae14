package broadcast

import (
	"context"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/Natek01/full-stack-chat-app/events"
)

// Outbound event types delivered to WebSocket clients.
const (
	WSTypeReceiveMessage        = "receive_message"
	WSTypeReceivePrivateMessage = "receive_private_message"
	WSTypeUserTyping            = "user_typing"
	WSTypeUserStoppedTyping     = "user_stopped_typing"
	WSTypeUpdateUsers           = "update_users"
)

// TypingPayload is the payload for typing indicator events.
type TypingPayload struct {
	Username string `json:"username"`
}

// Module is an EventConsumerModule that executes the delivery scopes
// the relay computes, fanning events out to WebSocket clients.
type Module struct {
	hub       *Hub
	cancelHub context.CancelFunc
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new broadcast module.
func NewModule() *Module {
	return &Module{
		hub: NewHub(),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "broadcast"
}

// Start initializes the module and starts the hub.
func (m *Module) Start(_ context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelHub = cancel
	go m.hub.Run(ctx)
	log.Println("[broadcast] Module started - WebSocket hub running")
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	clientCount := m.hub.ClientCount()
	if m.cancelHub != nil {
		m.cancelHub()
		m.hub.Wait() // Wait for hub to finish
	}
	log.Printf("[broadcast] Module stopped - %d clients were connected", clientCount)
	return nil
}

// Health returns the health status.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"connected_clients": m.hub.ClientCount(),
		},
	}
}

// RegisterEventConsumers registers event handlers.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(
		registry, events.MessageBroadcastV1, m.handleMessageBroadcast, m,
	); err != nil {
		return fmt.Errorf("failed to register MessageBroadcast consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.PrivateMessageV1, m.handlePrivateMessage, m,
	); err != nil {
		return fmt.Errorf("failed to register PrivateMessage consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.TypingStartedV1, m.handleTypingStarted, m,
	); err != nil {
		return fmt.Errorf("failed to register TypingStarted consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.TypingStoppedV1, m.handleTypingStopped, m,
	); err != nil {
		return fmt.Errorf("failed to register TypingStopped consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.PresenceUpdatedV1, m.handlePresenceUpdated, m,
	); err != nil {
		return fmt.Errorf("failed to register PresenceUpdated consumer: %w", err)
	}

	log.Println("[broadcast] Registered event consumers: MessageBroadcast, PrivateMessage, TypingStarted, TypingStopped, PresenceUpdated")
	return nil
}

// Event handlers

func (m *Module) handleMessageBroadcast(_ context.Context, event events.MessageBroadcastEvent, _ *mono.Msg) error {
	log.Printf("[broadcast] Delivering message from %q to all clients", event.Message.Sender)

	// Echo-inclusive: the sender receives its own message through the
	// same delivery as everyone else.
	m.hub.Deliver(&Delivery{
		Type:    WSTypeReceiveMessage,
		Payload: event.Message,
	})

	return nil
}

func (m *Module) handlePrivateMessage(_ context.Context, event events.PrivateMessageEvent, _ *mono.Msg) error {
	log.Printf("[broadcast] Delivering private message to %s (+ sender echo)", event.RecipientID)

	targets := []string{event.RecipientID, event.SenderID}
	if event.RecipientID == event.SenderID {
		targets = targets[:1]
	}

	m.hub.Deliver(&Delivery{
		Type:    WSTypeReceivePrivateMessage,
		Payload: event.Message,
		Targets: targets,
	})

	return nil
}

func (m *Module) handleTypingStarted(_ context.Context, event events.TypingStartedEvent, _ *mono.Msg) error {
	m.hub.Deliver(m.typingDelivery(WSTypeUserTyping, TypingPayload{Username: event.Username}, event.SenderID, event.RecipientID))
	return nil
}

func (m *Module) handleTypingStopped(_ context.Context, event events.TypingStoppedEvent, _ *mono.Msg) error {
	m.hub.Deliver(m.typingDelivery(WSTypeUserStoppedTyping, nil, event.SenderID, event.RecipientID))
	return nil
}

// typingDelivery maps a typing event to its scope: targeted when a
// recipient id is set, otherwise everyone except the sender.
func (m *Module) typingDelivery(wsType string, payload any, senderID, recipientID string) *Delivery {
	if recipientID != "" {
		return &Delivery{
			Type:    wsType,
			Payload: payload,
			Targets: []string{recipientID},
		}
	}
	return &Delivery{
		Type:    wsType,
		Payload: payload,
		Exclude: senderID,
	}
}

func (m *Module) handlePresenceUpdated(_ context.Context, event events.PresenceUpdatedEvent, _ *mono.Msg) error {
	log.Printf("[broadcast] Delivering presence snapshot (%d users)", len(event.Users))

	m.hub.Deliver(&Delivery{
		Type:    WSTypeUpdateUsers,
		Payload: event.Users,
	})

	return nil
}

// Hub returns the WebSocket hub for the gateway module to use.
func (m *Module) Hub() *Hub {
	return m.hub
}

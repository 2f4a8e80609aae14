package broadcast

import (
	"context"
	"testing"

	"github.com/Natek01/full-stack-chat-app/domain/presence"
	"github.com/Natek01/full-stack-chat-app/events"
)

// drainDelivery pops the next queued delivery; the deliver channel is
// buffered so handlers never block in these tests.
func drainDelivery(t *testing.T, hub *Hub) *Delivery {
	t.Helper()
	select {
	case d := <-hub.deliver:
		return d
	default:
		t.Fatal("no delivery queued")
		return nil
	}
}

func TestModule_HandleMessageBroadcast(t *testing.T) {
	m := NewModule()

	err := m.handleMessageBroadcast(context.Background(), events.MessageBroadcastEvent{
		Message: presence.Message{Text: "hi", Sender: "alice"},
	}, nil)
	if err != nil {
		t.Fatalf("handleMessageBroadcast() error: %v", err)
	}

	d := drainDelivery(t, m.hub)
	if d.Type != WSTypeReceiveMessage {
		t.Errorf("Type = %q, want %q", d.Type, WSTypeReceiveMessage)
	}
	if d.Targets != nil || d.Exclude != "" {
		t.Errorf("broadcast must reach everyone, got Targets=%v Exclude=%q", d.Targets, d.Exclude)
	}
}

func TestModule_HandlePrivateMessage(t *testing.T) {
	m := NewModule()

	err := m.handlePrivateMessage(context.Background(), events.PrivateMessageEvent{
		Message:     presence.Message{Text: "psst", IsPrivate: true},
		SenderID:    "conn-a",
		RecipientID: "conn-b",
	}, nil)
	if err != nil {
		t.Fatalf("handlePrivateMessage() error: %v", err)
	}

	d := drainDelivery(t, m.hub)
	if len(d.Targets) != 2 {
		t.Fatalf("Targets length = %d, want 2 (recipient + sender echo)", len(d.Targets))
	}
	if d.Targets[0] != "conn-b" || d.Targets[1] != "conn-a" {
		t.Errorf("Targets = %v", d.Targets)
	}
}

func TestModule_HandlePrivateMessage_SelfMessage(t *testing.T) {
	m := NewModule()

	// Messaging yourself must not produce a duplicate delivery.
	err := m.handlePrivateMessage(context.Background(), events.PrivateMessageEvent{
		Message:     presence.Message{Text: "note to self", IsPrivate: true},
		SenderID:    "conn-a",
		RecipientID: "conn-a",
	}, nil)
	if err != nil {
		t.Fatalf("handlePrivateMessage() error: %v", err)
	}

	d := drainDelivery(t, m.hub)
	if len(d.Targets) != 1 {
		t.Errorf("Targets length = %d, want 1", len(d.Targets))
	}
}

func TestModule_TypingDelivery_Scopes(t *testing.T) {
	m := NewModule()

	tests := []struct {
		name        string
		recipientID string
		wantTargets []string
		wantExclude string
	}{
		{
			name:        "targeted indicator",
			recipientID: "conn-b",
			wantTargets: []string{"conn-b"},
		},
		{
			name:        "room-wide indicator excludes sender",
			recipientID: "",
			wantExclude: "conn-a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := m.typingDelivery(WSTypeUserTyping, TypingPayload{Username: "alice"}, "conn-a", tt.recipientID)

			if len(d.Targets) != len(tt.wantTargets) {
				t.Fatalf("Targets = %v, want %v", d.Targets, tt.wantTargets)
			}
			for i := range tt.wantTargets {
				if d.Targets[i] != tt.wantTargets[i] {
					t.Errorf("Targets[%d] = %q, want %q", i, d.Targets[i], tt.wantTargets[i])
				}
			}
			if d.Exclude != tt.wantExclude {
				t.Errorf("Exclude = %q, want %q", d.Exclude, tt.wantExclude)
			}
		})
	}
}

func TestModule_HandlePresenceUpdated(t *testing.T) {
	m := NewModule()

	err := m.handlePresenceUpdated(context.Background(), events.PresenceUpdatedEvent{
		Users: []presence.UserProfile{
			{ConnectionID: "conn-a", Username: "alice", Avatar: "👤"},
		},
	}, nil)
	if err != nil {
		t.Fatalf("handlePresenceUpdated() error: %v", err)
	}

	d := drainDelivery(t, m.hub)
	if d.Type != WSTypeUpdateUsers {
		t.Errorf("Type = %q, want %q", d.Type, WSTypeUpdateUsers)
	}
	if d.Targets != nil {
		t.Error("presence snapshot must go to all connections")
	}
}

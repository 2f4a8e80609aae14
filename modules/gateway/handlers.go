package gateway

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	"github.com/Natek01/full-stack-chat-app/modules/broadcast"
	"github.com/Natek01/full-stack-chat-app/modules/relay"
)

// handleWebSocket handles WebSocket connections at /ws.
func (m *Module) handleWebSocket(c *websocket.Conn) {
	connectionID := uuid.New().String()

	client := &broadcast.Client{
		ID:   connectionID,
		Conn: c,
	}

	m.hub.Register(client)
	defer func() {
		// Synchronous cleanup: drop the connection from the hub, then
		// purge the registry entry, which publishes the new presence
		// snapshot to the remaining clients.
		m.hub.Unregister(client)
		m.router.Disconnect(connectionID)
		m.logger.Info("WebSocket client disconnected", "connectionID", connectionID)
	}()

	m.logger.Info("WebSocket client connected", "connectionID", connectionID)

	welcome := WSMessage{Type: WSTypeConnected}
	if payload, err := json.Marshal(ConnectedPayload{ConnectionID: connectionID}); err == nil {
		welcome.Payload = payload
	}
	if err := c.WriteJSON(welcome); err != nil {
		m.logger.Error("Failed to send welcome", "connectionID", connectionID, "error", err)
		return
	}

	for {
		_, msgBytes, err := c.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				m.logger.Info("Client closed connection", "connectionID", connectionID)
			} else {
				m.logger.Warn("Read error", "connectionID", connectionID, "error", err)
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			m.sendError(c, "Invalid message format")
			continue
		}

		m.dispatch(c, connectionID, msg)
	}
}

// dispatch routes one inbound frame to the relay. Malformed payloads
// inside a well-formed frame follow the relay's silent-drop policy:
// missing fields pass through as zero values, never as client errors.
func (m *Module) dispatch(c *websocket.Conn, connectionID string, msg WSMessage) {
	switch msg.Type {
	case WSTypeJoin:
		var p JoinPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			m.sendError(c, "Invalid join payload")
			return
		}
		m.router.Join(connectionID, p.Username, p.Avatar)

	case WSTypeSendMessage:
		var p MessagePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			m.sendError(c, "Invalid message payload")
			return
		}
		m.router.BroadcastMessage(connectionID, p.Text)

	case WSTypeSendPrivateMsg:
		var p PrivateMessagePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			m.sendError(c, "Invalid private message payload")
			return
		}
		if err := m.router.PrivateMessage(connectionID, p.RecipientID, p.Text); err != nil {
			// Silent drop: logged here, never returned to the sender.
			if errors.Is(err, relay.ErrUnknownRecipient) {
				m.logger.Warn("Private message dropped",
					"connectionID", connectionID, "recipientID", p.RecipientID)
			}
		}

	case WSTypeTyping:
		var p TypingPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			m.sendError(c, "Invalid typing payload")
			return
		}
		m.router.Typing(connectionID, p.Username, p.RecipientID)

	case WSTypeStopTyping:
		var p TypingPayload
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &p); err != nil {
				m.sendError(c, "Invalid stop_typing payload")
				return
			}
		}
		m.router.StopTyping(connectionID, p.RecipientID)

	default:
		m.sendError(c, "Unknown message type: "+msg.Type)
	}
}

func (m *Module) sendError(c *websocket.Conn, message string) {
	response := WSMessage{
		Type:  WSTypeError,
		Error: message,
	}
	_ = c.WriteJSON(response)
}

package websocket

import (
	"encoding/json"
	"time"

	"mingle/pkg/logger"
)

const (
	MessageTypePing          = "ping"
	MessageTypePong          = "pong"
	MessageTypeTyping        = "typing"
	MessageTypeJoinChatRoom  = "join_chat_room"
	MessageTypeLeaveChatRoom = "leave_chat_room"
	MessageTypeNewMessage    = "new_message"
	MessageTypeChatListEvent = "chat_list_update"
	MessageTypeUnreadTotal   = "unread_total"
	MessageTypeError         = "error"
)

type WSMessage struct {
	Type      string      `json:"type"`
	ChatID    string      `json:"chat_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// HandleClientMessage processes an incoming client frame. Messages that
// mutate server state (sending, marking read) go through the REST API; the
// socket only carries presence-style traffic upstream.
func (m *Manager) HandleClientMessage(client *Client, messageBytes []byte) {
	var wsMessage WSMessage

	if err := json.Unmarshal(messageBytes, &wsMessage); err != nil {
		logger.Warn("WebSocket: invalid frame from %s: %v", client.UserID, err)
		m.sendErrorToClient(client, "Invalid message format")
		return
	}

	switch wsMessage.Type {
	case MessageTypePing:
		m.sendToClient(client, WSMessage{Type: MessageTypePong})

	case MessageTypeJoinChatRoom:
		if wsMessage.ChatID == "" {
			m.sendErrorToClient(client, "Missing chat_id")
			return
		}
		m.AddClientToChatRoom(wsMessage.ChatID, client.UserID)
		client.ActiveChatRoom = wsMessage.ChatID
		logger.Debug("WebSocket: %s joined chat room %s", client.UserID, wsMessage.ChatID)

	case MessageTypeLeaveChatRoom:
		if wsMessage.ChatID == "" {
			m.sendErrorToClient(client, "Missing chat_id")
			return
		}
		m.RemoveClientFromChatRoom(wsMessage.ChatID, client.UserID)
		if client.ActiveChatRoom == wsMessage.ChatID {
			client.ActiveChatRoom = ""
		}

	case MessageTypeTyping:
		if wsMessage.ChatID == "" {
			return
		}
		payload, _ := json.Marshal(WSMessage{
			Type:      MessageTypeTyping,
			ChatID:    wsMessage.ChatID,
			Data:      map[string]interface{}{"user_id": client.UserID},
			Timestamp: time.Now().Format(time.RFC3339),
		})
		m.SendToChatRoom(wsMessage.ChatID, payload, client.UserID)

	default:
		logger.Debug("WebSocket: unknown message type %q from %s", wsMessage.Type, client.UserID)
	}
}

func (m *Manager) sendToClient(client *Client, message WSMessage) {
	if message.Timestamp == "" {
		message.Timestamp = time.Now().Format(time.RFC3339)
	}
	payload, err := json.Marshal(message)
	if err != nil {
		return
	}

	select {
	case client.Send <- payload:
	default:
		logger.Warn("Dropping WebSocket reply for slow client %s", client.UserID)
	}
}

func (m *Manager) sendErrorToClient(client *Client, errorMsg string) {
	m.sendToClient(client, WSMessage{
		Type: MessageTypeError,
		Data: map[string]string{"message": errorMsg},
	})
}

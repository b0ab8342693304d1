package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"mingle/pkg/logger"
)

// Client represents one connected device for a user.
type Client struct {
	UserID         string
	Conn           *websocket.Conn
	Send           chan []byte
	ActiveChatRoom string
}

// Manager tracks connected clients and chat room membership.
type Manager struct {
	clients    map[string]*Client
	chatRooms  map[string]map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		chatRooms:  make(map[string]map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Info("WebSocket client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client.UserID]; ok {
					delete(m.clients, client.UserID)
					close(client.Send)
				}
				for chatID, room := range m.chatRooms {
					delete(room, client.UserID)
					if len(room) == 0 {
						delete(m.chatRooms, chatID)
					}
				}
				m.mutex.Unlock()
				logger.Info("WebSocket client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// SendToUser delivers a payload to a specific connected user, if online.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if !ok {
		return
	}

	select {
	case client.Send <- message:
	default:
		logger.Warn("Dropping WebSocket message for slow client %s", userID)
	}
}

// SendToChatRoom delivers a payload to every client currently in the chat
// room, optionally excluding one user (typically the sender).
func (m *Manager) SendToChatRoom(chatID string, message []byte, excludeUserID string) {
	m.mutex.RLock()
	room := m.chatRooms[chatID]
	clients := make([]*Client, 0, len(room))
	for userID, client := range room {
		if userID == excludeUserID {
			continue
		}
		clients = append(clients, client)
	}
	m.mutex.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- message:
		default:
			logger.Warn("Dropping chat room message for slow client %s", client.UserID)
		}
	}
}

func (m *Manager) AddClientToChatRoom(chatID, userID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	client, ok := m.clients[userID]
	if !ok {
		return
	}
	if m.chatRooms[chatID] == nil {
		m.chatRooms[chatID] = make(map[string]*Client)
	}
	m.chatRooms[chatID][userID] = client
}

func (m *Manager) RemoveClientFromChatRoom(chatID, userID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	room, ok := m.chatRooms[chatID]
	if !ok {
		return
	}
	delete(room, userID)
	if len(room) == 0 {
		delete(m.chatRooms, chatID)
	}
}

// IsUserInChatRoom reports whether the user currently has the chat open.
func (m *Manager) IsUserInChatRoom(chatID, userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	room, ok := m.chatRooms[chatID]
	if !ok {
		return false
	}
	_, in := room[userID]
	return in
}

// ReadPump reads messages from the connection until it closes.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket read error for %s: %v", c.UserID, err)
			}
			break
		}

		m.HandleClientMessage(c, message)
	}
}

// WritePump drains the send channel into the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Error("WebSocket write error for %s: %v", c.UserID, err)
			return
		}
	}
}

package usecase

import (
	"context"
	"encoding/json"
	"time"

	"mingle/internal/domain/entity"
	"mingle/internal/domain/repository"
	ws "mingle/internal/infrastructure/websocket"
	"mingle/pkg/errors"
	"mingle/pkg/logger"
)

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	wsManager   *ws.Manager
	notifier    Notifier
	rateLimiter RateLimiter
}

// RateLimiter is the slice of the token bucket limiter the chat flow needs.
type RateLimiter interface {
	Allow(userID, action string) (bool, time.Duration)
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	wsManager *ws.Manager,
	notifier Notifier,
	rateLimiter RateLimiter,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		wsManager:   wsManager,
		notifier:    notifier,
		rateLimiter: rateLimiter,
	}
}

type SendMessageInput struct {
	ChatID string
	Text   string
}

type ChatResponse struct {
	*entity.Chat
	UnreadCount int `json:"unread_count"`
}

type MessageResponse struct {
	*entity.Message
	Sender *entity.User `json:"sender,omitempty"`
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, userID string, input SendMessageInput) (*MessageResponse, error) {
	if uc.rateLimiter != nil {
		allowed, waitTime := uc.rateLimiter.Allow(userID, "send_message")
		if !allowed {
			logger.Warn("SendMessage rate limited: user %s must wait %v", userID, waitTime)
			return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before sending another message", waitTime)
		}
	}

	chat, err := uc.chatRepo.GetByID(ctx, input.ChatID)
	if err != nil {
		return nil, err
	}

	if !containsString(chat.Participants, userID) {
		return nil, errors.Forbidden("User is not a participant in this chat", nil)
	}

	sender, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("Sender", err)
	}

	message := &entity.Message{
		ChatID:     input.ChatID,
		SenderID:   userID,
		SenderName: sender.DisplayName,
		Text:       input.Text,
		Type:       "text",
		CreatedAt:  time.Now(),
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		logger.Error("SendMessage: failed to create message for chat %s: %v", input.ChatID, err)
		return nil, err
	}

	if err := uc.chatRepo.UpdatePreview(ctx, input.ChatID, message.Text, message.CreatedAt); err != nil {
		logger.Error("SendMessage: failed to update preview for chat %s: %v", input.ChatID, err)
	}

	// Re-read so counters fan out to the participant list as stored, not
	// the copy read before the append.
	if fresh, err := uc.chatRepo.GetByID(ctx, input.ChatID); err == nil {
		chat = fresh
	}
	for _, participantID := range chat.Participants {
		if participantID == userID {
			continue
		}
		if err := uc.chatRepo.IncrementUnread(ctx, input.ChatID, participantID); err != nil {
			logger.Error("SendMessage: failed to increment unread for %s/%s: %v", input.ChatID, participantID, err)
			continue
		}
		uc.PublishUnreadTotal(ctx, participantID)
	}

	uc.BroadcastMessage(ctx, chat, message)
	uc.pushNotification(ctx, chat, message)

	return &MessageResponse{Message: message, Sender: sender}, nil
}

// BroadcastMessage fans a stored message out over the websocket: a
// new_message event to clients with the chat open and a chat_list_update
// to every other participant for list previews.
func (uc *ChatUseCase) BroadcastMessage(ctx context.Context, chat *entity.Chat, message *entity.Message) {
	if uc.wsManager == nil {
		return
	}

	notification, _ := json.Marshal(ws.WSMessage{
		Type:      ws.MessageTypeNewMessage,
		ChatID:    chat.ID,
		Data:      map[string]interface{}{"message": message},
		Timestamp: time.Now().Format(time.RFC3339),
	})
	uc.wsManager.SendToChatRoom(chat.ID, notification, message.SenderID)

	listUpdate, _ := json.Marshal(ws.WSMessage{
		Type:   ws.MessageTypeChatListEvent,
		ChatID: chat.ID,
		Data: map[string]interface{}{
			"last_message":      message.Text,
			"last_message_time": message.CreatedAt.Format(time.RFC3339),
			"sender_id":         message.SenderID,
			"sender_name":       message.SenderName,
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})
	for _, participantID := range chat.Participants {
		if participantID != message.SenderID {
			uc.wsManager.SendToUser(participantID, listUpdate)
		}
	}
}

func (uc *ChatUseCase) pushNotification(ctx context.Context, chat *entity.Chat, message *entity.Message) {
	if uc.notifier == nil {
		return
	}

	var tokens []string
	for _, participantID := range chat.Participants {
		if participantID == message.SenderID {
			continue
		}
		// No push for a user who has the chat open on screen.
		if uc.wsManager != nil && uc.wsManager.IsUserInChatRoom(chat.ID, participantID) {
			continue
		}
		user, err := uc.userRepo.GetByID(ctx, participantID)
		if err != nil || user.ExpoToken == "" {
			continue
		}
		tokens = append(tokens, user.ExpoToken)
	}
	if len(tokens) == 0 {
		return
	}

	title := chat.EventTitle
	if message.SenderName != "" {
		title = "Nouveau message de " + message.SenderName
	}
	uc.notifier.Notify(tokens, title, message.Text)
}

func (uc *ChatUseCase) GetUserChats(ctx context.Context, userID string) ([]*ChatResponse, error) {
	chats, err := uc.chatRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var responses []*ChatResponse
	for _, chat := range chats {
		count, err := uc.chatRepo.GetUnread(ctx, chat.ID, userID)
		if err != nil {
			logger.Warn("GetUserChats: failed to read unread counter for %s/%s: %v", chat.ID, userID, err)
		}
		responses = append(responses, &ChatResponse{Chat: chat, UnreadCount: count})
	}

	return responses, nil
}

func (uc *ChatUseCase) GetChatMessages(ctx context.Context, userID, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}

	if !containsString(chat.Participants, userID) {
		return nil, 0, errors.Forbidden("User is not a participant in this chat", nil)
	}

	return uc.chatRepo.ListMessages(ctx, chatID, limit, offset)
}

// MarkChatAsRead zeroes the user's unread counter for the chat. Called
// when the chat detail screen gains focus, regardless of the prior value.
func (uc *ChatUseCase) MarkChatAsRead(ctx context.Context, userID, chatID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}

	if !containsString(chat.Participants, userID) {
		return errors.Forbidden("User is not a participant in this chat", nil)
	}

	if err := uc.chatRepo.SetUnread(ctx, chatID, userID, 0); err != nil {
		return err
	}

	uc.PublishUnreadTotal(ctx, userID)
	return nil
}

// DeleteChat removes the chat document only; messages and counters in the
// subcollections are orphaned.
func (uc *ChatUseCase) DeleteChat(ctx context.Context, userID, chatID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}

	if !containsString(chat.Participants, userID) {
		return errors.Forbidden("User is not a participant in this chat", nil)
	}

	return uc.chatRepo.Delete(ctx, chatID)
}

// GetTotalUnread sums the per-chat counters over exactly the chats where
// the user is currently a participant. A chat the user has left no longer
// contributes, even if its counter document still exists.
func (uc *ChatUseCase) GetTotalUnread(ctx context.Context, userID string) (int, error) {
	chats, err := uc.chatRepo.ListByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, chat := range chats {
		count, err := uc.chatRepo.GetUnread(ctx, chat.ID, userID)
		if err != nil {
			logger.Warn("GetTotalUnread: failed to read unread counter for %s/%s: %v", chat.ID, userID, err)
			continue
		}
		total += count
	}

	return total, nil
}

// PublishUnreadTotal recomputes the user's badge total and pushes it over
// the websocket. This is the server-side analog of the client's
// subscription fan-out over the unread counter documents.
func (uc *ChatUseCase) PublishUnreadTotal(ctx context.Context, userID string) {
	if uc.wsManager == nil {
		return
	}

	total, err := uc.GetTotalUnread(ctx, userID)
	if err != nil {
		logger.Warn("PublishUnreadTotal: failed to compute total for %s: %v", userID, err)
		return
	}

	payload, _ := json.Marshal(ws.WSMessage{
		Type:      ws.MessageTypeUnreadTotal,
		Data:      map[string]int{"total": total},
		Timestamp: time.Now().Format(time.RFC3339),
	})
	uc.wsManager.SendToUser(userID, payload)
}

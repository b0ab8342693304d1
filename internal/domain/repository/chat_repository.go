package repository

import (
	"context"
	"time"

	"mingle/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error)
	AddParticipant(ctx context.Context, chatID, userID string) error
	UpdatePreview(ctx context.Context, chatID, lastMessage string, at time.Time) error
	Delete(ctx context.Context, id string) error

	// Message methods
	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error)

	// Unread counters, one document per (chat, user)
	GetUnread(ctx context.Context, chatID, userID string) (int, error)
	SetUnread(ctx context.Context, chatID, userID string, count int) error
	IncrementUnread(ctx context.Context, chatID, userID string) error

	// Welcome flags, one document per (chat, user)
	IsWelcomed(ctx context.Context, chatID, userID string) (bool, error)
	SetWelcomed(ctx context.Context, chatID, userID string) error
}

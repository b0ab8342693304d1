package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"mingle/internal/domain/entity"
	"mingle/internal/domain/repository"
	"mingle/pkg/errors"
	"mingle/pkg/logger"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	if chat.ID == "" {
		chat.ID = chat.EventID
	}

	now := time.Now()
	chat.CreatedAt = now
	chat.UpdatedAt = now

	_, err := r.client.Collection("chats").Doc(chat.ID).Set(ctx, chat)
	if err != nil {
		return errors.Internal("Failed to create chat", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.client.Collection("chats").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat", err)
		}
		return nil, errors.Internal("Failed to get chat", err)
	}

	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.Internal("Failed to parse chat data", err)
	}
	chat.ID = doc.Ref.ID

	return &chat, nil
}

func (r *firestoreChatRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error) {
	query := r.client.Collection("chats").
		Where("participants", "array-contains", userID).
		OrderBy("updatedAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching chats for user %s: %v", userID, err)
		return nil, errors.Internal("Failed to fetch chats", err)
	}

	var chats []*entity.Chat
	for _, doc := range docs {
		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			logger.Warn("Skipping malformed chat document %s: %v", doc.Ref.ID, err)
			continue
		}
		chat.ID = doc.Ref.ID
		chats = append(chats, &chat)
	}

	return chats, nil
}

func (r *firestoreChatRepository) AddParticipant(ctx context.Context, chatID, userID string) error {
	_, err := r.client.Collection("chats").Doc(chatID).Update(ctx, []firestore.Update{
		{Path: "participants", Value: firestore.ArrayUnion(userID)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Chat", err)
		}
		return errors.Internal("Failed to add chat participant", err)
	}
	return nil
}

func (r *firestoreChatRepository) UpdatePreview(ctx context.Context, chatID, lastMessage string, at time.Time) error {
	_, err := r.client.Collection("chats").Doc(chatID).Update(ctx, []firestore.Update{
		{Path: "lastMessage", Value: lastMessage},
		{Path: "lastMessageTime", Value: at},
		{Path: "updatedAt", Value: at},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Chat", err)
		}
		return errors.Internal("Failed to update chat preview", err)
	}
	return nil
}

// Delete removes the chat document only. Messages, unread counters and
// welcome flags in the subcollections are left orphaned.
func (r *firestoreChatRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("chats").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete chat", err)
	}
	return nil
}

func (r *firestoreChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("chats").Doc(message.ChatID).
		Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.client.Collection("chats").Doc(chatID).
		Collection("messages").OrderBy("createdAt", firestore.Asc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching messages for chat %s: %v", chatID, err)
		return nil, 0, errors.Internal("Failed to fetch messages", err)
	}
	total := int64(len(allDocs))

	start := offset
	end := len(allDocs)
	if limit > 0 {
		end = start + limit
		if end > len(allDocs) {
			end = len(allDocs)
		}
	}
	if start > len(allDocs) {
		start = len(allDocs)
	}

	var messages []*entity.Message
	for i := start; i < end; i++ {
		var message entity.Message
		if err := allDocs[i].DataTo(&message); err != nil {
			return nil, 0, errors.Internal("Failed to parse message data", err)
		}
		message.ID = allDocs[i].Ref.ID
		messages = append(messages, &message)
	}

	return messages, total, nil
}

func (r *firestoreChatRepository) unreadRef(chatID, userID string) *firestore.DocumentRef {
	return r.client.Collection("chats").Doc(chatID).Collection("unreads").Doc(userID)
}

func (r *firestoreChatRepository) GetUnread(ctx context.Context, chatID, userID string) (int, error) {
	doc, err := r.unreadRef(chatID, userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return 0, nil
		}
		return 0, errors.Internal("Failed to get unread counter", err)
	}

	var counter entity.UnreadCounter
	if err := doc.DataTo(&counter); err != nil {
		return 0, errors.Internal("Failed to parse unread counter", err)
	}

	return counter.Count, nil
}

func (r *firestoreChatRepository) SetUnread(ctx context.Context, chatID, userID string, count int) error {
	_, err := r.unreadRef(chatID, userID).Set(ctx, map[string]interface{}{
		"count": count,
	}, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to set unread counter", err)
	}
	return nil
}

func (r *firestoreChatRepository) IncrementUnread(ctx context.Context, chatID, userID string) error {
	// Merge set with a numeric increment creates the document with count=1
	// when it does not exist yet.
	_, err := r.unreadRef(chatID, userID).Set(ctx, map[string]interface{}{
		"count": firestore.Increment(1),
	}, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to increment unread counter", err)
	}
	return nil
}

func (r *firestoreChatRepository) welcomeRef(chatID, userID string) *firestore.DocumentRef {
	return r.client.Collection("chats").Doc(chatID).Collection("systemWelcome").Doc(userID)
}

func (r *firestoreChatRepository) IsWelcomed(ctx context.Context, chatID, userID string) (bool, error) {
	doc, err := r.welcomeRef(chatID, userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errors.Internal("Failed to get welcome flag", err)
	}

	var flag entity.WelcomeFlag
	if err := doc.DataTo(&flag); err != nil {
		return false, errors.Internal("Failed to parse welcome flag", err)
	}

	return flag.Welcomed, nil
}

func (r *firestoreChatRepository) SetWelcomed(ctx context.Context, chatID, userID string) error {
	_, err := r.welcomeRef(chatID, userID).Set(ctx, entity.WelcomeFlag{Welcomed: true})
	if err != nil {
		return errors.Internal("Failed to set welcome flag", err)
	}
	return nil
}

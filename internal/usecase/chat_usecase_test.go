package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mingle/internal/domain/entity"
	"mingle/pkg/errors"
)

func seedChat(t *testing.T, repo *fakeChatRepo, id string, participants ...string) *entity.Chat {
	t.Helper()
	chat := &entity.Chat{
		ID:           id,
		EventID:      id,
		EventTitle:   "Soirée Jazz",
		Participants: participants,
	}
	require.NoError(t, repo.Create(context.Background(), chat))
	return chat
}

func TestSendMessageFanOut(t *testing.T) {
	userRepo := newFakeUserRepo(
		&entity.User{ID: "u1", DisplayName: "Alice"},
		&entity.User{ID: "u2", DisplayName: "Bob", ExpoToken: "ExponentPushToken[bob]"},
		&entity.User{ID: "u3", DisplayName: "Chloé"},
	)
	chatRepo := newFakeChatRepo()
	seedChat(t, chatRepo, "e1", "u1", "u2", "u3")

	notifier := &fakeNotifier{}
	uc := NewChatUseCase(chatRepo, userRepo, nil, notifier, allowAllLimiter{})
	ctx := context.Background()

	msg, err := uc.SendMessage(ctx, "u1", SendMessageInput{ChatID: "e1", Text: "On se retrouve où ?"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", msg.SenderName)
	assert.Equal(t, "text", msg.Type)

	// Recipients gain one unread each, the sender none
	u1, _ := chatRepo.GetUnread(ctx, "e1", "u1")
	u2, _ := chatRepo.GetUnread(ctx, "e1", "u2")
	u3, _ := chatRepo.GetUnread(ctx, "e1", "u3")
	assert.Equal(t, 0, u1)
	assert.Equal(t, 1, u2)
	assert.Equal(t, 1, u3)

	chat, _ := chatRepo.GetByID(ctx, "e1")
	assert.Equal(t, "On se retrouve où ?", chat.LastMessage)
	require.NotNil(t, chat.LastMessageTime)

	// Push goes only to recipients that registered a token
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, []string{"ExponentPushToken[bob]"}, notifier.sent[0].Tokens)
	assert.Equal(t, "Nouveau message de Alice", notifier.sent[0].Title)
}

func TestSendMessageRequiresMembership(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "intruder"})
	chatRepo := newFakeChatRepo()
	seedChat(t, chatRepo, "e1", "u1")

	uc := NewChatUseCase(chatRepo, userRepo, nil, nil, allowAllLimiter{})

	_, err := uc.SendMessage(context.Background(), "intruder", SendMessageInput{ChatID: "e1", Text: "salut"})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestSendMessageRateLimited(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "u1"})
	chatRepo := newFakeChatRepo()
	seedChat(t, chatRepo, "e1", "u1")

	uc := NewChatUseCase(chatRepo, userRepo, nil, nil, denyAllLimiter{})

	_, err := uc.SendMessage(context.Background(), "u1", SendMessageInput{ChatID: "e1", Text: "spam"})
	assert.True(t, errors.Is(err, "TOO_MANY_REQUESTS"))
}

func TestMarkChatAsReadResetsCounter(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "u1"})
	chatRepo := newFakeChatRepo()
	seedChat(t, chatRepo, "e1", "u1")
	ctx := context.Background()
	require.NoError(t, chatRepo.SetUnread(ctx, "e1", "u1", 7))

	uc := NewChatUseCase(chatRepo, userRepo, nil, nil, allowAllLimiter{})

	require.NoError(t, uc.MarkChatAsRead(ctx, "u1", "e1"))
	count, _ := chatRepo.GetUnread(ctx, "e1", "u1")
	assert.Equal(t, 0, count)

	// Zeroing an already-zero counter is fine
	require.NoError(t, uc.MarkChatAsRead(ctx, "u1", "e1"))

	err := uc.MarkChatAsRead(ctx, "outsider", "e1")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestGetTotalUnreadSumsCurrentChatsOnly(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "u1"})
	chatRepo := newFakeChatRepo()
	seedChat(t, chatRepo, "e1", "u1", "u2")
	seedChat(t, chatRepo, "e2", "u1", "u3")
	seedChat(t, chatRepo, "e3", "u3")
	ctx := context.Background()

	require.NoError(t, chatRepo.SetUnread(ctx, "e1", "u1", 2))
	require.NoError(t, chatRepo.SetUnread(ctx, "e2", "u1", 3))
	// Stale counter in a chat the user is not part of
	require.NoError(t, chatRepo.SetUnread(ctx, "e3", "u1", 40))

	uc := NewChatUseCase(chatRepo, userRepo, nil, nil, allowAllLimiter{})

	total, err := uc.GetTotalUnread(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	// Leaving a chat drops its contribution even though the counter remains
	chat, _ := chatRepo.GetByID(ctx, "e2")
	chat.Participants = removeString(chat.Participants, "u1")

	total, err = uc.GetTotalUnread(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestGetUserChatsIncludesUnreadCounts(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "u1"})
	chatRepo := newFakeChatRepo()
	older := seedChat(t, chatRepo, "e1", "u1")
	newer := seedChat(t, chatRepo, "e2", "u1")
	ctx := context.Background()

	older.UpdatedAt = time.Now().Add(-time.Hour)
	newer.UpdatedAt = time.Now()
	require.NoError(t, chatRepo.SetUnread(ctx, "e2", "u1", 4))

	uc := NewChatUseCase(chatRepo, userRepo, nil, nil, allowAllLimiter{})

	chats, err := uc.GetUserChats(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, "e2", chats[0].ID)
	assert.Equal(t, 4, chats[0].UnreadCount)
	assert.Equal(t, 0, chats[1].UnreadCount)
}

func TestGetChatMessagesRequiresMembership(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "u1"})
	chatRepo := newFakeChatRepo()
	seedChat(t, chatRepo, "e1", "u1")
	ctx := context.Background()
	require.NoError(t, chatRepo.CreateMessage(ctx, &entity.Message{ChatID: "e1", SenderID: "u1", Text: "hello"}))

	uc := NewChatUseCase(chatRepo, userRepo, nil, nil, allowAllLimiter{})

	msgs, total, err := uc.GetChatMessages(ctx, "u1", "e1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, msgs, 1)

	_, _, err = uc.GetChatMessages(ctx, "outsider", "e1", 10, 0)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestDeleteChat(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "u1"})
	chatRepo := newFakeChatRepo()
	seedChat(t, chatRepo, "e1", "u1")
	ctx := context.Background()

	uc := NewChatUseCase(chatRepo, userRepo, nil, nil, allowAllLimiter{})

	err := uc.DeleteChat(ctx, "outsider", "e1")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	require.NoError(t, uc.DeleteChat(ctx, "u1", "e1"))
	_, err = chatRepo.GetByID(ctx, "e1")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

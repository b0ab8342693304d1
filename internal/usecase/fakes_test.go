package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"mingle/internal/domain/entity"
	"mingle/pkg/errors"
)

// In-memory repositories for exercising the use cases without Firestore.

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) AddParticipation(ctx context.Context, userID, eventID string) error {
	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.Participations = appendUnique(user.Participations, eventID)
	return nil
}

func (r *fakeUserRepo) RemoveParticipation(ctx context.Context, userID, eventID string) error {
	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.Participations = removeString(user.Participations, eventID)
	return nil
}

func (r *fakeUserRepo) AddFavorite(ctx context.Context, userID, eventID string) error {
	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.Favorites = appendUnique(user.Favorites, eventID)
	return nil
}

func (r *fakeUserRepo) RemoveFavorite(ctx context.Context, userID, eventID string) error {
	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.Favorites = removeString(user.Favorites, eventID)
	return nil
}

type fakeEventRepo struct {
	events map[string]*entity.Event
}

func newFakeEventRepo(events ...*entity.Event) *fakeEventRepo {
	repo := &fakeEventRepo{events: make(map[string]*entity.Event)}
	for _, e := range events {
		repo.events[e.ID] = e
	}
	return repo
}

func (r *fakeEventRepo) Create(ctx context.Context, event *entity.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, errors.NotFound("Event", nil)
	}
	return event, nil
}

func (r *fakeEventRepo) List(ctx context.Context, limit, offset int) ([]*entity.Event, int64, error) {
	var all []*entity.Event
	for _, e := range r.events {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.Before(all[j].Date) })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeEventRepo) Update(ctx context.Context, event *entity.Event) error {
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, id string) error {
	delete(r.events, id)
	return nil
}

func (r *fakeEventRepo) AddParticipant(ctx context.Context, eventID, userID string) error {
	event, ok := r.events[eventID]
	if !ok {
		return errors.NotFound("Event", nil)
	}
	event.Participants = appendUnique(event.Participants, userID)
	return nil
}

func (r *fakeEventRepo) RemoveParticipant(ctx context.Context, eventID, userID string) error {
	event, ok := r.events[eventID]
	if !ok {
		return errors.NotFound("Event", nil)
	}
	event.Participants = removeString(event.Participants, userID)
	return nil
}

func (r *fakeEventRepo) AddFavorite(ctx context.Context, eventID, userID string) error {
	event, ok := r.events[eventID]
	if !ok {
		return errors.NotFound("Event", nil)
	}
	event.Favorites = appendUnique(event.Favorites, userID)
	return nil
}

func (r *fakeEventRepo) RemoveFavorite(ctx context.Context, eventID, userID string) error {
	event, ok := r.events[eventID]
	if !ok {
		return errors.NotFound("Event", nil)
	}
	event.Favorites = removeString(event.Favorites, userID)
	return nil
}

type fakeChatRepo struct {
	chats    map[string]*entity.Chat
	messages map[string][]*entity.Message
	unreads  map[string]int
	welcomed map[string]bool
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    make(map[string]*entity.Chat),
		messages: make(map[string][]*entity.Message),
		unreads:  make(map[string]int),
		welcomed: make(map[string]bool),
	}
}

func counterKey(chatID, userID string) string {
	return chatID + "/" + userID
}

func (r *fakeChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	if chat.ID == "" {
		chat.ID = chat.EventID
	}
	now := time.Now()
	chat.CreatedAt = now
	chat.UpdatedAt = now
	r.chats[chat.ID] = chat
	return nil
}

func (r *fakeChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	return chat, nil
}

func (r *fakeChatRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error) {
	var result []*entity.Chat
	for _, chat := range r.chats {
		for _, p := range chat.Participants {
			if p == userID {
				result = append(result, chat)
				break
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.After(result[j].UpdatedAt) })
	return result, nil
}

func (r *fakeChatRepo) AddParticipant(ctx context.Context, chatID, userID string) error {
	chat, ok := r.chats[chatID]
	if !ok {
		return errors.NotFound("Chat", nil)
	}
	chat.Participants = appendUnique(chat.Participants, userID)
	return nil
}

func (r *fakeChatRepo) UpdatePreview(ctx context.Context, chatID, lastMessage string, at time.Time) error {
	chat, ok := r.chats[chatID]
	if !ok {
		return errors.NotFound("Chat", nil)
	}
	chat.LastMessage = lastMessage
	chat.LastMessageTime = &at
	chat.UpdatedAt = at
	return nil
}

func (r *fakeChatRepo) Delete(ctx context.Context, id string) error {
	delete(r.chats, id)
	return nil
}

func (r *fakeChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.messages[message.ChatID] = append(r.messages[message.ChatID], message)
	return nil
}

func (r *fakeChatRepo) ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	msgs := r.messages[chatID]
	total := int64(len(msgs))
	if offset >= len(msgs) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(msgs) {
		end = len(msgs)
	}
	return msgs[offset:end], total, nil
}

func (r *fakeChatRepo) GetUnread(ctx context.Context, chatID, userID string) (int, error) {
	return r.unreads[counterKey(chatID, userID)], nil
}

func (r *fakeChatRepo) SetUnread(ctx context.Context, chatID, userID string, count int) error {
	r.unreads[counterKey(chatID, userID)] = count
	return nil
}

func (r *fakeChatRepo) IncrementUnread(ctx context.Context, chatID, userID string) error {
	r.unreads[counterKey(chatID, userID)]++
	return nil
}

func (r *fakeChatRepo) IsWelcomed(ctx context.Context, chatID, userID string) (bool, error) {
	return r.welcomed[counterKey(chatID, userID)], nil
}

func (r *fakeChatRepo) SetWelcomed(ctx context.Context, chatID, userID string) error {
	r.welcomed[counterKey(chatID, userID)] = true
	return nil
}

type fakePostRepo struct {
	posts map[string]*entity.Post
	order []string
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*entity.Post)}
}

func (r *fakePostRepo) Create(ctx context.Context, post *entity.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	post.CreatedAt = time.Now()
	r.posts[post.ID] = post
	// Newest first, matching the feed ordering
	r.order = append([]string{post.ID}, r.order...)
	return nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, errors.NotFound("Post", nil)
	}
	return post, nil
}

func (r *fakePostRepo) List(ctx context.Context, limit, offset int) ([]*entity.Post, int64, error) {
	var all []*entity.Post
	for _, id := range r.order {
		if post, ok := r.posts[id]; ok {
			all = append(all, post)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakePostRepo) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*entity.Post, int64, error) {
	var mine []*entity.Post
	for _, id := range r.order {
		if post, ok := r.posts[id]; ok && post.AuthorID == authorID {
			mine = append(mine, post)
		}
	}
	total := int64(len(mine))
	if offset >= len(mine) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(mine) {
		end = len(mine)
	}
	return mine[offset:end], total, nil
}

func (r *fakePostRepo) Delete(ctx context.Context, id string) error {
	delete(r.posts, id)
	return nil
}

type fakeNotifier struct {
	sent []fakeNotification
}

type fakeNotification struct {
	Tokens []string
	Title  string
	Body   string
}

func (n *fakeNotifier) Notify(tokens []string, title, body string) {
	n.sent = append(n.sent, fakeNotification{Tokens: tokens, Title: title, Body: body})
}

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(userID, action string) (bool, time.Duration) {
	return true, 0
}

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(userID, action string) (bool, time.Duration) {
	return false, time.Minute
}

func appendUnique(slice []string, item string) []string {
	for _, s := range slice {
		if s == item {
			return slice
		}
	}
	return append(slice, item)
}

func removeString(slice []string, item string) []string {
	var out []string
	for _, s := range slice {
		if s != item {
			out = append(out, s)
		}
	}
	return out
}

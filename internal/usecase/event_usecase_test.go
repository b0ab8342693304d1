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

func TestCreateEvent(t *testing.T) {
	eventRepo := newFakeEventRepo()
	uc := NewEventUseCase(eventRepo, newFakeUserRepo(), allowAllLimiter{})

	event, err := uc.CreateEvent(context.Background(), "u1", CreateEventInput{
		Title: "Beach Party",
		Type:  "soirée",
		Date:  time.Now().Add(48 * time.Hour),
		City:  "Nice",
		Price: "Gratuit",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "u1", event.CreatorID)
	assert.NotNil(t, event.Participants)
	assert.NotNil(t, event.Favorites)
}

func TestCreateEventRateLimited(t *testing.T) {
	uc := NewEventUseCase(newFakeEventRepo(), newFakeUserRepo(), denyAllLimiter{})

	_, err := uc.CreateEvent(context.Background(), "u1", CreateEventInput{Title: "Spam"})
	assert.True(t, errors.Is(err, "TOO_MANY_REQUESTS"))
}

func TestUpdateEventCreatorOnly(t *testing.T) {
	eventRepo := newFakeEventRepo(&entity.Event{ID: "e1", Title: "Beach Party", CreatorID: "u1", ImageURL: "https://img/x.jpg"})
	uc := NewEventUseCase(eventRepo, newFakeUserRepo(), allowAllLimiter{})
	ctx := context.Background()

	_, err := uc.UpdateEvent(ctx, "u2", "e1", UpdateEventInput{Title: "Hijacked"})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	// An empty image url keeps the existing one
	updated, err := uc.UpdateEvent(ctx, "u1", "e1", UpdateEventInput{Title: "Pool Party"})
	require.NoError(t, err)
	assert.Equal(t, "Pool Party", updated.Title)
	assert.Equal(t, "https://img/x.jpg", updated.ImageURL)
}

func TestDeleteEventCreatorOnly(t *testing.T) {
	eventRepo := newFakeEventRepo(&entity.Event{ID: "e1", CreatorID: "u1"})
	uc := NewEventUseCase(eventRepo, newFakeUserRepo(), allowAllLimiter{})
	ctx := context.Background()

	err := uc.DeleteEvent(ctx, "u2", "e1")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	require.NoError(t, uc.DeleteEvent(ctx, "u1", "e1"))
	_, err = eventRepo.GetByID(ctx, "e1")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestListParticipantsResolvesProfiles(t *testing.T) {
	eventRepo := newFakeEventRepo(&entity.Event{ID: "e1", Participants: []string{"u1", "gone"}})
	userRepo := newFakeUserRepo(&entity.User{ID: "u1", DisplayName: "Alice"})
	uc := NewEventUseCase(eventRepo, userRepo, allowAllLimiter{})

	users, err := uc.ListParticipants(context.Background(), "e1")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0].DisplayName)
}

package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mingle/internal/domain/entity"
)

func TestToggleFavorite(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "u1"})
	eventRepo := newFakeEventRepo(&entity.Event{ID: "e1", Title: "Vernissage"})
	uc := NewFavoriteUseCase(userRepo, eventRepo)
	ctx := context.Background()

	favorited, err := uc.ToggleFavorite(ctx, "u1", "e1")
	require.NoError(t, err)
	assert.True(t, favorited)

	user, _ := userRepo.GetByID(ctx, "u1")
	assert.Contains(t, user.Favorites, "e1")
	event, _ := eventRepo.GetByID(ctx, "e1")
	assert.Contains(t, event.Favorites, "u1")

	favorited, err = uc.ToggleFavorite(ctx, "u1", "e1")
	require.NoError(t, err)
	assert.False(t, favorited)

	user, _ = userRepo.GetByID(ctx, "u1")
	assert.NotContains(t, user.Favorites, "e1")
	event, _ = eventRepo.GetByID(ctx, "e1")
	assert.NotContains(t, event.Favorites, "u1")
}

func TestListFavoriteEventsSkipsDeleted(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "u1", Favorites: []string{"e1", "gone"}})
	eventRepo := newFakeEventRepo(&entity.Event{ID: "e1", Title: "Vernissage", Date: time.Now()})
	uc := NewFavoriteUseCase(userRepo, eventRepo)

	events, err := uc.ListFavoriteEvents(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "e1", events[0].ID)
}

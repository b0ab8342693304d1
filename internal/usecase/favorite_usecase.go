package usecase

import (
	"context"

	"mingle/internal/domain/entity"
	"mingle/internal/domain/repository"
	"mingle/pkg/logger"
)

// FavoriteUseCase flips the two-sided favorite link between a user and an
// event. Like the participation toggle, the two writes are sequential and
// untransacted; failures are logged and swallowed.
type FavoriteUseCase struct {
	userRepo  repository.UserRepository
	eventRepo repository.EventRepository
}

func NewFavoriteUseCase(userRepo repository.UserRepository, eventRepo repository.EventRepository) *FavoriteUseCase {
	return &FavoriteUseCase{
		userRepo:  userRepo,
		eventRepo: eventRepo,
	}
}

// ToggleFavorite reports whether the event is a favorite after the call.
func (uc *FavoriteUseCase) ToggleFavorite(ctx context.Context, userID, eventID string) (bool, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}

	if containsString(user.Favorites, eventID) {
		if err := uc.userRepo.RemoveFavorite(ctx, userID, eventID); err != nil {
			logger.Error("ToggleFavorite: failed to remove favorite for user %s: %v", userID, err)
		}
		if err := uc.eventRepo.RemoveFavorite(ctx, eventID, userID); err != nil {
			logger.Error("ToggleFavorite: failed to remove favorite from event %s: %v", eventID, err)
		}
		return false, nil
	}

	if err := uc.userRepo.AddFavorite(ctx, userID, eventID); err != nil {
		logger.Error("ToggleFavorite: failed to add favorite for user %s: %v", userID, err)
	}
	if err := uc.eventRepo.AddFavorite(ctx, eventID, userID); err != nil {
		logger.Error("ToggleFavorite: failed to add favorite to event %s: %v", eventID, err)
	}

	return true, nil
}

// ListFavoriteEvents resolves the user's favorite list into event documents.
func (uc *FavoriteUseCase) ListFavoriteEvents(ctx context.Context, userID string) ([]*entity.Event, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var events []*entity.Event
	for _, eventID := range user.Favorites {
		event, err := uc.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			logger.Warn("ListFavoriteEvents: favorite event %s not found for user %s: %v", eventID, userID, err)
			continue
		}
		events = append(events, event)
	}

	return events, nil
}

package repository

import (
	"context"

	"mingle/internal/domain/entity"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Event, int64, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id string) error

	// Mirror side of the user membership lists
	AddParticipant(ctx context.Context, eventID, userID string) error
	RemoveParticipant(ctx context.Context, eventID, userID string) error
	AddFavorite(ctx context.Context, eventID, userID string) error
	RemoveFavorite(ctx context.Context, eventID, userID string) error
}

package repository

import (
	"context"

	"mingle/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error

	// Membership list mutations, array-union/array-remove semantics
	AddParticipation(ctx context.Context, userID, eventID string) error
	RemoveParticipation(ctx context.Context, userID, eventID string) error
	AddFavorite(ctx context.Context, userID, eventID string) error
	RemoveFavorite(ctx context.Context, userID, eventID string) error
}

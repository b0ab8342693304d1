package repository

import (
	"context"

	"mingle/internal/domain/entity"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*entity.Post, int64, error)
	Delete(ctx context.Context, id string) error
}

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

type firestorePostRepository struct {
	client *firestore.Client
}

func NewFirestorePostRepository(client *firestore.Client) repository.PostRepository {
	return &firestorePostRepository{
		client: client,
	}
}

func (r *firestorePostRepository) Create(ctx context.Context, post *entity.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	if post.MediaURLs == nil {
		post.MediaURLs = []string{}
	}

	_, err := r.client.Collection("posts").Doc(post.ID).Set(ctx, post)
	if err != nil {
		return errors.Internal("Failed to create post", err)
	}
	return nil
}

func (r *firestorePostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	doc, err := r.client.Collection("posts").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Post", err)
		}
		return nil, errors.Internal("Failed to get post", err)
	}

	var post entity.Post
	if err := doc.DataTo(&post); err != nil {
		return nil, errors.Internal("Failed to parse post data", err)
	}
	post.ID = doc.Ref.ID

	return &post, nil
}

func (r *firestorePostRepository) List(ctx context.Context, limit, offset int) ([]*entity.Post, int64, error) {
	query := r.client.Collection("posts").OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query, limit, offset)
}

func (r *firestorePostRepository) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*entity.Post, int64, error) {
	query := r.client.Collection("posts").
		Where("authorId", "==", authorID).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query, limit, offset)
}

func (r *firestorePostRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("posts").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete post", err)
	}
	return nil
}

func (r *firestorePostRepository) collect(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.Post, int64, error) {
	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching posts: %v", err)
		return nil, 0, errors.Internal("Failed to fetch posts", err)
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

	var posts []*entity.Post
	for i := start; i < end; i++ {
		var post entity.Post
		if err := allDocs[i].DataTo(&post); err != nil {
			logger.Warn("Skipping malformed post document %s: %v", allDocs[i].Ref.ID, err)
			continue
		}
		post.ID = allDocs[i].Ref.ID
		posts = append(posts, &post)
	}

	return posts, total, nil
}

package usecase

import (
	"context"

	"mingle/internal/domain/entity"
	"mingle/internal/domain/repository"
	"mingle/pkg/errors"
	"mingle/pkg/logger"
)

type PostUseCase struct {
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	rateLimiter RateLimiter
}

func NewPostUseCase(postRepo repository.PostRepository, userRepo repository.UserRepository, rateLimiter RateLimiter) *PostUseCase {
	return &PostUseCase{
		postRepo:    postRepo,
		userRepo:    userRepo,
		rateLimiter: rateLimiter,
	}
}

type CreatePostInput struct {
	Title     string
	Content   string
	MediaURLs []string
	Offerings *entity.Offerings
}

type PostResponse struct {
	*entity.Post
	Author *PublicProfile `json:"author,omitempty"`
}

func (uc *PostUseCase) CreatePost(ctx context.Context, authorID string, input CreatePostInput) (*entity.Post, error) {
	if uc.rateLimiter != nil {
		allowed, waitTime := uc.rateLimiter.Allow(authorID, "create_post")
		if !allowed {
			logger.Warn("CreatePost rate limited: user %s must wait %v", authorID, waitTime)
			return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before creating another post", waitTime)
		}
	}

	if input.Title == "" && input.Content == "" && len(input.MediaURLs) == 0 {
		return nil, errors.BadRequest("A post needs a title, content or an image", nil)
	}

	post := &entity.Post{
		AuthorID:  authorID,
		Title:     input.Title,
		Content:   input.Content,
		MediaURLs: input.MediaURLs,
		Offerings: input.Offerings,
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// GetFeed returns the newest posts first, each decorated with the public
// profile of its author for list rendering.
func (uc *PostUseCase) GetFeed(ctx context.Context, limit, offset int) ([]*PostResponse, int64, error) {
	posts, total, err := uc.postRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var responses []*PostResponse
	for _, post := range posts {
		resp := &PostResponse{Post: post}
		if author, err := uc.userRepo.GetByID(ctx, post.AuthorID); err == nil {
			resp.Author = &PublicProfile{
				ID:          author.ID,
				DisplayName: author.DisplayName,
				Avatar:      author.Avatar,
				Role:        author.Role,
			}
		} else {
			logger.Warn("GetFeed: author %s not found for post %s: %v", post.AuthorID, post.ID, err)
		}
		responses = append(responses, resp)
	}

	return responses, total, nil
}

func (uc *PostUseCase) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	return uc.postRepo.GetByID(ctx, id)
}

func (uc *PostUseCase) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*entity.Post, int64, error) {
	return uc.postRepo.ListByAuthor(ctx, authorID, limit, offset)
}

func (uc *PostUseCase) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != userID {
		return errors.Forbidden("Only the post author can delete it", nil)
	}

	return uc.postRepo.Delete(ctx, postID)
}

package handler

import (
	"github.com/labstack/echo/v4"

	"mingle/internal/domain/entity"
	"mingle/internal/usecase"
	"mingle/pkg/response"
	"mingle/pkg/utils"
)

type PostHandler struct {
	postUseCase *usecase.PostUseCase
}

func NewPostHandler(postUseCase *usecase.PostUseCase) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
	}
}

type createPostRequest struct {
	Title     string            `json:"title" validate:"omitempty,max=200"`
	Content   string            `json:"content" validate:"omitempty,max=5000"`
	MediaURLs []string          `json:"media_urls" validate:"omitempty,dive,url"`
	Offerings *entity.Offerings `json:"offerings"`
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	post, err := h.postUseCase.CreatePost(c.Request().Context(), userID, usecase.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		MediaURLs: req.MediaURLs,
		Offerings: req.Offerings,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, post)
}

func (h *PostHandler) GetFeed(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	posts, total, err := h.postUseCase.GetFeed(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, posts, total, params.Page, params.PageSize)
}

func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postUseCase.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, post)
}

func (h *PostHandler) ListByAuthor(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	posts, total, err := h.postUseCase.ListByAuthor(c.Request().Context(), c.Param("id"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, posts, total, params.Page, params.PageSize)
}

func (h *PostHandler) DeletePost(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.postUseCase.DeletePost(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Post deleted",
	})
}

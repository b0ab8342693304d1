package router

import (
	"github.com/labstack/echo/v4"

	"mingle/internal/adapter/api/handler"
	"mingle/internal/adapter/api/middleware"
)

func SetupPostRouter(e *echo.Echo, postHandler *handler.PostHandler, fileHandler *handler.FileHandler, authMiddleware *middleware.AuthMiddleware) {
	posts := e.Group("/v1/posts")
	posts.Use(authMiddleware.Authenticate)

	posts.POST("", postHandler.CreatePost)
	posts.GET("", postHandler.GetFeed)
	posts.GET("/:id", postHandler.GetPost)
	posts.DELETE("/:id", postHandler.DeletePost)
	posts.POST("/:id/image", fileHandler.UploadPostImage)

	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)
	users.GET("/:id/posts", postHandler.ListByAuthor)
}

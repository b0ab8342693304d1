package router

import (
	"github.com/labstack/echo/v4"

	"mingle/internal/adapter/api/handler"
	"mingle/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, userHandler *handler.UserHandler, fileHandler *handler.FileHandler, authMiddleware *middleware.AuthMiddleware) {
	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)

	users.GET("/me", userHandler.GetProfile)
	users.PATCH("/me", userHandler.UpdateProfile)
	users.PUT("/me/password", userHandler.ChangePassword)
	users.POST("/me/avatar", fileHandler.UploadAvatar)
	users.GET("/:id", userHandler.GetPublicProfile)
}

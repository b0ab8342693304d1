package router

import (
	"github.com/labstack/echo/v4"

	"mingle/internal/adapter/api/handler"
	"mingle/internal/adapter/api/middleware"
)

func SetupEventRouter(e *echo.Echo, eventHandler *handler.EventHandler, fileHandler *handler.FileHandler, authMiddleware *middleware.AuthMiddleware) {
	events := e.Group("/v1/events")
	events.Use(authMiddleware.Authenticate)

	events.POST("", eventHandler.CreateEvent)
	events.GET("", eventHandler.ListEvents)
	events.GET("/favorites", eventHandler.ListFavorites)
	events.GET("/:id", eventHandler.GetEvent)
	events.PUT("/:id", eventHandler.UpdateEvent)
	events.DELETE("/:id", eventHandler.DeleteEvent)

	// Membership toggles; joining provisions the event chat
	events.POST("/:id/participation", eventHandler.ToggleParticipation)
	events.POST("/:id/favorite", eventHandler.ToggleFavorite)

	events.GET("/:id/participants", eventHandler.ListParticipants)
	events.GET("/:id/favorited-by", eventHandler.ListFavoritedBy)

	events.POST("/:id/image", fileHandler.UploadEventImage)
}

package router

import (
	"github.com/labstack/echo/v4"

	"mingle/internal/adapter/api/handler"
	"mingle/internal/adapter/api/middleware"
)

// SetupChatRouter sets up all chat-related routes (excluding WebSocket)
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.GET("", chatHandler.GetUserChats)
	chats.GET("/unread-total", chatHandler.GetUnreadTotal)
	chats.DELETE("/:id", chatHandler.DeleteChat)
	chats.PUT("/:id/read", chatHandler.MarkChatAsRead)

	chats.POST("/:id/messages", chatHandler.SendMessage)
	chats.GET("/:id/messages", chatHandler.GetChatMessages)
}

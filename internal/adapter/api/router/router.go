package router

import (
	"github.com/labstack/echo/v4"

	"mingle/internal/adapter/api/handler"
	"mingle/internal/adapter/api/middleware"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Event     *handler.EventHandler
	Chat      *handler.ChatHandler
	Post      *handler.PostHandler
	File      *handler.FileHandler
	Health    *handler.HealthHandler
	WebSocket *handler.WebSocketHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	SetupAuthRouter(e, h.Auth)
	SetupUserRouter(e, h.User, h.File, authMiddleware)
	SetupEventRouter(e, h.Event, h.File, authMiddleware)
	SetupChatRouter(e, h.Chat, authMiddleware)
	SetupPostRouter(e, h.Post, h.File, authMiddleware)
	SetupWebSocketRouter(e, h.WebSocket, authMiddleware)
	SetupHealthRouter(e, h.Health)
}

package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"mingle/internal/adapter/api"
	"mingle/internal/adapter/api/handler"
	apimiddleware "mingle/internal/adapter/api/middleware"
	"mingle/internal/adapter/api/router"
	"mingle/internal/adapter/repository"
	"mingle/internal/infrastructure/firebase"
	"mingle/internal/infrastructure/notification"
	"mingle/internal/infrastructure/ratelimit"
	"mingle/internal/infrastructure/storage"
	"mingle/internal/infrastructure/websocket"
	"mingle/internal/usecase"
	"mingle/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	serviceAccountPath := ""

	// Service account from environment variable (production) or file (local)
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.FirebaseProject, serviceAccountPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	eventRepo := repository.NewFirestoreEventRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	postRepo := repository.NewFirestorePostRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	expoClient := notification.NewExpoClient()

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo, firebaseAuthClient)
	eventUseCase := usecase.NewEventUseCase(eventRepo, userRepo, rateLimiter)
	chatUseCase := usecase.NewChatUseCase(chatRepo, userRepo, wsManager, expoClient, rateLimiter)
	participationUseCase := usecase.NewParticipationUseCase(userRepo, eventRepo, chatRepo, chatUseCase)
	favoriteUseCase := usecase.NewFavoriteUseCase(userRepo, eventRepo)
	postUseCase := usecase.NewPostUseCase(postRepo, userRepo, rateLimiter)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authUseCase),
		User:      handler.NewUserHandler(userUseCase),
		Event:     handler.NewEventHandler(eventUseCase, participationUseCase, favoriteUseCase),
		Chat:      handler.NewChatHandler(chatUseCase),
		Post:      handler.NewPostHandler(postUseCase),
		File:      handler.NewFileHandler(storageClient),
		Health:    handler.NewHealthHandler(firebaseAuthClient),
		WebSocket: handler.NewWebSocketHandler(wsManager),
	}

	router.Setup(e, handlers, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"learnloop/internal/cache"
	"learnloop/internal/config"
	"learnloop/internal/recommend"
	"learnloop/internal/repository"
	"learnloop/internal/service"
	"learnloop/internal/storage"
	"learnloop/internal/transport/rest"
	"learnloop/internal/transport/rest/handler"
	"learnloop/internal/transport/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// MongoDB
	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017")
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	db := mongoClient.Database(getEnv("MONGO_DB", "learnloop"))
	log.Println("Connected to MongoDB")

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to ping Redis: %v", err)
	}
	log.Println("Connected to Redis")

	// Object storage (optional)
	var uploader storage.Uploader
	storageCfg := config.DefaultStorageConfig()
	if storageCfg.IsEnabled() {
		uploader, err = storage.NewUploader(storageCfg)
		if err != nil {
			log.Fatalf("Failed to set up object storage: %v", err)
		}
		log.Println("Object storage configured")
	} else {
		log.Println("Object storage not configured, uploads disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepo(db)
	convRepo := repository.NewConversationRepo(db)
	pathRepo := repository.NewPathRepo(db)

	// Caches
	searchCache := cache.NewSearchCache(redisClient)
	historyCache := cache.NewHistoryCache(redisClient)

	// External clients
	gemini := service.NewGeminiClient(config.DefaultAIConfig())
	youtube := service.NewYouTubeClient(config.DefaultYouTubeConfig(), searchCache)

	// Pipeline and services
	pipeline := recommend.NewPipeline(gemini, youtube)
	authSvc := service.NewAuthService(userRepo)
	surveySvc := service.NewSurveyService(gemini)
	playlistSvc := service.NewPlaylistService(pipeline, pathRepo)
	chatSvc := service.NewChatService(convRepo, historyCache, gemini, playlistSvc)
	quizSvc := service.NewQuizService(gemini)
	historySvc := service.NewHistoryService(convRepo, historyCache, uploader)
	profileSvc := service.NewProfileService(userRepo, uploader)
	pathSvc := service.NewPathService(pathRepo)

	if err := pathSvc.SeedCatalog(ctx); err != nil {
		log.Printf("Warning: catalog seed failed: %v", err)
	}

	// Transport
	hub := ws.NewHub()
	router := rest.NewRouter(authSvc, rest.Handlers{
		Auth:     handler.NewAuthHandler(authSvc),
		Survey:   handler.NewSurveyHandler(surveySvc),
		Playlist: handler.NewPlaylistHandler(playlistSvc),
		Chat:     handler.NewChatHandler(chatSvc),
		Quiz:     handler.NewQuizHandler(quizSvc),
		History:  handler.NewHistoryHandler(historySvc),
		Profile:  handler.NewProfileHandler(profileSvc),
		Path:     handler.NewPathHandler(pathSvc),
		WS:       ws.NewHandler(hub, chatSvc),
	})

	addr := ":" + getEnv("PORT", "8080")
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // pipeline runs can be slow
	}

	go func() {
		log.Printf("Server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		log.Printf("Redis close error: %v", err)
	}
	log.Println("Shutdown complete")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/api"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/config"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/repository"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/repository/mongo"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/service"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/storage"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/textgen"
	"github.com/gin-gonic/gin"
)

// @title Treinos LevelUP API
// @version 1.0
// @description Padel coaching scheduler: shifts, live sessions and session history.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Treinos LevelUP server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	// An unreachable store is not fatal: the server starts on fixture data.
	var backend *repository.Backend
	dbClient, err := mongo.ConnectDB(cfg.Database.URI, cfg.Database.Timeout)
	if err != nil {
		log.Printf("WARN: Could not connect to MongoDB, running offline: %v", err)
	} else {
		defer func() {
			log.Println("Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)
		backend = mongo.NewBackend(appDB)

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
			defer cancel()
			if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
				log.Printf("WARN: Index creation incomplete: %v", err)
				return
			}
			log.Println("Index creation process completed.")
		}()
	}

	// --- Initial Load ---
	ctrl := service.NewController(backend, cfg.Database.Timeout)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Database.Timeout)
	_ = ctrl.Load(loadCtx) // failures are logged and leave fixture data in place
	cancelLoad()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(context.Background(), cfg.S3)
	if err != nil {
		log.Printf("WARN: Video storage unavailable: %v", err)
		fileStorage = storage.Disabled()
	}

	// --- Initialize Services ---
	generator := textgen.NewGenerator(textgen.NewGemini(cfg.Gemini))
	services := api.Services{
		Auth:     service.NewAuthService(ctrl, cfg.JWT.Secret, cfg.JWT.Expiration),
		Users:    service.NewUserService(ctrl),
		Schedule: service.NewScheduleService(ctrl),
		Sessions: service.NewSessionService(ctrl, generator, fileStorage),
		Coaching: service.NewCoachingService(ctrl, generator),
		Status:   ctrl.Status,
	}

	// --- Initialize Gin Engine ---
	router := gin.Default()
	api.SetupRoutes(router, cfg, services)

	// --- Start HTTP Server ---
	// Completing a session waits for the text-generation call
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Gemini.Timeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

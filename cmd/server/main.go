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

	"github.com/labstack/echo/v4"
	"gorm.io/gorm/logger"

	_ "fotolab/docs" // swagger docs

	"fotolab/internal/auth"
	"fotolab/internal/config"
	"fotolab/internal/db"
	"fotolab/internal/handler"
	"fotolab/internal/kv"
	"fotolab/internal/logging"
	"fotolab/internal/repository"
	"fotolab/internal/router"
	"fotolab/internal/service"
	"fotolab/internal/storage"
)

// @title Fotolab API
// @version 1.0
// @description Media catalog API: users, albums, images and tags behind session authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token. Browsers send the session cookie instead.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logWriter, logCloser := logging.Writer(cfg.Log)
	defer logCloser.Close()
	log.SetOutput(logWriter)

	gormDB, err := db.Open(cfg, logger.Warn)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	ctx := context.Background()
	if cfg.ResetDB {
		log.Println("RESET_DB=true detected, dropping all tables...")
		if err := db.Reset(ctx, gormDB); err != nil {
			log.Fatalf("reset database: %v", err)
		}
		log.Println("Tables dropped")
	}
	if err := db.Migrate(ctx, gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	kvClient := kv.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer kvClient.Close()
	if err := kvClient.Ping(ctx); err != nil {
		log.Printf("Warning: redis unreachable at %s: %v", cfg.RedisAddr, err)
	}

	uploads, err := storage.NewLocal(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload store: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	albumRepo := repository.NewAlbumRepository(gormDB)
	imageRepo := repository.NewImageRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.SessionSecret)
	sessionStore := auth.NewSessionStore(kvClient)
	gate := auth.NewSessionGate(jwtService, sessionStore, cfg.SessionTTL)

	// Initialize services
	authService, err := service.NewAuthService(userRepo, gate, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}
	userService := service.NewUserService(userRepo, cfg.BcryptCost)
	albumService := service.NewAlbumService(albumRepo)
	imageService := service.NewImageService(imageRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, gate.TTL(), cfg.CookieSecure)
	userHandler := handler.NewUserHandler(userService)
	albumHandler := handler.NewAlbumHandler(albumService)
	imageHandler := handler.NewImageHandler(imageService)
	uploadHandler := handler.NewUploadHandler(uploads)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(logWriter)

	// Register routes
	router.Register(
		e,
		cfg,
		gate,
		userHandler,
		authHandler,
		albumHandler,
		imageHandler,
		uploadHandler,
	)

	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", host)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Printf("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("database close error: %v", err)
		}
	}
}

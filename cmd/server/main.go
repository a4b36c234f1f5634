package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "ideahub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"ideahub/internal/assist"
	"ideahub/internal/auth"
	"ideahub/internal/cache"
	"ideahub/internal/config"
	"ideahub/internal/db"
	"ideahub/internal/handler"
	"ideahub/internal/repository"
	"ideahub/internal/router"
	"ideahub/internal/service"
)

// @title IdeaHub API
// @version 1.0
// @description Multi-tenant API for capturing startup ideas, attaching notes, and administering users. Session-based auth with GitHub social login.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a session token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		if err := db.Reset(gormDB); err != nil {
			log.Printf("Warning: reset failed (tables may not exist): %v", err)
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	ideaRepo := repository.NewIdeaRepository(gormDB)
	noteRepo := repository.NewNoteRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)
	accountRepo := repository.NewAccountRepository(gormDB)

	// Initialize auth components
	sessionCache := auth.NewSessionCache(cacheClient)
	stateSigner := auth.NewStateSigner(cfg.AuthSecret)
	github := auth.NewGitHubOAuth(
		cfg.GitHubClientID,
		cfg.GitHubClientSecret,
		cfg.BaseURL+"/api/auth/github/callback",
	)

	// Initialize services
	authService := service.NewAuthService(
		userRepo, accountRepo, sessionRepo, sessionCache, stateSigner, github, cfg.SessionTTL)

	// Reap expired sessions at startup and hourly; session resolution only
	// cleans up a session when its own token is presented.
	go func() {
		for {
			if n, err := authService.PurgeExpiredSessions(context.Background()); err != nil {
				log.Printf("session sweep: %v", err)
			} else if n > 0 {
				log.Printf("session sweep: removed %d expired sessions", n)
			}
			time.Sleep(time.Hour)
		}
	}()
	ideaService := service.NewIdeaService(ideaRepo, cacheClient)
	noteService := service.NewNoteService(noteRepo, ideaRepo)
	userService := service.NewUserService(userRepo)
	assistService := service.NewAssistService(assist.NewClient(cfg.OpenRouterAPIKey))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	ideaHandler := handler.NewIdeaHandler(ideaService)
	noteHandler := handler.NewNoteHandler(noteService)
	assistHandler := handler.NewAssistHandler(assistService)

	// Register routes
	router.Register(
		e,
		authService,
		authHandler,
		userHandler,
		ideaHandler,
		noteHandler,
		assistHandler,
	)

	// Log swagger full path
	swaggerURL := "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	if cfg.SwaggerHost != "" {
		host := cfg.SwaggerHost
		if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
			host = "http://" + host
		}
		swaggerURL = host + "/swagger/index.html"
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valyala/fasthttp"

	"assessment-api/internal/cache"
	"assessment-api/internal/config"
	"assessment-api/internal/handlers"
	"assessment-api/internal/middleware"
	"assessment-api/internal/repository"
	"assessment-api/internal/router"
	"assessment-api/internal/services"
	"assessment-api/internal/utils"
)

func main() {
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	pool, err := pgxpool.New(context.Background(), cfg.DBURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := runMigrations(cfg.DBURL); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	utils.LogSuccess("Main", "Migrations applied")

	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTTTL)
	userRepo := repository.NewUserRepository(pool)
	assessmentRepo := repository.NewAssessmentRepository(pool)

	assessmentService := services.NewAssessmentService(assessmentRepo)
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisAddr)
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			utils.LogWarning("Main", "Redis unreachable at %s, running without cache: %v", cfg.RedisAddr, err)
			_ = redisCache.Close()
		} else {
			assessmentService = services.NewAssessmentServiceWithCache(assessmentRepo, redisCache)
			defer redisCache.Close()
			utils.LogSuccess("Main", "Assessment list cache enabled (%s)", cfg.RedisAddr)
		}
		pingCancel()
	}

	authHandler := handlers.NewAuthHandler(authService, userRepo)
	assessmentHandler := handlers.NewAssessmentHandler(assessmentService)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	rt := router.New(authMiddleware)
	rt.Register(router.Route{Method: "GET", Path: "/", Handler: handlers.HomeHandler})
	rt.Register(router.Route{Method: "POST", Path: "/register", Handler: authHandler.RegisterHandler})
	rt.Register(router.Route{Method: "POST", Path: "/login", Handler: authHandler.LoginHandler})
	rt.Register(router.Route{Method: "POST", Path: "/assessments", Handler: assessmentHandler.CreateAssessment})
	rt.Register(router.Route{Method: "GET", Path: "/assessments", Handler: assessmentHandler.ListAssessments})
	rt.Register(router.Route{Method: "PUT", Path: "/assessments/:id", RequiresAuth: true, Handler: assessmentHandler.UpdateAssessment})
	rt.Register(router.Route{Method: "DELETE", Path: "/assessments/:id", Handler: assessmentHandler.DeleteAssessment})

	server := &fasthttp.Server{
		Handler: rt.Handler,
		Name:    "assessment-api",
	}

	go func() {
		utils.LogInfo("Main", "Server starting on :%s", cfg.Port)
		if err := server.ListenAndServe(":" + cfg.Port); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	shutdownChannel := make(chan os.Signal, 1)
	signal.Notify(shutdownChannel, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChannel

	utils.LogInfo("Main", "Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		utils.LogError("Main", "Server forced to shutdown", err)
	}
	utils.LogSuccess("Main", "Server stopped")
}

func runMigrations(dbURL string) error {
	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

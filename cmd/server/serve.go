package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yukikurage/task-board-api/internal/config"
	"github.com/yukikurage/task-board-api/internal/constants"
	"github.com/yukikurage/task-board-api/internal/database"
	"github.com/yukikurage/task-board-api/internal/handlers"
	"github.com/yukikurage/task-board-api/internal/middleware"
	"github.com/yukikurage/task-board-api/internal/repository"
	"github.com/yukikurage/task-board-api/internal/services"
)

const shutdownTimeout = 10 * time.Second

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	if cfg.Seed {
		if _, err := database.Seed(cmd.Context(), db); err != nil {
			return err
		}
	}

	var rc *redis.Client
	if addr := cfg.RedisAddr(); addr != "" {
		rc = redis.NewClient(&redis.Options{Addr: addr})
		defer rc.Close()
		log.WithField("addr", addr).Info("Caching task list in Redis")
	}
	taskRepo := repository.NewCachedTaskRepository(repository.NewTaskRepository(db), rc, cfg.CacheTTL)

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}
	taskService := services.NewTaskService(taskRepo, aiService)

	store, err := sessionStore(cfg)
	if err != nil {
		return err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log.StandardLogger()))
	r.Use(sessions.Sessions(constants.SessionName, store))

	handlers.RegisterRoutes(r, handlers.Handlers{
		Health:      handlers.NewHealthHandler(db),
		Tasks:       handlers.NewTaskHandler(taskService),
		Preferences: handlers.NewPreferencesHandler(),
		TaskFinder:  taskService,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// sessionStore keeps sessions in Redis when it is configured and in signed
// cookies otherwise.
func sessionStore(cfg *config.Config) (sessions.Store, error) {
	options := sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAgeSeconds,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}

	addr := cfg.RedisAddr()
	if addr == "" {
		store := cookie.NewStore([]byte(cfg.SessionSecret))
		store.Options(options)
		return store, nil
	}

	store, err := redisStore.NewStore(
		constants.RedisSessionPoolSize,
		"tcp",
		addr,
		"",
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis session store: %w", err)
	}
	if err := redisStore.SetKeyPrefix(store, constants.RedisSessionKeyPrefix); err != nil {
		return nil, fmt.Errorf("failed to set session key prefix: %w", err)
	}
	store.Options(options)
	return store, nil
}

package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"servonix/internal/application/message/usecases"
	"servonix/internal/domain/message"
	"servonix/internal/domain/shared/events"
	"servonix/internal/infrastructure/cache"
	"servonix/internal/infrastructure/config"
	"servonix/internal/infrastructure/database"
	"servonix/internal/infrastructure/migration"
	"servonix/internal/infrastructure/notify"
	"servonix/internal/infrastructure/presence"
	"servonix/internal/infrastructure/repository"
	httpRouter "servonix/internal/interfaces/http"
	"servonix/internal/shared/biztime"
	"servonix/internal/shared/goroutine"
	"servonix/internal/shared/logger"
)

var (
	env                string
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Servonix HTTP server with specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(logger.Options{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputPath: cfg.Logger.OutputPath,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	logger.Info("starting server",
		"environment", env,
		"auto_migrate", autoMigrate)

	if err := biztime.Init(biztime.DefaultTimezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := handleMigrations(env); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.Info("redis connection established", "addr", cfg.Redis.GetAddr())

	dispatcher := events.NewInMemoryEventDispatcher(100, log)
	if err := dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	defer func() {
		if err := dispatcher.Stop(); err != nil {
			logger.Error("failed to stop event dispatcher", "error", err)
		}
	}()
	logger.Info("event dispatcher started")

	registry := presence.NewRegistry()

	if err := wireEventHandlers(dispatcher, redisClient, registry, cfg, log); err != nil {
		return fmt.Errorf("failed to wire event handlers: %w", err)
	}

	router := httpRouter.NewRouter(database.Get(), redisClient, dispatcher, registry, cfg, log)
	router.SetupRoutes()

	srv := &http.Server{
		Addr:        cfg.Server.GetAddr(),
		Handler:     router.GetEngine(),
		ReadTimeout: 15 * time.Second,
		// No write timeout: notification streams are long-lived.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	goroutine.SafeGo(log, "http-server", func() {
		logger.Info("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

// wireEventHandlers attaches the notification relay, the unread-counter
// invalidation, and the complaint-deletion consumer to the dispatcher.
func wireEventHandlers(
	dispatcher *events.InMemoryEventDispatcher,
	redisClient *redis.Client,
	registry *presence.Registry,
	cfg *config.Config,
	log logger.Interface,
) error {
	relay := notify.NewRelay(redisClient, registry, &cfg.Messaging, log)
	relayEvents := []string{
		message.EventTypeMessageSent,
		message.EventTypeMessageRead,
		message.EventTypeMessageReplied,
		message.EventTypeMessageResolved,
	}
	for _, eventType := range relayEvents {
		if err := dispatcher.Subscribe(eventType, relay); err != nil {
			return err
		}
	}

	// Every mutation invalidates the affected head's unread counter so the
	// badge poll converges quickly instead of waiting out the TTL.
	unreadCache := cache.NewRedisUnreadCountCache(redisClient, &cfg.Messaging, log)
	invalidate := func(event events.DomainEvent) error {
		var headID uint
		switch e := event.(type) {
		case message.MessageSentEvent:
			headID = e.HeadID
		case message.MessageReadEvent:
			headID = e.HeadID
		case message.MessageRepliedEvent:
			headID = e.HeadID
		case message.MessageResolvedEvent:
			headID = e.HeadID
		default:
			return nil
		}
		return unreadCache.InvalidateUnreadCount(context.Background(), headID)
	}
	for _, eventType := range relayEvents {
		handler := events.NewSimpleEventHandler(eventType, invalidate)
		if err := dispatcher.Subscribe(eventType, handler); err != nil {
			return err
		}
	}

	// The complaint subsystem announces deletions; detach the soft references
	// so messages keep their text but drop the dangling link.
	unlinkUC := usecases.NewUnlinkComplaintUseCase(repository.NewMessageRepository(database.Get()), log)
	unlinkHandler := events.NewSimpleEventHandler(message.EventTypeComplaintDeleted, func(event events.DomainEvent) error {
		e, ok := event.(message.ComplaintDeletedEvent)
		if !ok {
			return nil
		}
		result, err := unlinkUC.Execute(context.Background(), usecases.UnlinkComplaintCommand{ComplaintID: e.ComplaintID})
		if err != nil {
			return err
		}
		log.Infow("detached complaint references",
			"complaint_id", e.ComplaintID,
			"messages_updated", result.MessagesUpdated)
		return nil
	})
	return dispatcher.Subscribe(message.EventTypeComplaintDeleted, unlinkHandler)
}

func handleMigrations(environment string) error {
	if skipMigrationCheck {
		logger.Info("skipping migration check")
		return nil
	}

	if autoMigrate {
		if environment == "production" {
			logger.Warn("auto-migration is enabled in production environment - this is not recommended!")
		}

		logger.Info("running auto-migration")
		migrationManager := migration.NewManager(environment)
		if err := migrationManager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		logger.Info("auto-migration completed successfully")
		return nil
	}

	logger.Info("checking migration status")

	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		logger.Warn("failed to get migration scripts path", "error", err)
		return nil
	}

	strategy := migration.NewGooseStrategy(scriptsPath)
	if gooseStrategy, ok := strategy.(*migration.GooseStrategy); ok {
		version, err := gooseStrategy.GetVersion(database.Get())
		if err != nil {
			logger.Warn("failed to check migration status", "error", err)
		} else {
			logger.Info("current migration version", "version", version)
		}
	}

	logger.Info("migration check completed")

	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}

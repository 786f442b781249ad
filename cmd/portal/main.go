package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/campusmitra/portal/internal/ai"
	"github.com/campusmitra/portal/internal/chat"
	"github.com/campusmitra/portal/internal/config"
	"github.com/campusmitra/portal/internal/filestore"
	"github.com/campusmitra/portal/internal/handler"
	"github.com/campusmitra/portal/internal/job"
	"github.com/campusmitra/portal/internal/langid"
	"github.com/campusmitra/portal/internal/middleware"
	"github.com/campusmitra/portal/internal/repo"
	"github.com/campusmitra/portal/internal/schedule"
	"github.com/campusmitra/portal/internal/service"
)

// Anonymous chat history is swept once a night.
const retentionCronSpec = "30 3 * * *"

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "portal",
		Short: "campus portal backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run portal server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			db, err := repo.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := repo.ApplyMigrations(db, cfg.MigrationsDir); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, db)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, db *sql.DB) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logutil.GetLogger(ctx).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("db_path", cfg.DBPath),
		zap.String("file_store", cfg.FileStore.Type),
	)

	userRepo := repo.NewUserRepo(db)
	announcementRepo := repo.NewAnnouncementRepo(db)
	exchangeRepo := repo.NewExchangeRepo(db)

	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
	if cfg.Admin.Email != "" {
		if err := authService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			return fmt.Errorf("ensure admin account: %w", err)
		}
	}
	announcementService := service.NewAnnouncementService(announcementRepo)

	generator, err := buildGenerator(cfg.AI)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	docStore := chat.SeedStore()
	assistService := service.NewAssistService(
		chat.NewDetector(langid.NewWhatlang()),
		docStore,
		chat.NewRetriever(docStore),
		chat.NewComposer(generator),
		exchangeRepo,
	)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	deps := handler.RouterDeps{
		Auth:          handler.NewAuthHandler(authService),
		Announcements: handler.NewAnnouncementHandler(announcementService),
		Assist:        handler.NewAssistHandler(assistService),
		Files:         handler.NewFileHandler(store),
		JWTSecret:     []byte(cfg.JWTSecret),
		ChatRateLimit: time.Duration(cfg.Chat.RateLimitMs) * time.Millisecond,
	}

	scheduler := schedule.NewCronScheduler()
	if cfg.Chat.AnonymousRetentionDays > 0 {
		retention := job.NewHistoryRetentionJob(exchangeRepo, 24*time.Hour*time.Duration(cfg.Chat.AnonymousRetentionDays))
		if err := scheduler.AddJob(retention, retentionCronSpec); err != nil {
			return fmt.Errorf("schedule retention job: %w", err)
		}
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(cfg.CORSOrigins),
			middleware.RequestID(),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(ctx).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}

// buildGenerator returns nil when no provider is configured; the assistant
// then answers from templates alone.
func buildGenerator(cfg config.AIConfig) (ai.IGenerator, error) {
	if cfg.Provider == "" {
		return nil, nil
	}
	provider, err := ai.NewProvider(cfg.Provider, cfg.Data)
	if err != nil {
		return nil, err
	}
	return ai.NewGenerator(provider, cfg.Model), nil
}

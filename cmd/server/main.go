package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/skillsync/adapters/event"
	httpAdapter "github.com/khoahotran/skillsync/adapters/http"
	"github.com/khoahotran/skillsync/adapters/llm"
	"github.com/khoahotran/skillsync/adapters/media_storage"
	"github.com/khoahotran/skillsync/adapters/pdf"
	"github.com/khoahotran/skillsync/adapters/persistence"
	"github.com/khoahotran/skillsync/internal/application/service"
	backupUC "github.com/khoahotran/skillsync/internal/application/usecase/backup"
	portfolioUC "github.com/khoahotran/skillsync/internal/application/usecase/portfolio"
	profileUC "github.com/khoahotran/skillsync/internal/application/usecase/profile"
	resumeUC "github.com/khoahotran/skillsync/internal/application/usecase/resume"
	"github.com/khoahotran/skillsync/internal/config"
	"github.com/khoahotran/skillsync/pkg/auth"
	"github.com/khoahotran/skillsync/pkg/logger"
	"github.com/khoahotran/skillsync/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewZapLogger("development").Fatal("Cannot load config", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting SkillSync API server...", zap.String("env", cfg.App.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing
	tp, err := tracing.NewTracerProvider(cfg, appLogger, "skillsync-api")
	if err != nil {
		appLogger.Fatal("Cannot initialize tracing", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			appLogger.Error("Failed to shut down tracer provider", err)
		}
	}()

	// Storage
	stores, err := persistence.OpenStores(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot open profile store", err)
	}
	defer stores.Close()

	// Events
	var publisher service.EventPublisher = event.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher, err := event.NewKafkaPublisher(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot init Kafka", err)
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	} else {
		appLogger.Warn("No Kafka brokers configured, profile events are dropped")
	}

	// Services
	jwtSvc := auth.NewJWTService(cfg.Session.Secret, cfg.Session.TTL)

	var uploader service.Uploader
	if cfg.CloudinaryEnabled() {
		uploader, err = media_storage.NewCloudinaryAdapter(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize uploader", err)
		}
	} else {
		appLogger.Info("Cloudinary not configured, photos are stored inline")
	}

	var llmSvc service.LLMService
	if cfg.Ollama.Host != "" {
		llmSvc, err = llm.NewOllamaLLMAdapter(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize LLM adapter", err)
		}
	}

	var renderer service.PDFRenderer
	if cfg.PDF.Enabled {
		chrome, err := pdf.NewChromeRenderer(cfg.PDF.Timeout, appLogger)
		if err != nil {
			appLogger.Warn("PDF export disabled, headless Chrome is unavailable", zap.Error(err))
		} else {
			defer chrome.Close()
			renderer = chrome
		}
	}

	// Use Cases
	profileUseCase := profileUC.NewProfileUseCase(stores.Profile, publisher, uploader, appLogger)
	portfolioUseCase := portfolioUC.NewPortfolioUseCase(stores.Profile, cfg.Portfolio.BaseURL, appLogger)
	resumeUseCase := resumeUC.NewResumeUseCase(stores.Profile, renderer, llmSvc, publisher, appLogger)
	backupUseCase := backupUC.NewBackupUseCase(stores.Profile, publisher, appLogger)

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		Profile:   httpAdapter.NewProfileHandler(profileUseCase, appLogger),
		Portfolio: httpAdapter.NewPortfolioHandler(portfolioUseCase, appLogger),
		Resume:    httpAdapter.NewResumeHandler(resumeUseCase, appLogger),
		Backup:    httpAdapter.NewBackupHandler(backupUseCase, appLogger),
		JWT:       jwtSvc,
		Cookie:    httpAdapter.SessionCookie{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure},
		Logger:    appLogger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server stopped unexpectedly", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shut down", err)
	}
	appLogger.Info("Server exited")
}

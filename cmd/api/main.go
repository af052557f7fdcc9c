package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/01moynul/ytgenius-golang/internal/ai"
	"github.com/01moynul/ytgenius-golang/internal/auth"
	"github.com/01moynul/ytgenius-golang/internal/config"
	"github.com/01moynul/ytgenius-golang/internal/database"
	"github.com/01moynul/ytgenius-golang/internal/generation"
	"github.com/01moynul/ytgenius-golang/internal/handlers"
	"github.com/01moynul/ytgenius-golang/internal/logger"
	"github.com/01moynul/ytgenius-golang/internal/routes"
	"github.com/01moynul/ytgenius-golang/internal/store"
	"github.com/01moynul/ytgenius-golang/internal/video"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Missing credentials do not stop the server; the affected requests
	// answer 503 until the deployment is fixed.
	for _, problem := range cfg.Problems() {
		zlog.Warn("collaborator not configured", zap.Error(problem))
	}

	ctx := context.Background()

	// 1. --- Datastore ---
	var st store.Store
	if db := openDatastore(ctx, cfg, zlog); db != nil {
		defer db.Close()
		st = store.NewSQLStore(db)
	}

	// 2. --- Identity provider ---
	resolver := newResolver(cfg, zlog)

	// 3. --- AI Service Initialization ---
	var model generation.Model
	if cfg.GeminiAPIKey != "" {
		aiService, err := ai.NewAIService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			zlog.Error("failed to initialize AI service", zap.Error(err))
		} else {
			defer aiService.Close()
			model = aiService
			zlog.Info("AI service ready", zap.String("model", cfg.GeminiModel))
		}
	}

	// 4. --- Video collaborators ---
	videoHTTP := &http.Client{Timeout: cfg.VideoTimeout}
	metadata, err := video.NewMetadataClient(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		zlog.Error("failed to initialize YouTube Data API client", zap.Error(err))
		metadata = nil
	}
	if cfg.YouTubeAPIKey == "" {
		zlog.Info("YOUTUBE_API_KEY not set, audits run without video metadata")
	}

	deps := generation.Deps{
		Store:       st,
		Model:       model,
		Transcripts: video.NewTranscriptClient(videoHTTP, cfg.TranscriptLang),
		Thumbnails:  video.NewThumbnailFetcher(videoHTTP),
		Logger:      zlog,
	}
	if metadata != nil {
		deps.Metadata = metadata
	}

	svc := generation.NewService(deps, generation.Options{
		StartingCoins: cfg.StartingCoins,
		StrictDebit:   cfg.StrictDebit,
		Timeouts: generation.Timeouts{
			DB:    cfg.DBTimeout,
			Video: cfg.VideoTimeout,
			AI:    cfg.AITimeout,
		},
	})

	// --- Application Setup ---
	app := handlers.New(svc, st, zlog)

	// --- Router Setup ---
	router := routes.SetupRouter(app, routes.Options{
		Resolver:        resolver,
		Logger:          zlog,
		CORSAllowOrigin: cfg.CORSAllowOrigin,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- Start Server ---
	go func() {
		zlog.Info("starting YTGenius API server", zap.String("addr", server.Addr), zap.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}

// openDatastore connects and migrates the datastore. It returns nil when the
// DSN is missing or the database is unreachable.
func openDatastore(ctx context.Context, cfg *config.Config, zlog *zap.Logger) *sql.DB {
	if cfg.DBDSN == "" {
		return nil
	}

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN, cfg.DBTimeout)
	if err != nil {
		zlog.Error("failed to connect to datastore", zap.String("driver", cfg.DBDriver), zap.Error(err))
		return nil
	}

	migrateCtx, cancel := context.WithTimeout(ctx, cfg.DBTimeout)
	defer cancel()
	if err := database.Migrate(migrateCtx, db, cfg.DBDriver); err != nil {
		zlog.Error("failed to migrate datastore", zap.Error(err))
		db.Close()
		return nil
	}

	zlog.Info("datastore ready", zap.String("driver", cfg.DBDriver))
	return db
}

// newResolver prefers local JWT verification and falls back to asking the
// identity provider. It returns nil when neither is configured.
func newResolver(cfg *config.Config, zlog *zap.Logger) auth.Resolver {
	switch {
	case cfg.UseLocalJWT():
		zlog.Info("verifying bearer tokens locally")
		return auth.NewJWTResolver(cfg.SupabaseJWTSecret)
	case cfg.SupabaseURL != "" && cfg.ServiceRoleKey != "":
		zlog.Info("resolving bearer tokens remotely", zap.String("url", cfg.SupabaseURL))
		return auth.NewGoTrueResolver(cfg.SupabaseURL, cfg.ServiceRoleKey, cfg.AuthTimeout)
	default:
		return nil
	}
}

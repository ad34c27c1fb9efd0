package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"council.app/council/common/id"
	"council.app/council/common/llm"
	"council.app/council/common/logger"
	"council.app/council/common/otel"
	"council.app/council/core/config"
	"council.app/council/internal/attachment"
	"council.app/council/internal/debate"
	"council.app/council/internal/enrich"
	"council.app/council/internal/http/handler"
	"council.app/council/internal/http/middleware"
	httprouter "council.app/council/internal/http/router"
	"council.app/council/internal/roster"
	"council.app/council/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet — OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "council starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)

	ids, err := id.NewSnowflake(cfg.Session.NodeID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	repo, err := buildRosterRepository(ctx, cfg.Roster)
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize roster repository", "error", err)
		os.Exit(1)
	}

	registry, err := roster.NewRegistry(ctx, repo)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load roster", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "roster loaded", "agents", len(registry.List()))

	debateClient, err := llm.New(llm.Config{
		Provider: cfg.DebateLLM.Provider,
		APIKey:   cfg.DebateLLM.APIKey,
		BaseURL:  cfg.DebateLLM.BaseURL,
		Model:    cfg.DebateLLM.Model,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize debate llm client", "error", err)
		os.Exit(1)
	}

	enrichClient, err := llm.New(llm.Config{
		Provider: cfg.EnrichLLM.Provider,
		APIKey:   cfg.EnrichLLM.APIKey,
		BaseURL:  cfg.EnrichLLM.BaseURL,
		Model:    cfg.EnrichLLM.Model,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize enrichment llm client", "error", err)
		os.Exit(1)
	}

	images, err := llm.NewImageClient(llm.ImageConfig{
		APIKey:  cfg.Image.APIKey,
		BaseURL: cfg.Image.BaseURL,
		Model:   cfg.Image.Model,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize image client", "error", err)
		os.Exit(1)
	}

	collector := attachment.NewCollector()
	gateway := debate.NewGateway(debateClient, cfg.DebateLLM.MaxTokens)
	manager := session.NewManager(gateway, collector, ids,
		session.WithConcludeDwell(cfg.Session.ConcludeDwell))

	personas := enrich.NewPersonaService(enrichClient, ids)
	portraits := enrich.NewPortraitService(registry, images)
	visuals := enrich.NewVisualService(enrichClient, images)
	search := enrich.NewSearchService(enrichClient)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, httprouter.Handlers{
		Session:    handler.NewSessionHandler(manager, registry),
		Roster:     handler.NewRosterHandler(registry, personas, portraits),
		Attachment: handler.NewAttachmentHandler(collector, manager),
		Enrich:     handler.NewEnrichHandler(visuals, search, manager),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func buildRosterRepository(ctx context.Context, cfg config.RosterConfig) (roster.Repository, error) {
	if !cfg.RedisEnabled() {
		return roster.NewFileRepository(cfg.Path)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	slog.InfoContext(ctx, "redis roster backend connected", "key", cfg.RedisKey)
	return roster.NewRedisRepository(client, cfg.RedisKey), nil
}

func setupRouter(cfg config.Config, handlers httprouter.Handlers) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, handlers)

	return router
}

const banner = `
 ██████╗ ██████╗ ██╗   ██╗███╗   ██╗ ██████╗██╗██╗
██╔════╝██╔═══██╗██║   ██║████╗  ██║██╔════╝██║██║
██║     ██║   ██║██║   ██║██╔██╗ ██║██║     ██║██║
██║     ██║   ██║██║   ██║██║╚██╗██║██║     ██║██║
╚██████╗╚██████╔╝╚██████╔╝██║ ╚████║╚██████╗██║███████╗
 ╚═════╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═══╝ ╚═════╝╚═╝╚══════╝
`

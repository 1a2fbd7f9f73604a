package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/gigledger/ledger-backend/docs"
	"github.com/dafibh/gigledger/ledger-backend/internal/config"
	"github.com/dafibh/gigledger/ledger-backend/internal/domain"
	"github.com/dafibh/gigledger/ledger-backend/internal/handler"
	"github.com/dafibh/gigledger/ledger-backend/internal/middleware"
	"github.com/dafibh/gigledger/ledger-backend/internal/repository/storage"
	"github.com/dafibh/gigledger/ledger-backend/internal/service"
	"github.com/dafibh/gigledger/ledger-backend/internal/websocket"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// @title GigLedger API
// @version 1.0
// @description Earnings ledger for gig-economy delivery workers
// @BasePath /api/v1
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open ledger storage
	store, closeStore, err := storage.NewBlobStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("Failed to open ledger storage")
	}
	defer closeStore()
	log.Info().Str("backend", cfg.StorageBackend).Str("key", cfg.Ledger.StorageKey).Msg("Ledger storage ready")

	// Initialize services
	var ledgerOpts []domain.LedgerOption
	if cfg.Ledger.StrictAmounts {
		ledgerOpts = append(ledgerOpts, domain.WithStrictAmounts())
	}
	ledgerService := service.NewLedgerService(store, cfg.Ledger.StorageKey, ledgerOpts...)

	// WebSocket hub receives every ledger event
	hub := websocket.NewHub()
	ledgerService.SetEventPublisher(hub)

	if cfg.Ledger.LoadOnStart {
		loadOnStart(ctx, ledgerService)
	}

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	// Initialize handlers
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	wsHandler := handler.NewWebSocketHandler(hub, cfg.CORSOrigins)

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		MaxAge:       86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"storage":   cfg.StorageBackend,
			"wsClients": hub.ClientCount(),
		})
	})

	// Register API routes
	handler.RegisterRoutes(e, ledgerHandler, wsHandler, rateLimiter)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}

	log.Info().Msg("Server exited")
}

// loadOnStart restores the saved ledger. Failures are logged and the server
// starts with an empty ledger.
func loadOnStart(ctx context.Context, ledgerService *service.LedgerService) {
	summary, found, err := ledgerService.Load(ctx)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("Could not restore saved ledger; starting empty")
	case !found:
		log.Info().Msg("No saved ledger; starting empty")
	default:
		log.Info().
			Str("monthly_goal", summary.MonthlyGoal.String()).
			Str("monthly_earnings", summary.MonthlyEarnings.String()).
			Msg("Restored saved ledger")
	}
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}

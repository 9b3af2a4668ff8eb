// Package app wires the shop's dependency graph and runs the server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/database"
	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/health"
	pkgkafka "github.com/Billick-J/ws2-ecommerce-project-g1/pkg/kafka"

	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/auth"
	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/config"
	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/event"
	handler "github.com/Billick-J/ws2-ecommerce-project-g1/internal/handler/http"
	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/repository/postgres"
	redisrepo "github.com/Billick-J/ws2-ecommerce-project-g1/internal/repository/redis"
	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/service"
	"github.com/Billick-J/ws2-ecommerce-project-g1/migrations"
)

const tokenExpiry = 24 * time.Hour

// App wires together all dependencies and runs the shop server.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, &cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	rdb, err := database.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	prometheus.MustRegister(database.NewPoolStatsCollector(pool, cfg.ServiceName))

	// Build the dependency graph.
	productRepo := postgres.NewProductRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	sessionStore := redisrepo.NewSessionCartStore(rdb, cfg.SessionCartTTL)

	publisher := event.NewPublisher(producer, logger)

	cartService := service.NewCartService(cartRepo, sessionStore, productRepo, publisher, logger)
	checkoutService := service.NewCheckoutService(cartRepo, sessionStore, productRepo, orderRepo, publisher, logger)
	orderService := service.NewOrderService(orderRepo, publisher, logger)
	catalogService := service.NewCatalogService(productRepo, orderRepo, publisher, logger)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, tokenExpiry)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", producer.Ping)

	router := handler.NewRouter(handler.RouterConfig{
		Logger:        logger,
		ServiceName:   cfg.ServiceName,
		Validator:     jwtManager.Validate,
		Cart:          handler.NewCartHandler(cartService, logger),
		Catalog:       handler.NewCatalogHandler(catalogService, logger),
		Order:         handler.NewOrderHandler(checkoutService, orderService, logger),
		Admin:         handler.NewAdminHandler(catalogService, orderService, logger),
		HealthHandler: healthHandler,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		pool:       pool,
		rdb:        rdb,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return nil
}

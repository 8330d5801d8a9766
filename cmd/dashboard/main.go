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

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/riwisport/sales-dashboard/internal/cache"
	"github.com/riwisport/sales-dashboard/internal/config"
	"github.com/riwisport/sales-dashboard/internal/database"
	"github.com/riwisport/sales-dashboard/internal/dataset"
	"github.com/riwisport/sales-dashboard/internal/handler"
	"github.com/riwisport/sales-dashboard/internal/middleware"
	"github.com/riwisport/sales-dashboard/internal/repository"
	"github.com/riwisport/sales-dashboard/internal/service"
)

// main is the application entrypoint for the sales dashboard service.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting sales dashboard")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations (opt-in: the dashboard is read-only against
	// production databases, migrations provision dev/test schemas only)
	if cfg.DB.Migrate {
		if err := runMigrations(db.DB); err != nil {
			log.Error().Err(err).Msg("migration failed")
			fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
			os.Exit(1)
		}
		log.Info().Msg("migrations completed successfully")
	}

	// 3b. Connect to Redis for the snapshot cache. The cache is an
	// optimization; without Redis every request recomputes from the table.
	var snapshotCache *cache.SnapshotCache
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis connection failed - snapshot caching disabled")
	} else {
		defer redisClient.Close()
		snapshotCache = cache.NewSnapshotCache(redisClient, cfg.Dashboard.SnapshotTTL)
		log.Info().Msg("redis connected successfully")
	}

	// 4. Initialize repository and dataset cache
	salesRepo := repository.NewSalesRepository(db)
	datasetCache := dataset.NewCache(salesRepo)

	// 5. Initialize services
	dashboardSvc := service.NewDashboardService(datasetCache, snapshotCache, &cfg.Dashboard)

	// 6. Initialize handlers
	handlers := &Handlers{
		Health:    handler.NewHealthHandler(salesRepo),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Admin:     handler.NewAdminHandler(dashboardSvc),
	}

	// 7. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers)

	// 8. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 9. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 10. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *handler.HealthHandler
	Dashboard *handler.DashboardHandler
	Admin     *handler.AdminHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	dashboard := router.Group("/v1/dashboard")
	{
		dashboard.GET("", handlers.Dashboard.GetDashboard)
		dashboard.GET("/filters", handlers.Dashboard.GetFilters)
		dashboard.GET("/kpis", handlers.Dashboard.GetKPIs)
		dashboard.GET("/top/categories", handlers.Dashboard.GetTopCategories)
		dashboard.GET("/top/products", handlers.Dashboard.GetTopProducts)
		dashboard.GET("/distribution", handlers.Dashboard.GetDistribution)
		dashboard.GET("/heatmap", handlers.Dashboard.GetHeatmap)
		dashboard.GET("/trend", handlers.Dashboard.GetTrend)
	}

	admin := router.Group("/v1/admin")
	{
		admin.POST("/cache/invalidate", handlers.Admin.InvalidateCache)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

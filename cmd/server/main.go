package main // Entry point package

import (
	"log" // Logging library
	"os"  // Environment inspection for broker selection

	"github.com/joho/godotenv"    // Loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/tour-operations/internal/cache"      // Optimistic tour read model
	"github.com/iliyamo/tour-operations/internal/config"     // Internal config loader
	"github.com/iliyamo/tour-operations/internal/database"   // MySQL connection helper
	"github.com/iliyamo/tour-operations/internal/handler"    // HTTP handlers
	"github.com/iliyamo/tour-operations/internal/middleware" // Redis cache and rate limit middleware
	"github.com/iliyamo/tour-operations/internal/queue"      // Change-notification bus
	"github.com/iliyamo/tour-operations/internal/repository" // Data access layer
	"github.com/iliyamo/tour-operations/internal/retry"      // Shared retry policy
	"github.com/iliyamo/tour-operations/internal/router"     // Internal router setup
	"github.com/iliyamo/tour-operations/internal/syncer"     // Reconciliation engine
)

func main() {
	_ = godotenv.Load() // Load .env when present; real environments set vars directly

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName) // Connect to MySQL
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Redis backs the response cache and rate limiter; a nil client
	// simply disables both middlewares.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, response cache and rate limiting disabled")
	}

	// Prefer RabbitMQ when a broker is configured; otherwise fall back
	// to the in-process bus, which is enough for single-node deploys.
	var bus queue.Bus
	if os.Getenv("RABBITMQ_URL") != "" || os.Getenv("AMQP_URL") != "" {
		bus = queue.NewAMQPBus(queue.BrokerURL())
	} else {
		log.Println("no broker configured, using in-process event bus")
		bus = queue.NewMemoryBus()
	}
	defer func() { _ = bus.Close() }()

	store := repository.NewStore(db)  // All repositories on one handle
	tourCache := cache.NewTourCache() // Shared optimistic read model

	policy := retry.Default()
	policy.MaxRetries = cfg.SyncMaxRetries // Operator-tunable retry budget

	opts := syncer.Options{
		Policy:             policy,
		NoTicketGuideNames: cfg.NoTicketGuides,
	}
	if cfg.FallbackURL != "" { // Out-of-band writer only when a gateway is configured
		opts.OutOfBand = &syncer.HTTPFallback{URL: cfg.FallbackURL, APIKey: cfg.FallbackAPIKey}
	}
	orch := syncer.New(store, tourCache, bus, opts)

	// The re-syncer damps bursts of change events into periodic
	// sweep-and-recompute runs per tour.
	resyncer := syncer.NewResyncer(orch, cfg.ResyncDebounce)
	stopResync, err := resyncer.Start(bus)
	if err != nil {
		log.Fatalf("resyncer: %v", err)
	}
	defer stopResync()

	e := echo.New() // Create Echo instance
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)                                          // Health check
	router.RegisterAPI(e, handler.NewHandler(store, orch, tourCache)) // Dashboard API

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"webhook-gateway/config"
	"webhook-gateway/internal/adapter/events/rabbitmq"
	httpHandler "webhook-gateway/internal/adapter/http/handler"
	"webhook-gateway/internal/adapter/storage/memory"
	pgStorage "webhook-gateway/internal/adapter/storage/postgres"
	redisStorage "webhook-gateway/internal/adapter/storage/redis"
	"webhook-gateway/internal/core/ports"
	"webhook-gateway/internal/metrics"
	"webhook-gateway/internal/scheduler"
	"webhook-gateway/internal/service"
	"webhook-gateway/internal/telemetry"
	"webhook-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default: ./config.yaml or ./config/config.yaml)")
	hashKey := flag.String("hash-admin-key", "", "print the argon2id hash of an admin key and exit")
	issueToken := flag.String("issue-token", "", "print a bearer token for the given owner id and exit")
	tokenTTL := flag.Duration("token-ttl", 30*24*time.Hour, "lifetime of a token printed by -issue-token")
	flag.Parse()

	if *hashKey != "" {
		hash, err := service.NewArgon2HashService().Hash(*hashKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to hash key: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *issueToken != "" {
		token, expiresAt, err := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Issuer).Generate(*issueToken, *tokenTTL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to issue token: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s\n# expires %s\n", token, expiresAt.UTC().Format(time.RFC3339))
		return
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("database", cfg.Database.Driver).
		Msg("Starting Webhook Gateway")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracing")
	}
	if cfg.Telemetry.MetricsEnabled {
		metrics.RegisterDefault()
	}

	var (
		endpointRepo ports.EndpointRepository
		deliveryRepo ports.DeliveryRepository
		auditRepo    ports.AuditRepository
		checkers     []ports.HealthChecker
	)

	switch cfg.Database.Driver {
	case "memory":
		store := memory.NewStore()
		endpointRepo, deliveryRepo, auditRepo = store.Endpoints(), store.Deliveries(), store.Audit()
		log.Warn().Msg("Using in-memory storage; endpoints and deliveries are lost on restart")
	default:
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		if err := pgStorage.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply schema")
		}
		log.Info().Msg("PostgreSQL connected")

		endpointRepo = pgStorage.NewEndpointRepo(pool)
		deliveryRepo = pgStorage.NewDeliveryRepo(pool)
		auditRepo = pgStorage.NewAuditRepo(pool)
		checkers = append(checkers, pgStorage.NewHealthCheck(pool))
	}

	// Redis is optional: endpoint cache, rate limiting and the scheduler lease.
	var (
		endpointCache  ports.EndpointCache
		rateLimitStore ports.RateLimitStore
		schedOpts      []scheduler.Option
	)
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("Redis connected")

		endpointCache = redisStorage.NewEndpointCache(rdb)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		if cfg.Scheduler.DistributedLock {
			schedOpts = append(schedOpts, scheduler.WithTaskLock(redisStorage.NewTaskLock(rdb)))
		}
		checkers = append(checkers, redisStorage.NewHealthCheck(rdb))
	} else {
		log.Warn().Msg("Redis disabled; rate limiting and endpoint caching are off")
	}

	// Initialize core services
	encSvc, err := service.NewAESEncryptionService(cfg.AES.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}
	sigSvc := service.NewHMACSignatureService()
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)
	auditSvc := service.NewAuditService(auditRepo, log)

	// Initialize webhook services
	httpClient := &http.Client{
		Timeout: cfg.Webhook.Timeout(),
		// Redirects are reported as the 3xx they are, never followed.
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	worker := service.NewDeliveryWorker(endpointRepo, deliveryRepo, encSvc, sigSvc, endpointCache, auditSvc, httpClient, cfg.Webhook, log)
	dispatcher := service.NewDispatcherService(endpointRepo, deliveryRepo, endpointCache, worker, auditSvc, cfg.Webhook, log)
	endpointSvc := service.NewEndpointService(endpointRepo, deliveryRepo, encSvc, endpointCache, auditSvc, cfg.Webhook, log)
	adminSvc := service.NewAdminService(endpointRepo, deliveryRepo, worker, endpointCache, auditSvc, log)

	sched := scheduler.New(deliveryRepo, worker, cfg.Scheduler, log, schedOpts...)
	if cfg.Scheduler.Enabled {
		if err := sched.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start scheduler")
		}
	}

	consumerDone := make(chan struct{})
	if cfg.Events.AMQP.Enabled {
		consumer, err := rabbitmq.Dial(cfg.Events.AMQP, dispatcher, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
		}
		go runConsumer(ctx, consumer, log, consumerDone)
	} else {
		close(consumerDone)
	}

	if cfg.Admin.APIKeyHash == "" {
		log.Warn().Msg("admin.api_key_hash is empty; admin and event ingest routes will reject every request")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		EndpointSvc:    endpointSvc,
		Dispatcher:     dispatcher,
		Worker:         worker,
		AdminSvc:       adminSvc,
		Scheduler:      sched,
		TokenSvc:       tokenSvc,
		HashSvc:        hashSvc,
		AdminKeyHash:   cfg.Admin.APIKeyHash,
		RateLimitStore: rateLimitStore,
		AuditSvc:       auditSvc,
		HealthCheckers: checkers,
		MetricsEnabled: cfg.Telemetry.MetricsEnabled,
		BaseContext:    ctx,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	sched.Stop()
	<-consumerDone
	auditSvc.Wait()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Tracer shutdown failed")
	}

	log.Info().Msg("Server exited")
}

// runConsumer keeps the AMQP consumer running until ctx ends. A closed
// channel is logged and ends consumption; the HTTP ingest route stays up.
func runConsumer(ctx context.Context, consumer *rabbitmq.Consumer, log zerolog.Logger, done chan<- struct{}) {
	defer close(done)
	defer func() {
		if err := consumer.Close(); err != nil {
			log.Warn().Err(err).Msg("RabbitMQ close failed")
		}
	}()
	if err := consumer.Run(ctx); err != nil {
		log.Error().Err(err).Msg("RabbitMQ consumer stopped")
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fundguard/internal/audit"
	"fundguard/internal/campaign"
	campaignhandler "fundguard/internal/campaign/handler"
	"fundguard/internal/campaign/lock"
	campaignmetrics "fundguard/internal/campaign/metrics"
	"fundguard/internal/jwttoken"
	"fundguard/internal/moderation"
	moderationhandler "fundguard/internal/moderation/handler"
	"fundguard/internal/moderation/history"
	moderationmetrics "fundguard/internal/moderation/metrics"
	"fundguard/internal/platform/config"
	"fundguard/internal/platform/httpserver"
	"fundguard/internal/platform/logger"
	"fundguard/internal/platform/postgres"
	platformredis "fundguard/internal/platform/redis"
	httptransport "fundguard/internal/transport/http"
)

const auditInboxSize = 256

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := cfg.Moderation.Validate(); err != nil {
		log.Error("invalid moderation config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage: PostgreSQL when configured, in-memory otherwise so the
	// service runs with zero external dependencies in development.
	var (
		campaignStore campaign.Store
		historyStore  history.Store
	)
	db, err := postgres.Open(cfg.Postgres)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
		campaignStore = campaign.NewPostgres(db)
		historyStore = history.NewPostgres(db)
		log.Info("using postgres storage")
	} else {
		campaignStore = campaign.NewInMemoryStore()
		historyStore = history.NewInMemoryStore()
		log.Info("using in-memory storage")
	}

	// Advisory locks: Redis when configured, in-process otherwise.
	var locker lock.Locker
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		locker = lock.NewRedisLocker(redisClient.Client)
		log.Info("using redis moderation locks")
	} else {
		locker = lock.NewInMemoryLocker()
	}

	// Audit pipeline: always keep the in-memory store for reads; add the
	// Kafka sink when brokers are configured.
	auditStore := audit.NewInMemoryStore()
	sinks := []audit.Store{auditStore}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			log.Error("kafka sink setup failed", "error", err)
			os.Exit(1)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = kafkaSink.Close(flushCtx)
		}()
		sinks = append(sinks, kafkaSink)
		log.Info("audit events streaming to kafka", "topic", cfg.Kafka.Topic)
	}
	auditInbox := make(chan audit.Event, auditInboxSize)
	auditWorker := audit.NewWorker(audit.NewPublisher(sinks...), auditInbox)
	go func() {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	engine, err := moderation.NewEngine(moderation.Thresholds{
		Approve:         cfg.Moderation.ApproveThreshold,
		Review:          cfg.Moderation.ReviewThreshold,
		FraudVeto:       cfg.Moderation.FraudVetoCeiling,
		LargeGoalAmount: cfg.Moderation.LargeGoalAmount,
		MaxTextLength:   cfg.Moderation.MaxTextLength,
	}, log, moderationmetrics.New())
	if err != nil {
		log.Error("engine setup failed", "error", err)
		os.Exit(1)
	}

	campaignService := campaign.NewService(
		campaignStore,
		historyStore,
		engine,
		locker,
		auditInbox,
		log,
		campaignmetrics.New(),
	)

	tokens := jwttoken.NewAdapter(jwttoken.NewService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience))

	router := httptransport.NewRouter(httptransport.Deps{
		Campaigns:    campaignhandler.New(campaignService, log),
		Moderation:   moderationhandler.New(engine, historyStore, log),
		Tokens:       tokens,
		AdminKeyHash: cfg.AdminKeyHash,
		Logger:       log,
		Health: func() error {
			if db != nil {
				return db.Ping()
			}
			return nil
		},
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting fundguard", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

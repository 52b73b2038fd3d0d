package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/wyfcoding/optionpricing/internal/pricing/application"
	"github.com/wyfcoding/optionpricing/internal/pricing/infrastructure/messaging"
	mysqlrepo "github.com/wyfcoding/optionpricing/internal/pricing/infrastructure/persistence/mysql"
	redisrepo "github.com/wyfcoding/optionpricing/internal/pricing/infrastructure/persistence/redis"
	httphandler "github.com/wyfcoding/optionpricing/internal/pricing/interfaces/http"
	"github.com/wyfcoding/optionpricing/pkg/config"
	pkgdb "github.com/wyfcoding/optionpricing/pkg/db"
	"github.com/wyfcoding/optionpricing/pkg/logger"
	"github.com/wyfcoding/optionpricing/pkg/metrics"
	"github.com/wyfcoding/optionpricing/pkg/mq"
)

func main() {
	configPath := flag.String("config", "configs/config.toml", "path to the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	log := slog.Default()
	log.Info("starting service", "service", cfg.ServiceName, "environment", cfg.Environment)

	db, err := pkgdb.Init(pkgdb.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		log.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(&mysqlrepo.PricingResultModel{}, &messaging.OutboxMessage{}); err != nil {
		log.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	producer := mq.NewProducer(mq.Config{
		Brokers:      cfg.Kafka.Brokers,
		MaxRetries:   cfg.Kafka.MaxRetries,
		RetryBackoff: cfg.Kafka.RetryBackoff,
	})
	defer producer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	relay := messaging.NewOutboxRelay(
		db, producer, cfg.Kafka.Topic,
		time.Duration(cfg.Kafka.RelayInterval)*time.Millisecond,
		cfg.Kafka.RelayBatchSize, log,
	)
	go relay.Run(ctx)

	m := metrics.New(cfg.ServiceName)

	repo := mysqlrepo.NewPricingRepository(db)
	publisher := messaging.NewOutboxEventPublisher(db)
	cache := redisrepo.NewPricingRedisRepository(redisClient)

	cmdService := application.NewPricingCommandService(repo, publisher, m, log, cfg.Pricing.DefaultPeriods)
	queryService := application.NewPricingQueryService(repo, cache, log)

	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	handler := httphandler.NewPricingHandler(cmdService, queryService, cfg.Pricing.MaxPeriods)
	handler.RegisterRoutes(engine)
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   cfg.ServiceName,
			"timestamp": time.Now().Unix(),
		})
	})
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", "error", err)
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	cancel()
	log.Info("service stopped", "service", cfg.ServiceName)
}

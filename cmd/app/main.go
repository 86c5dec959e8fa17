package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ivan-chernow/ZaraHome-sub000/internal/application/invalidation"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/application/service"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/cache"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/config"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/database"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/domain"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/events"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/httpapi"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/observability"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/pkg/breaker"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/promocode"
)

type publisher interface {
	service.Publisher
	Close() error
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics, metricsHandler := newMetrics(cfg.Metrics)

	store, err := cache.New(cfg.Cache.Capacity,
		cache.WithDefaultTTL(cfg.Cache.DefaultTTL),
		cache.WithLogger(logger.Named("cache")),
		cache.WithRecorder(metrics),
	)
	if err != nil {
		logger.Fatal("Error while creating cache", zap.Error(err))
	}

	var (
		storage    domain.OrderRepository
		promoStore promocode.Store
	)
	switch cfg.Storage {
	case config.StorageMemory:
		mem := database.NewMemory()
		seedDemo(mem, cfg.JWTSecret, logger)
		storage, promoStore = mem, mem
	default:
		pool, err := database.Connect(ctx, cfg.DSN(), logger)
		if err != nil {
			logger.Fatal("Error while connecting to postgres", zap.Error(err))
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool, cfg.Pg.Schema); err != nil {
			logger.Fatal("Error while migrating schema", zap.Error(err), zap.String("schema", cfg.Pg.Schema))
		}
		storage = database.New(pool, cfg.Pg.Schema)
		promoStore = database.NewPromocodeRepo(pool, cfg.Pg.Schema)
	}

	promocodes := promocode.NewGuarded(
		promocode.NewValidator(promoStore, logger.Named("promocode")),
		breaker.New(cfg.Breaker),
	)
	coordinator := invalidation.New(store, logger.Named("invalidation"), metrics)

	pub := newPublisher(ctx, cfg, logger, metrics)
	defer func() {
		if err := pub.Close(); err != nil {
			logger.Warn("Error while closing event publisher", zap.Error(err))
		}
	}()

	svc := service.NewService(storage, store, promocodes, coordinator, pub, logger, metrics, cfg.Cache.OrdersTTL)
	server := httpapi.New(svc, httpapi.NewAuthenticator(cfg.JWTSecret), logger.Named("http"), metrics, metricsHandler)

	logger.Info("HTTP server listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("storage", cfg.Storage),
		zap.String("metrics", cfg.Metrics),
	)
	if err := server.ListenAndServe(ctx, cfg.HTTPAddr); err != nil {
		logger.Error("HTTP server stopped", zap.Error(err))
		return
	}
	logger.Info("HTTP server stopped")
}

func newMetrics(mode string) (observability.Metrics, http.Handler) {
	switch mode {
	case config.MetricsInmem:
		return observability.NewInmem(1000), nil
	case config.MetricsNoop:
		return observability.NewNoop(), nil
	default:
		p := observability.NewPrometheus(prometheus.NewRegistry())
		return p, p.Handler()
	}
}

func newPublisher(ctx context.Context, cfg config.Config, logger *zap.Logger, metrics observability.Metrics) publisher {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("No kafka brokers configured, order events are dropped")
		return events.Noop{}
	}

	topicCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := events.EnsureTopic(topicCtx, cfg.Kafka, 3, 1, logger); err != nil {
		logger.Warn("Error while ensuring kafka topic", zap.Error(err), zap.String("topic", cfg.Kafka.Topic))
	}
	return events.NewKafkaPublisher(events.NewWriter(cfg.Kafka), cfg.Kafka.Workers, cfg.Retry, logger.Named("events"), metrics)
}

// seedDemo fills the in-memory store with a customer, an admin and one
// promocode, and logs tokens for both accounts.
func seedDemo(mem *database.Memory, secret string, logger *zap.Logger) {
	users := []domain.User{
		{ID: "demo-user", Email: "demo@example.com", Name: "Demo", Role: domain.RoleUser},
		{ID: "demo-admin", Email: "admin@example.com", Name: "Admin", Role: domain.RoleAdmin},
	}
	auth := httpapi.NewAuthenticator(secret)
	for _, u := range users {
		mem.PutUser(u)
		token, err := auth.Issue(u.ID, u.Role, 24*time.Hour)
		if err != nil {
			logger.Warn("Error while issuing demo token", zap.Error(err))
			continue
		}
		logger.Info("Demo account", zap.String("user_id", u.ID), zap.String("role", string(u.Role)), zap.String("token", token))
	}
	mem.PutPromocode(promocode.Promocode{
		Code:            "WELCOME10",
		DiscountPercent: decimal.NewFromInt(10),
		MinOrderAmount:  decimal.NewFromInt(100),
		Active:          true,
	})
}

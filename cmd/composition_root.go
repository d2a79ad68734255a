package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpin "climasite/internal/adapters/in/http"
	"climasite/internal/adapters/out/cache"
	"climasite/internal/adapters/out/metrics"
	"climasite/internal/adapters/out/postgres"
	"climasite/internal/adapters/out/postgres/migrations"
	"climasite/internal/core/application/usecases/commands"
	"climasite/internal/core/application/usecases/queries"
	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/core/ports"
	"climasite/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	dbConnectTimeout   = 30 * time.Second
	cacheCleanupPeriod = 10 * time.Minute
	redisKeyPrefix     = "climasite:"
)

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger
	clock  kernel.Clock

	gormDB      *gorm.DB
	sqlDB       *sql.DB
	cache       ports.Cache
	redisClient *redis.Client
	recorder    *metrics.Recorder
	uowFactory  *postgres.GormUnitOfWorkFactory
}

// NewCompositionRoot connects to the database, applies migrations and selects
// the cache backend.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	gormDB, sqlDB, err := postgres.Open(ctx, ConnectionConfig(cfg), logger)
	if err != nil {
		return nil, err
	}

	if err = migrations.Up(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	root := &CompositionRoot{
		cfg:      cfg,
		logger:   logger,
		clock:    kernel.NewSystemClock(),
		gormDB:   gormDB,
		sqlDB:    sqlDB,
		recorder: metrics.NewRecorder(),
	}

	if cfg.RedisAddr != "" {
		client, redisErr := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if redisErr != nil {
			_ = sqlDB.Close()
			return nil, redisErr
		}
		root.redisClient = client
		root.cache = cache.NewRedisCache(client, redisKeyPrefix, cfg.CacheTTL)
		logger.Info("using redis cache", "addr", cfg.RedisAddr)
	} else {
		root.cache = cache.NewMemoryCache(cfg.CacheTTL, cacheCleanupPeriod)
		logger.Info("using in-process cache")
	}

	invalidator := queries.NewOrderCacheInvalidator(root.cache, cfg.CacheSettleDelay, logger)
	root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, invalidator.Evict)

	return root, nil
}

// ConnectionConfig extracts the database settings.
func ConnectionConfig(cfg Config) postgres.ConnectionConfig {
	return postgres.ConnectionConfig{
		Host:           cfg.DBHost,
		Port:           cfg.DBPort,
		User:           cfg.DBUser,
		Password:       cfg.DBPassword,
		DBName:         cfg.DBName,
		SSLMode:        cfg.DBSslMode,
		ConnectTimeout: dbConnectTimeout,
	}
}

// Close releases the database pool and the Redis client.
func (c *CompositionRoot) Close() error {
	var errs []error
	if c.redisClient != nil {
		errs = append(errs, c.redisClient.Close())
	}
	errs = append(errs, c.sqlDB.Close())
	return errors.Join(errs...)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
	return &h
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() *commands.ChangeOrderStatusCommandHandler {
	h := commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.clock)
	return &h
}

func (c *CompositionRoot) CreateAddOrderNoteCommandHandler() *commands.AddOrderNoteCommandHandler {
	h := commands.NewAddOrderNoteCommandHandler(c.orderUoWFactory(), c.clock)
	return &h
}

func (c *CompositionRoot) CreateSetTrackingInfoCommandHandler() *commands.SetTrackingInfoCommandHandler {
	h := commands.NewSetTrackingInfoCommandHandler(c.orderUoWFactory(), c.clock)
	return &h
}

func (c *CompositionRoot) CreateExpirePendingOrdersCommandHandler() *commands.ExpirePendingOrdersCommandHandler {
	h := commands.NewExpirePendingOrdersCommandHandler(c.orderUoWFactory(), c.clock)
	return &h
}

func (c *CompositionRoot) CreateHandlePaymentWebhookCommandHandler() *commands.HandlePaymentWebhookCommandHandler {
	var f commands.WebhookUoWFactory = FuncWebhookUoWFactory(func() commands.WebhookUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewHandlePaymentWebhookCommandHandler(f, c.recorder, c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreatePruneWebhookEventsCommandHandler() *commands.PruneWebhookEventsCommandHandler {
	var f commands.EventLogUoWFactory = FuncEventLogUoWFactory(func() commands.EventLogUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewPruneWebhookEventsCommandHandler(f, c.clock)
	return &h
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.cache, c.cfg.CacheTTL, c.logger)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

// CreateRouter wires every use case into the HTTP server.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		ChangeOrderStatus: c.CreateChangeOrderStatusCommandHandler(),
		AddOrderNote:      c.CreateAddOrderNoteCommandHandler(),
		SetTrackingInfo:   c.CreateSetTrackingInfoCommandHandler(),
		PaymentWebhook:    c.CreateHandlePaymentWebhookCommandHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		ListOrders:        c.CreateListOrdersQueryHandler(),
	}, c.cfg.DefaultCurrency, c.logger)

	return httpin.NewRouter(httpin.RouterConfig{
		Server:         server,
		AdminSecret:    []byte(c.cfg.AdminJWTSecret),
		Metrics:        c.recorder,
		MetricsHandler: c.recorder.Handler(),
		Logger:         c.logger,
	})
}

// CreateJobManager wires the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(jobs.Config{
		ExpirePendingSchedule: c.cfg.ExpirePendingSchedule,
		PendingOrderTTL:       c.cfg.PendingOrderTTL,
		PruneEventsSchedule:   c.cfg.PruneEventsSchedule,
		WebhookEventRetention: c.cfg.WebhookEventRetention,
	},
		c.CreateExpirePendingOrdersCommandHandler(),
		c.CreatePruneWebhookEventsCommandHandler(),
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncWebhookUoWFactory func() commands.WebhookUoW

func (f FuncWebhookUoWFactory) Create() commands.WebhookUoW {
	return f()
}

type FuncEventLogUoWFactory func() commands.EventLogUoW

func (f FuncEventLogUoWFactory) Create() commands.EventLogUoW {
	return f()
}

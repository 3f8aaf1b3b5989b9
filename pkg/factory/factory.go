package factory

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"instudio/internal/api"
	"instudio/internal/config"
	"instudio/internal/database"
	"instudio/internal/domain"
	"instudio/internal/repository"
	"instudio/internal/repository/memory"
	"instudio/internal/service"
	"instudio/pkg/cache"
	pkgdb "instudio/pkg/database"
	"instudio/pkg/logger"
	"instudio/pkg/password"
	"instudio/pkg/redis"
	"instudio/pkg/token"
	"instudio/pkg/tracing"
	"instudio/pkg/validation"
)

type Factory interface {
	GetLogger() logger.Logger
	GetConfig() *config.Config
	GetCache() cache.Cache
	GetTokenManager() domain.TokenManager
	GetServices() api.Services
	GetProbes() []api.Probe

	// Close releases the database, the Redis client and the tracer provider.
	Close(ctx context.Context) error
}

type AppFactory struct {
	config       *config.Config
	logger       logger.Logger
	connections  *pkgdb.ConnectionManager
	redisClient  *goredis.Client
	uow          domain.UnitOfWork
	cache        cache.Cache
	cacheManager cache.CacheStrategy
	tokens       *token.Manager
	services     api.Services
	probes       []api.Probe
	shutdown     func(context.Context) error
}

func NewFactory(ctx context.Context) (Factory, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	f := &AppFactory{
		config: cfg,
		logger: logger.New(logger.LogLevel(cfg.LogLevel), nil),
	}

	f.shutdown, err = tracing.Init(ctx, tracing.Options{
		Enabled:     cfg.Telemetry.Enabled,
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		return nil, err
	}

	if err := f.initStore(ctx); err != nil {
		_ = f.Close(ctx)
		return nil, err
	}
	if err := f.initCache(ctx); err != nil {
		_ = f.Close(ctx)
		return nil, err
	}

	f.tokens = token.NewManager(token.Options{
		Secret: cfg.Auth.Secret,
		Issuer: cfg.Auth.Issuer,
		TTL:    cfg.Auth.TTL,
	}, f.cache)

	f.initServices()
	f.initProbes()

	return f, nil
}

func (f *AppFactory) initStore(ctx context.Context) error {
	if f.config.Database.Driver == config.DriverMemory {
		f.logger.Warn("Using in-memory store, data is lost on restart", map[string]interface{}{})
		f.uow = memory.NewStore()
		return nil
	}

	cm, err := pkgdb.NewConnectionManager(ctx, f.config.Database, f.logger)
	if err != nil {
		return err
	}
	f.connections = cm

	dialect := database.DialectSQLite
	if f.config.Database.Driver == config.DriverPostgres {
		dialect = database.DialectPostgres
	}
	if err := database.NewMigrationService(cm.DB(), dialect, f.logger).RunMigrations(ctx); err != nil {
		return fmt.Errorf("migrations could not be applied: %w", err)
	}

	f.uow = repository.NewStore(cm.DB(), f.logger)
	return nil
}

func (f *AppFactory) initCache(ctx context.Context) error {
	if !f.config.Redis.Enabled {
		f.cache = cache.NewMemoryCache()
		f.cacheManager = cache.NewCacheManager(f.cache, f.logger)
		return nil
	}

	client, err := redis.NewClient(ctx, f.config.Redis)
	if err != nil {
		return err
	}
	f.redisClient = client
	f.cache = cache.NewRedisCache(client, f.logger, f.config.Redis.Prefix)
	f.cacheManager = cache.NewCacheManager(f.cache, f.logger)
	return nil
}

func (f *AppFactory) initServices() {
	v := validation.New()
	hasher := password.NewBcryptHasher(password.DefaultCost)

	products := service.NewProductService(f.uow, v, f.logger)

	f.services = api.Services{
		Auth:         service.NewAuthService(f.uow, v, hasher, f.tokens, f.logger),
		Users:        service.NewUserService(f.uow, v, f.logger),
		Products:     service.NewCachedProductService(products, f.cache, f.cacheManager, f.logger),
		Images:       service.NewImageService(f.uow, v, f.logger),
		Orders:       service.NewOrderService(f.uow, v, f.logger),
		OrderDetails: service.NewOrderDetailService(f.uow, v, f.logger),
		Payments:     service.NewPaymentService(f.uow, v, f.logger),
		AuditLogs:    service.NewAuditLogService(f.uow, f.logger),
	}
}

func (f *AppFactory) initProbes() {
	if f.connections != nil {
		f.probes = append(f.probes, api.Probe{
			Name:  "database",
			Check: f.connections.Ping,
			Stats: f.connections.Stats,
		})
	}

	cacheProbe := api.Probe{Name: "cache", Check: f.cache.Ping}
	if f.redisClient != nil {
		client := f.redisClient
		cacheProbe.Stats = func() map[string]interface{} { return redis.Stats(client) }
	}
	f.probes = append(f.probes, cacheProbe)
}

func (f *AppFactory) GetLogger() logger.Logger {
	return f.logger
}

func (f *AppFactory) GetConfig() *config.Config {
	return f.config
}

func (f *AppFactory) GetCache() cache.Cache {
	return f.cache
}

func (f *AppFactory) GetTokenManager() domain.TokenManager {
	return f.tokens
}

func (f *AppFactory) GetServices() api.Services {
	return f.services
}

func (f *AppFactory) GetProbes() []api.Probe {
	return f.probes
}

func (f *AppFactory) Close(ctx context.Context) error {
	var errs []error

	if f.redisClient != nil {
		if err := f.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if f.connections != nil {
		if err := f.connections.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	if f.shutdown != nil {
		if err := f.shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracing: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown finished with errors: %v", errs)
	}
	return nil
}

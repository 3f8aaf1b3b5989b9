package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"instudio/internal/config"
	"instudio/pkg/circuitbreaker"
	"instudio/pkg/logger"
)

var ErrUnavailable = errors.New("database unavailable")

// ConnectionManager owns the *sql.DB of the configured driver. Health
// checks go through a circuit breaker so a dead database is reported fast.
type ConnectionManager struct {
	db             *sql.DB
	driver         string
	logger         logger.Logger
	circuitBreaker *circuitbreaker.CircuitBreaker
}

func NewConnectionManager(ctx context.Context, cfg config.DatabaseConfig, log logger.Logger) (*ConnectionManager, error) {
	switch cfg.Driver {
	case config.DriverSQLite, config.DriverPostgres:
	default:
		return nil, fmt.Errorf("driver %q has no SQL connection", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	configurePool(db, cfg)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	cm := &ConnectionManager{db: db, driver: cfg.Driver, logger: log}
	cm.circuitBreaker = circuitbreaker.New(circuitbreaker.Settings{
		Name:        "database",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Warn("Circuit breaker state changed", map[string]interface{}{
				"name": name,
				"from": from.String(),
				"to":   to.String(),
			})
		},
	})

	log.Info("Database connection established", map[string]interface{}{"driver": cfg.Driver})
	return cm, nil
}

// sqlite allows one writer at a time, so its pool is a single connection.
func configurePool(db *sql.DB, cfg config.DatabaseConfig) {
	if cfg.Driver == config.DriverSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		return
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
}

func (cm *ConnectionManager) DB() *sql.DB {
	return cm.db
}

func (cm *ConnectionManager) Driver() string {
	return cm.driver
}

func (cm *ConnectionManager) Ping(ctx context.Context) error {
	err := cm.circuitBreaker.Execute(func() error {
		return cm.db.PingContext(ctx)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitBreakerOpen) || errors.Is(err, circuitbreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func (cm *ConnectionManager) Stats() map[string]interface{} {
	s := cm.db.Stats()
	return map[string]interface{}{
		"driver":                cm.driver,
		"open_connections":      s.OpenConnections,
		"in_use":                s.InUse,
		"idle":                  s.Idle,
		"circuit_breaker_state": cm.circuitBreaker.State().String(),
	}
}

func (cm *ConnectionManager) Close() error {
	if err := cm.db.Close(); err != nil {
		cm.logger.Error("Failed to close database", map[string]interface{}{"error": err.Error()})
		return err
	}
	return nil
}

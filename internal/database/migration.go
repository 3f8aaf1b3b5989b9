package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"instudio/pkg/logger"
)

// Dialect covers the few DDL differences between sqlite3 and postgres.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

func (d Dialect) serialPrimaryKey() string {
	if d == DialectPostgres {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

type MigrationFunc func(ctx context.Context, tx *sql.Tx, d Dialect) error

type Migration struct {
	Name string
	Func MigrationFunc
}

type MigrationService struct {
	db      *sql.DB
	dialect Dialect
	logger  logger.Logger
	now     func() time.Time
}

func NewMigrationService(db *sql.DB, dialect Dialect, logger logger.Logger) *MigrationService {
	return &MigrationService{
		db:      db,
		dialect: dialect,
		logger:  logger,
		now:     time.Now,
	}
}

func (m *MigrationService) InitMigrationTable(ctx context.Context) error {
	query := fmt.Sprintf(`
    CREATE TABLE IF NOT EXISTS migrations (
        id %s,
        name TEXT NOT NULL UNIQUE,
        applied_at TIMESTAMP NOT NULL
    )
    `, m.dialect.serialPrimaryKey())

	if _, err := m.db.ExecContext(ctx, query); err != nil {
		m.logger.Error("Failed to create migrations table", map[string]interface{}{"error": err.Error()})
		return err
	}
	return nil
}

func (m *MigrationService) IsMigrationApplied(ctx context.Context, name string) (bool, error) {
	var count int
	err := m.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM migrations WHERE name = $1", name).Scan(&count)
	if err != nil {
		m.logger.Error("Failed to check migration state", map[string]interface{}{"name": name, "error": err.Error()})
		return false, err
	}
	return count > 0, nil
}

// ApplyMigration runs fn and records it in one transaction, so a failed
// migration leaves neither schema changes nor a migrations row behind.
func (m *MigrationService) ApplyMigration(ctx context.Context, name string, fn MigrationFunc) (err error) {
	applied, err := m.IsMigrationApplied(ctx, name)
	if err != nil {
		return err
	}
	if applied {
		m.logger.Debug("Migration already applied", map[string]interface{}{"name": name})
		return nil
	}

	m.logger.Info("Applying migration", map[string]interface{}{"name": name})

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		m.logger.Error("Failed to begin migration transaction", map[string]interface{}{"error": err.Error()})
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
			m.logger.Error("Migration rolled back", map[string]interface{}{"name": name, "error": err.Error()})
		}
	}()

	if err = fn(ctx, tx, m.dialect); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, "INSERT INTO migrations (name, applied_at) VALUES ($1, $2)", name, m.now()); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	m.logger.Info("Migration applied", map[string]interface{}{"name": name})
	return nil
}

func (m *MigrationService) RunMigrations(ctx context.Context) error {
	m.logger.Info("Running migrations", map[string]interface{}{"dialect": string(m.dialect)})

	if err := m.InitMigrationTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, migration := range Migrations() {
		if err := m.ApplyMigration(ctx, migration.Name, migration.Func); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.Name, err)
		}
	}
	return nil
}

func Migrations() []Migration {
	return []Migration{
		{"create_users_table", CreateUsersTable},
		{"create_products_table", CreateProductsTable},
		{"create_images_table", CreateImagesTable},
		{"create_orders_table", CreateOrdersTable},
		{"create_order_details_table", CreateOrderDetailsTable},
		{"create_payments_table", CreatePaymentsTable},
		{"create_sequences_table", CreateSequencesTable},
		{"create_audit_logs_table", CreateAuditLogsTable},
	}
}

func execAll(ctx context.Context, tx *sql.Tx, statements ...string) error {
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func CreateUsersTable(ctx context.Context, tx *sql.Tx, _ Dialect) error {
	return execAll(ctx, tx, `
    CREATE TABLE IF NOT EXISTS users (
        id TEXT PRIMARY KEY,
        username VARCHAR(100) NOT NULL UNIQUE,
        password_hash TEXT NOT NULL,
        role VARCHAR(20) NOT NULL,
        name VARCHAR(100) NOT NULL DEFAULT '',
        email VARCHAR(100) NOT NULL DEFAULT '',
        phone VARCHAR(20) NOT NULL DEFAULT '',
        address VARCHAR(200) NOT NULL DEFAULT '',
        status INTEGER NOT NULL DEFAULT 1,
        created_at TIMESTAMP NOT NULL,
        updated_at TIMESTAMP NOT NULL
    )
    `)
}

func CreateProductsTable(ctx context.Context, tx *sql.Tx, _ Dialect) error {
	return execAll(ctx, tx, `
    CREATE TABLE IF NOT EXISTS products (
        id TEXT PRIMARY KEY,
        product_name VARCHAR(100) NOT NULL UNIQUE,
        product_model VARCHAR(100) NOT NULL DEFAULT '',
        cost_estimation NUMERIC(18,2) NOT NULL DEFAULT 0,
        status INTEGER NOT NULL DEFAULT 1,
        user_id TEXT REFERENCES users (id),
        created_at TIMESTAMP NOT NULL,
        updated_at TIMESTAMP NOT NULL
    )
    `,
		`CREATE INDEX IF NOT EXISTS products_status_idx ON products (status)`,
	)
}

func CreateImagesTable(ctx context.Context, tx *sql.Tx, _ Dialect) error {
	return execAll(ctx, tx, `
    CREATE TABLE IF NOT EXISTS images (
        id TEXT PRIMARY KEY,
        image_alt VARCHAR(100) NOT NULL DEFAULT '',
        image_path VARCHAR(250) NOT NULL,
        status INTEGER NOT NULL DEFAULT 1,
        product_id TEXT REFERENCES products (id),
        user_id TEXT REFERENCES users (id),
        created_at TIMESTAMP NOT NULL,
        updated_at TIMESTAMP NOT NULL
    )
    `)
}

func CreateOrdersTable(ctx context.Context, tx *sql.Tx, _ Dialect) error {
	return execAll(ctx, tx, `
    CREATE TABLE IF NOT EXISTS orders (
        id TEXT PRIMARY KEY,
        order_code VARCHAR(50) NOT NULL UNIQUE,
        order_date VARCHAR(30) NOT NULL,
        visit_schedule VARCHAR(50) NOT NULL,
        visit_address VARCHAR(200) NOT NULL,
        order_amount NUMERIC(18,2) NOT NULL DEFAULT 0,
        status INTEGER NOT NULL DEFAULT 0,
        user_id TEXT NOT NULL REFERENCES users (id),
        created_at TIMESTAMP NOT NULL,
        updated_at TIMESTAMP NOT NULL
    )
    `,
		`CREATE INDEX IF NOT EXISTS orders_user_id_idx ON orders (user_id)`,
	)
}

func CreateOrderDetailsTable(ctx context.Context, tx *sql.Tx, _ Dialect) error {
	return execAll(ctx, tx, `
    CREATE TABLE IF NOT EXISTS order_details (
        id TEXT PRIMARY KEY,
        time_estimation BIGINT NOT NULL,
        subtotal NUMERIC(18,2) NOT NULL,
        product_size DOUBLE PRECISION NOT NULL,
        product_theme VARCHAR(100) NOT NULL,
        order_id TEXT NOT NULL REFERENCES orders (id),
        product_id TEXT REFERENCES products (id),
        created_at TIMESTAMP NOT NULL
    )
    `,
		`CREATE INDEX IF NOT EXISTS order_details_order_id_idx ON order_details (order_id)`,
	)
}

func CreatePaymentsTable(ctx context.Context, tx *sql.Tx, _ Dialect) error {
	return execAll(ctx, tx, `
    CREATE TABLE IF NOT EXISTS payments (
        id TEXT PRIMARY KEY,
        payment_date VARCHAR(30) NOT NULL,
        payment_amount NUMERIC(18,2) NOT NULL,
        payment_method VARCHAR(50) NOT NULL,
        payment_detail VARCHAR(200) NOT NULL,
        account_number VARCHAR(50),
        order_id TEXT NOT NULL REFERENCES orders (id),
        created_at TIMESTAMP NOT NULL
    )
    `,
		`CREATE INDEX IF NOT EXISTS payments_order_id_idx ON payments (order_id)`,
	)
}

// CreateSequencesTable backs order codes. The counter starts at the number
// of orders already present so existing codes are not reissued.
func CreateSequencesTable(ctx context.Context, tx *sql.Tx, _ Dialect) error {
	return execAll(ctx, tx, `
    CREATE TABLE IF NOT EXISTS sequences (
        name VARCHAR(50) PRIMARY KEY,
        value BIGINT NOT NULL
    )
    `,
		`INSERT INTO sequences (name, value) SELECT 'order_code', COUNT(*) FROM orders`,
	)
}

func CreateAuditLogsTable(ctx context.Context, tx *sql.Tx, d Dialect) error {
	return execAll(ctx, tx, fmt.Sprintf(`
    CREATE TABLE IF NOT EXISTS audit_logs (
        id %s,
        entity_type VARCHAR(30) NOT NULL,
        entity_id TEXT NOT NULL,
        action VARCHAR(20) NOT NULL,
        actor_id TEXT NOT NULL DEFAULT '',
        details TEXT,
        created_at TIMESTAMP NOT NULL
    )
    `, d.serialPrimaryKey()),
		`CREATE INDEX IF NOT EXISTS audit_logs_entity_idx ON audit_logs (entity_type, entity_id)`,
	)
}

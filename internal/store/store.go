package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"microblog/internal/config"
)

const pgUniqueViolation = "23505"

// Store owns the connection pool. It holds no per-request state: every
// unit of work gets its own transaction through WithTx.
type Store struct {
	db     *gorm.DB
	logger *logrus.Logger
}

type Options struct {
	Logger     *logrus.Logger
	GormLogger gormlogger.Interface
}

// Open connects to postgres when a database host is configured and to a
// local sqlite file otherwise, then migrates the schema.
func Open(cfg config.DatabaseConfig, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
	}
	gormLog := opts.GormLogger
	if gormLog == nil {
		gormLog = gormlogger.Default.LogMode(gormlogger.Silent)
	}
	gormCfg := &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	if cfg.Postgres() {
		logger.WithField("host", cfg.Host).Info("Connecting to PostgreSQL database")
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	} else {
		logger.WithField("path", cfg.SQLitePath).Info("Connecting to SQLite database")
		db, err = gorm.Open(sqlite.Open(SQLiteDSN(cfg.SQLitePath)), gormCfg)
	}
	if err != nil {
		logger.WithError(err).Error("Failed to connect to the database")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(40)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	s := &Store{db: db, logger: logger}
	if err := s.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database connection successful")
	return s, nil
}

// SQLiteDSN enables foreign keys (cascades are enforced by the engine),
// waits on locks instead of failing, and starts every transaction with
// BEGIN IMMEDIATE so concurrent writers serialize.
func SQLiteDSN(path string) string {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_busy_timeout", "5000")
	params.Set("_txlock", "immediate")
	return path + "?" + params.Encode()
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(AllModels()...)
}

// DB exposes the pool for read-only callers outside a transaction.
func (s *Store) DB(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// WithTx runs fn in a single transaction. It commits when fn returns nil
// and rolls back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// IsUniqueViolation reports whether err comes from a unique or primary
// key constraint, whichever driver produced it.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trivia-api/internal/config"
	"trivia-api/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers "sqlite3"
	_ "github.com/sijms/go-ora/v2"  // registers "oracle"
	"go.uber.org/zap"
)

// Open connects to the configured backend and pings it.
func Open(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	dsn := cfg.GetDSN()
	if cfg.DB.Driver == config.DriverSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sqlx.Open(cfg.DB.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DB.Driver, err)
	}

	if cfg.DB.Driver == config.DriverSQLite {
		// one writer; also keeps :memory: databases on a single connection
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.DB.Driver, err)
	}

	logger.Get().Info("Connected to database", zap.String("driver", cfg.DB.Driver))
	return db, nil
}

// sqliteDSN enables foreign keys and a busy timeout unless the caller already set query options.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_foreign_keys=on&_busy_timeout=5000"
}

package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"trivia-api/internal/config"
	"trivia-api/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx5://
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3" // sqlite3://
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// Direction selects which migration files are applied.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

func migrationDir(driver string) (string, error) {
	switch driver {
	case config.DriverSQLite:
		return "migrations/sqlite", nil
	case config.DriverPostgres:
		return "migrations/postgres", nil
	case config.DriverOracle:
		return "migrations/oracle", nil
	default:
		return "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

// RunMigrations applies the embedded schema for cfg.DB.Driver. db is only used for Oracle,
// which golang-migrate does not support through go-ora.
func RunMigrations(ctx context.Context, cfg *config.Config, db *sqlx.DB, dir Direction) error {
	srcDir, err := migrationDir(cfg.DB.Driver)
	if err != nil {
		return err
	}

	if cfg.DB.Driver == config.DriverOracle {
		return runOracleMigrations(ctx, db, srcDir, dir)
	}

	src, err := iofs.New(migrationsFS, srcDir)
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}
	dbURL, err := cfg.MigrationURL()
	if err != nil {
		return err
	}
	if cfg.DB.Driver == config.DriverSQLite {
		dbURL = sqliteDSN(dbURL)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}
	defer m.Close()

	if dir == Down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations %s: %w", dir, err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("could not read migration version: %w", verr)
	}
	logger.Get().Info("Migrations completed",
		zap.String("driver", cfg.DB.Driver),
		zap.String("direction", string(dir)),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

type migrationFile struct {
	version int
	name    string
}

// migrationFiles lists the files of one direction in apply order.
func migrationFiles(fsys fs.FS, dir string, d Direction) ([]migrationFile, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}

	suffix := "." + string(d) + ".sql"
	var files []migrationFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		prefix, _, ok := strings.Cut(e.Name(), "_")
		if !ok {
			return nil, fmt.Errorf("migration %s has no version prefix", e.Name())
		}
		v, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("migration %s has invalid version: %w", e.Name(), err)
		}
		files = append(files, migrationFile{version: v, name: e.Name()})
	}

	sort.Slice(files, func(i, j int) bool {
		if d == Down {
			return files[i].version > files[j].version
		}
		return files[i].version < files[j].version
	})
	return files, nil
}

// splitStatements breaks a script on ";" line endings. go-ora executes one statement per call.
func splitStatements(script string) []string {
	var stmts []string
	var b strings.Builder
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSuffix(strings.TrimSpace(b.String()), ";")
			stmts = append(stmts, stmt)
			b.Reset()
		}
	}
	if rest := strings.TrimSpace(b.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}

const oracleVersionTable = "trivia_schema_migrations"

func runOracleMigrations(ctx context.Context, db *sqlx.DB, dir string, d Direction) error {
	if db == nil {
		return errors.New("oracle migrations need an open database")
	}

	// ORA-00955: name is already used by an existing object
	_, err := db.ExecContext(ctx, "CREATE TABLE "+oracleVersionTable+" (version NUMBER(10) PRIMARY KEY)")
	if err != nil && !strings.Contains(err.Error(), "ORA-00955") {
		return fmt.Errorf("could not create %s: %w", oracleVersionTable, err)
	}

	var applied []int
	if err := db.SelectContext(ctx, &applied, "SELECT version FROM "+oracleVersionTable); err != nil {
		return fmt.Errorf("could not read applied migrations: %w", err)
	}
	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	files, err := migrationFiles(migrationsFS, dir, d)
	if err != nil {
		return err
	}

	for _, f := range files {
		if (d == Up && done[f.version]) || (d == Down && !done[f.version]) {
			continue
		}

		content, err := fs.ReadFile(migrationsFS, path.Join(dir, f.name))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", f.name, err)
		}
		for _, stmt := range splitStatements(string(content)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %w", f.name, err)
			}
		}

		record := "INSERT INTO " + oracleVersionTable + " (version) VALUES (:1)"
		if d == Down {
			record = "DELETE FROM " + oracleVersionTable + " WHERE version = :1"
		}
		if _, err := db.ExecContext(ctx, record, f.version); err != nil {
			return fmt.Errorf("could not record migration %s: %w", f.name, err)
		}

		logger.Get().Info("Executed migration", zap.String("file", f.name))
	}

	logger.Get().Info("Migrations completed", zap.String("driver", config.DriverOracle), zap.String("direction", string(d)))
	return nil
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"amabackend/internal/query"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate applies (up) or reverts (down) the SQL files for env.DBDriver.
// Postgres files live in env.MigrationsPath, MySQL files in its mysql/
// subdirectory.
func Migrate(env Env, direction string) error {
	sourceURL, databaseURL, err := migrationTarget(env)
	if err != nil {
		return err
	}

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer m.Close()

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		slog.Info("migrations already applied", "direction", direction)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	version, dirty, _ := m.Version()
	slog.Info("migrations applied", "direction", direction, "version", version, "dirty", dirty)
	return nil
}

// migrationTarget resolves the file source and the migrate database URL.
// The MySQL DSN used by database/sql has no scheme, migrate needs mysql://.
func migrationTarget(env Env) (source, database string, err error) {
	dialect, err := query.ParseDialect(env.DBDriver)
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(env.DatabaseURL) == "" {
		return "", "", fmt.Errorf("DATABASE_URL must be set")
	}

	dir := env.MigrationsPath
	database = env.DatabaseURL
	if dialect == query.MySQL {
		dir = filepath.Join(dir, "mysql")
		if !strings.HasPrefix(database, "mysql://") {
			database = "mysql://" + database
		}
	}
	return "file://" + filepath.ToSlash(dir), database, nil
}

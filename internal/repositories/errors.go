package repositories

import (
	"database/sql"
	"errors"

	intconfig "amabackend/internal/config"
	"amabackend/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	mysqlDuplicateEntry = 1062
	pgUniqueViolation   = "23505"
)

// conn returns db or the shared pool.
func conn(db *sql.DB) *sql.DB {
	if db != nil {
		return db
	}
	return intconfig.DB
}

// mapWriteError turns unique-key violations into ConflictError and passes
// every other driver error through.
func mapWriteError(resource string, err error) error {
	if err == nil {
		return nil
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return domain.ConflictError{Resource: resource, Msg: "record already exists", Err: err}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return domain.ConflictError{Resource: resource, Msg: "record already exists", Err: err}
	}
	return err
}

func notFoundIfNoRows(resource string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return err
}

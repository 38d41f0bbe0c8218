package db

import (
	"context"
	"database/sql"
	"errors"

	"amabackend/internal/query"

	sq "github.com/Masterminds/squirrel"
)

// HasTable reports whether table exists in the connection's current schema.
func HasTable(ctx context.Context, db *sql.DB, d query.Dialect, table string) (bool, error) {
	schema := sq.Expr("table_schema = current_schema()")
	if d == query.MySQL {
		schema = sq.Expr("table_schema = DATABASE()")
	}
	sqlStr, args, err := d.Select("table_name").
		From("information_schema.tables").
		Where(schema).
		Where(sq.Eq{"table_name": table}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, err
	}

	var name sql.NullString
	err = db.QueryRowContext(ctx, sqlStr, args...).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return name.Valid && name.String != "", nil
}

// MissingTables returns the subset of tables that do not exist.
func MissingTables(ctx context.Context, db *sql.DB, d query.Dialect, tables ...string) ([]string, error) {
	missing := []string{}
	for _, t := range tables {
		ok, err := HasTable(ctx, db, d, t)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, t)
		}
	}
	return missing, nil
}

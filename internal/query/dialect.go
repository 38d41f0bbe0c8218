package query

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Dialect selects placeholder style and membership rendering.
type Dialect int

const (
	Postgres Dialect = iota
	MySQL
)

// ParseDialect maps a DB_DRIVER value to a dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	default:
		return Postgres, fmt.Errorf("unsupported database driver %q", name)
	}
}

func (d Dialect) String() string {
	if d == MySQL {
		return "mysql"
	}
	return "postgres"
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == MySQL {
		return "mysql"
	}
	return "pgx"
}

// Builder returns a statement builder using the dialect's placeholders.
func (d Dialect) Builder() sq.StatementBuilderType {
	if d == MySQL {
		return sq.StatementBuilder.PlaceholderFormat(sq.Question)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// Select starts a base skeleton for the compiler.
func (d Dialect) Select(columns ...string) sq.SelectBuilder {
	return d.Builder().Select(columns...)
}

// in renders membership of column in list. Postgres binds the whole list as
// one array; MySQL expands one placeholder per element.
func (d Dialect) in(column string, list any) sq.Sqlizer {
	if d == MySQL {
		return sq.Eq{column: list}
	}
	return sq.Expr(column+" = ANY(?)", list)
}

func (d Dialect) notIn(column string, list any) sq.Sqlizer {
	if d == MySQL {
		return sq.NotEq{column: list}
	}
	return sq.Expr(column+" <> ALL(?)", list)
}

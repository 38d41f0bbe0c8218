package db

import (
	"context"
	"regexp"
	"testing"

	"amabackend/internal/query"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMissingTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1 LIMIT 1")).
		WithArgs("ama").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("ama"))
	mock.ExpectQuery(regexp.QuoteMeta("AND table_name = $1 LIMIT 1")).
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	missing, err := MissingTables(context.Background(), db, query.Postgres, "ama", "users")
	if err != nil {
		t.Fatalf("missing tables error: %v", err)
	}
	if len(missing) != 1 || missing[0] != "users" {
		t.Fatalf("expected users missing, got %v", missing)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHasTableMySQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ? LIMIT 1")).
		WithArgs("ama").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("ama"))

	ok, err := HasTable(context.Background(), db, query.MySQL, "ama")
	if err != nil || !ok {
		t.Fatalf("expected table to exist, got %v %v", ok, err)
	}
}

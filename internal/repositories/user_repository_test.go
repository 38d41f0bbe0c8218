package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"amabackend/internal/domain"
	"amabackend/internal/domain/models"
	"amabackend/internal/query"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestUserFindUsesAlias(t *testing.T) {
	db, mock := newMock(t)
	repo := UserRepository{DB: db, Dialect: query.Postgres}

	p, err := query.ParseJSON[models.UserFilter, models.UserOrder]([]byte(`{
		"filter": {
			"email": {"val": ["ann"], "op": "LIKE"},
			"status": {"val": ["Resigned"], "op": "NEQ"},
			"created_at": {"val": ["2024-01-01"], "op": "GTE"}
		},
		"order": {"last_name": "ASC", "created_at": "DESC"}
	}`))
	if err != nil {
		t.Fatalf("parse params: %v", err)
	}

	created := time.Date(2024, 2, 2, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT u.id, u.first_name, u.last_name, u.email, u.user_type, u.status, u.country, u.created_at FROM users u " +
			"WHERE u.email LIKE $1 AND u.status != $2 AND u.created_at >= $3 " +
			"ORDER BY u.last_name ASC, u.created_at DESC LIMIT 20")).
		WithArgs("ann%", domain.UserStatusResigned, query.NewDate(2024, 1, 1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "user_type", "status", "country", "created_at"}).
			AddRow(int64(1), "Ann", "Lee", "ann@example.com", "Admin", "Active", "CA", created))

	list, err := repo.Find(context.Background(), p)
	if err != nil {
		t.Fatalf("find error: %v", err)
	}
	if len(list) != 1 || list[0].UserType != domain.UserTypeAdmin || !list[0].CreatedAt.Equal(created) {
		t.Fatalf("unexpected rows: %+v", list)
	}
}

func TestUserFindByUserName(t *testing.T) {
	db, mock := newMock(t)
	repo := UserRepository{DB: db, Dialect: query.Postgres}

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE user_name = $1 LIMIT 1")).
		WithArgs("ann").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(int64(1), "Ann", "Lee", "ann", "ann@example.com", "555", "hash", nil,
				"Associate", "Active", "ON", "CA", time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1 LIMIT 1")).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns))

	u, err := repo.FindByUserName(context.Background(), "ann")
	if err != nil {
		t.Fatalf("find error: %v", err)
	}
	if u.PasswordHash != "hash" || u.Photo != nil || !u.Status.IsActive() {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := repo.FindByEmail(context.Background(), "nobody@example.com"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserExists(t *testing.T) {
	db, mock := newMock(t)
	repo := UserRepository{DB: db, Dialect: query.MySQL}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM users WHERE (user_name = ? OR email = ?)")).
		WithArgs("ann", "ann@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	ok, err := repo.Exists(context.Background(), "ann", "ann@example.com")
	if err != nil {
		t.Fatalf("exists error: %v", err)
	}
	if !ok {
		t.Fatalf("expected existing user")
	}
}

func TestUserCreateMapsDuplicates(t *testing.T) {
	tests := []struct {
		name    string
		dialect query.Dialect
		expect  func(sqlmock.Sqlmock)
	}{
		{
			name:    "postgres unique violation",
			dialect: query.Postgres,
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
					WillReturnError(&pgconn.PgError{Code: "23505"})
			},
		},
		{
			name:    "mysql duplicate entry",
			dialect: query.MySQL,
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
					WillReturnError(&mysql.MySQLError{Number: 1062})
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			tt.expect(mock)
			repo := UserRepository{DB: db, Dialect: tt.dialect}
			_, err := repo.Create(context.Background(), models.User{UserName: "ann", Email: "ann@example.com"})
			if !domain.IsConflict(err) {
				t.Fatalf("expected conflict, got %v", err)
			}
		})
	}
}

func TestUserCreatePostgresReturnsID(t *testing.T) {
	db, mock := newMock(t)
	repo := UserRepository{DB: db, Dialect: query.Postgres}

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO users (first_name,last_name,user_name,email,phone,password,photo,user_type,status,state,country) " +
			"VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11) RETURNING id")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))

	id, err := repo.Create(context.Background(), models.User{UserName: "ann"})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if id != 12 {
		t.Fatalf("expected id 12, got %d", id)
	}
}

func TestUserUpdatePassword(t *testing.T) {
	db, mock := newMock(t)
	repo := UserRepository{DB: db, Dialect: query.Postgres}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password = $1 WHERE user_name = $2")).
		WithArgs("newhash", "ann").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password = $1 WHERE user_name = $2")).
		WithArgs("newhash", "ghost").
		WillReturnError(errors.New("connection reset"))

	n, err := repo.UpdatePassword(context.Background(), "ann", "newhash")
	if err != nil || n != 1 {
		t.Fatalf("expected 1 row updated, got %d (%v)", n, err)
	}
	if _, err := repo.UpdatePassword(context.Background(), "ghost", "newhash"); err == nil {
		t.Fatalf("expected driver error to surface")
	}
}

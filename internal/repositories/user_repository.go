package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"amabackend/internal/domain/models"
	"amabackend/internal/query"

	sq "github.com/Masterminds/squirrel"
)

const userResource = "User"

var userColumns = []string{
	"id", "first_name", "last_name", "user_name", "email", "phone", "password",
	"photo", "user_type", "status", "state", "country", "created_at",
}

type UserRepository struct {
	DB           *sql.DB
	Dialect      query.Dialect
	DefaultLimit uint64
}

func (r UserRepository) FindByUserName(ctx context.Context, userName string) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"user_name": userName})
}

func (r UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

func (r UserRepository) findOne(ctx context.Context, cond sq.Eq) (models.User, error) {
	sqlStr, args, err := r.Dialect.Select(userColumns...).From("users").Where(cond).Limit(1).ToSql()
	if err != nil {
		return models.User{}, err
	}
	u, err := scanUser(conn(r.DB).QueryRowContext(ctx, sqlStr, args...))
	if err != nil {
		return models.User{}, notFoundIfNoRows(userResource, err)
	}
	return u, nil
}

// Exists reports whether a user already holds userName or email.
func (r UserRepository) Exists(ctx context.Context, userName, email string) (bool, error) {
	sqlStr, args, err := r.Dialect.Select("COUNT(1)").From("users").
		Where(sq.Or{sq.Eq{"user_name": userName}, sq.Eq{"email": email}}).
		ToSql()
	if err != nil {
		return false, err
	}
	var n int64
	if err := conn(r.DB).QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

// Create stores u with its password already hashed and returns the new id.
func (r UserRepository) Create(ctx context.Context, u models.User) (int64, error) {
	ins := r.Dialect.Builder().Insert("users").
		Columns("first_name", "last_name", "user_name", "email", "phone", "password",
			"photo", "user_type", "status", "state", "country").
		Values(u.FirstName, u.LastName, u.UserName, u.Email, u.Phone, u.PasswordHash,
			u.Photo, u.UserType, u.Status, u.State, u.Country)

	if r.Dialect == query.Postgres {
		sqlStr, args, err := ins.Suffix("RETURNING id").ToSql()
		if err != nil {
			return 0, err
		}
		var id int64
		if err := conn(r.DB).QueryRowContext(ctx, sqlStr, args...).Scan(&id); err != nil {
			return 0, mapWriteError(userResource, err)
		}
		return id, nil
	}

	sqlStr, args, err := ins.ToSql()
	if err != nil {
		return 0, err
	}
	res, err := conn(r.DB).ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, mapWriteError(userResource, err)
	}
	return res.LastInsertId()
}

// UpdatePassword replaces the stored hash and returns the number of rows touched.
func (r UserRepository) UpdatePassword(ctx context.Context, userName, hash string) (int64, error) {
	sqlStr, args, err := r.Dialect.Builder().Update("users").
		Set("password", hash).
		Where(sq.Eq{"user_name": userName}).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := conn(r.DB).ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UserListAlias qualifies user list columns against UserListBase.
const UserListAlias = "u."

func UserListBase(d query.Dialect) sq.SelectBuilder {
	return d.Select(
		"u.id", "u.first_name", "u.last_name", "u.email",
		"u.user_type", "u.status", "u.country", "u.created_at",
	).From("users u")
}

// Find lists users matching p, compiled against "users u".
func (r UserRepository) Find(ctx context.Context, p *models.UserParams) ([]models.UserList, error) {
	limit := r.DefaultLimit
	if limit == 0 {
		limit = 20
	}
	st, err := query.Compile(r.Dialect, UserListBase(r.Dialect), UserListAlias, limit, p)
	if err != nil {
		return nil, err
	}

	rows, err := conn(r.DB).QueryContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	list := []models.UserList{}
	for rows.Next() {
		var u models.UserList
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email,
			&u.UserType, &u.Status, &u.Country, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan users: %w", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return list, nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var (
		u     models.User
		photo sql.NullString
	)
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.UserName, &u.Email, &u.Phone,
		&u.PasswordHash, &photo, &u.UserType, &u.Status, &u.State, &u.Country, &u.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	if photo.Valid && strings.TrimSpace(photo.String) != "" {
		p := photo.String
		u.Photo = &p
	}
	return u, nil
}

package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"amabackend/internal/domain"
	"amabackend/internal/domain/models"
	"amabackend/internal/query"

	sq "github.com/Masterminds/squirrel"
)

const amaResource = "AMA"

var amaColumns = []string{"id", "name", "description", "country", "content", "status", "effective_date"}

// AmaRepository wraps DB access for the ama table.
type AmaRepository struct {
	DB           *sql.DB
	Dialect      query.Dialect
	DefaultLimit uint64
}

func (r AmaRepository) limit() uint64 {
	if r.DefaultLimit == 0 {
		return 20
	}
	return r.DefaultLimit
}

// Create inserts a and returns the stored record.
func (r AmaRepository) Create(ctx context.Context, a models.Ama) (models.Ama, error) {
	if a.Status == "" {
		a.Status = domain.StatusActive
	}
	cols := []string{"name", "description", "country", "content", "status"}
	vals := []any{a.Name, a.Description, a.Country, a.Content, a.Status}
	if a.EffectiveDate != nil {
		cols = append(cols, "effective_date")
		vals = append(vals, *a.EffectiveDate)
	}
	ins := r.Dialect.Builder().Insert("ama").Columns(cols...).Values(vals...)

	if r.Dialect == query.Postgres {
		sqlStr, args, err := ins.Suffix("RETURNING " + strings.Join(amaColumns, ", ")).ToSql()
		if err != nil {
			return models.Ama{}, err
		}
		created, err := scanAma(conn(r.DB).QueryRowContext(ctx, sqlStr, args...))
		if err != nil {
			return models.Ama{}, mapWriteError(amaResource, err)
		}
		return created, nil
	}

	sqlStr, args, err := ins.ToSql()
	if err != nil {
		return models.Ama{}, err
	}
	res, err := conn(r.DB).ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return models.Ama{}, mapWriteError(amaResource, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Ama{}, err
	}
	return r.FindByID(ctx, int32(id))
}

func (r AmaRepository) FindByID(ctx context.Context, id int32) (models.Ama, error) {
	sqlStr, args, err := r.Dialect.Select(amaColumns...).From("ama").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Ama{}, err
	}
	a, err := scanAma(conn(r.DB).QueryRowContext(ctx, sqlStr, args...))
	if err != nil {
		return models.Ama{}, notFoundIfNoRows(amaResource, err)
	}
	return a, nil
}

// AmaListBase is the select skeleton list queries compile onto.
func AmaListBase(d query.Dialect) sq.SelectBuilder {
	return d.Select("id", "content", "status", "effective_date").From("ama")
}

// Find lists AMA records matching p. p may be nil.
func (r AmaRepository) Find(ctx context.Context, p *models.AmaParams) ([]models.AmaList, error) {
	st, err := query.Compile(r.Dialect, AmaListBase(r.Dialect), "", r.limit(), p)
	if err != nil {
		return nil, err
	}

	rows, err := conn(r.DB).QueryContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, fmt.Errorf("query ama: %w", err)
	}
	defer rows.Close()

	list := []models.AmaList{}
	for rows.Next() {
		var item models.AmaList
		if err := rows.Scan(&item.ID, &item.Content, &item.Status, &item.EffectiveDate); err != nil {
			return nil, fmt.Errorf("scan ama: %w", err)
		}
		list = append(list, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ama: %w", err)
	}
	return list, nil
}

func (r AmaRepository) Update(ctx context.Context, id int32, a models.Ama) error {
	if a.Status == "" {
		a.Status = domain.StatusActive
	}
	upd := r.Dialect.Builder().Update("ama").
		Set("name", a.Name).
		Set("description", a.Description).
		Set("country", a.Country).
		Set("content", a.Content).
		Set("status", a.Status)
	if a.EffectiveDate != nil {
		upd = upd.Set("effective_date", *a.EffectiveDate)
	}
	sqlStr, args, err := upd.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := conn(r.DB).ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return mapWriteError(amaResource, err)
	}
	return requireAffected(amaResource, res)
}

func (r AmaRepository) Delete(ctx context.Context, id int32) error {
	sqlStr, args, err := r.Dialect.Builder().Delete("ama").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := conn(r.DB).ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	return requireAffected(amaResource, res)
}

func requireAffected(resource string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource}
	}
	return nil
}

func scanAma(row *sql.Row) (models.Ama, error) {
	var (
		a    models.Ama
		date query.Date
	)
	if err := row.Scan(&a.ID, &a.Name, &a.Description, &a.Country, &a.Content, &a.Status, &date); err != nil {
		return models.Ama{}, err
	}
	a.EffectiveDate = &date
	return a, nil
}

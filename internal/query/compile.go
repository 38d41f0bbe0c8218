package query

import (
	"fmt"
	"math"

	"amabackend/internal/domain"

	sq "github.com/Masterminds/squirrel"
)

// MaxLimit caps the page size regardless of what the client asked for.
const MaxLimit uint64 = 100

// MaxPage is the largest page whose offset at MaxLimit still fits in a
// signed 64-bit OFFSET.
const MaxPage uint64 = math.MaxInt64/MaxLimit + 1

// Statement is a compiled list query. The Nth placeholder in SQL binds Args[N-1].
// Next is the first placeholder position still free for callers that append
// more conditions.
type Statement struct {
	SQL  string
	Args []any
	Next int
}

// Compile appends paging, ordering and filtering from p to base and renders it.
// alias is prepended to every column reference, e.g. "u." for "FROM users u".
// defaultLimit is used when p carries no limit. p may be nil.
func Compile[F, O ColumnSet](d Dialect, base sq.SelectBuilder, alias string, defaultLimit uint64, p *Params[F, O]) (Statement, error) {
	q, err := Apply(d, base, alias, defaultLimit, p)
	if err != nil {
		return Statement{}, err
	}
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return Statement{}, domain.InternalError{Msg: "failed to render list query", Err: err}
	}
	if args == nil {
		args = []any{}
	}
	return Statement{SQL: sqlStr, Args: args, Next: len(args) + 1}, nil
}

// Apply is Compile without rendering, for callers that keep building on the
// returned select.
func Apply[F, O ColumnSet](d Dialect, base sq.SelectBuilder, alias string, defaultLimit uint64, p *Params[F, O]) (sq.SelectBuilder, error) {
	limit := defaultLimit
	if p != nil && p.Limit != nil {
		limit = *p.Limit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if p != nil && p.Page != nil && *p.Page > MaxPage {
		return base, invalid("page", fmt.Sprintf("must be at most %d", MaxPage))
	}
	q := base.Limit(limit)
	if offset := p.Offset(limit); offset > 0 {
		q = q.Offset(offset)
	}
	if p == nil {
		return q, nil
	}

	if p.Order != nil {
		for name, slot := range (*p.Order).Columns() {
			if slot == nil {
				continue
			}
			o, ok := slot.(OrderSlot)
			if !ok {
				return base, invalid(name, fmt.Sprintf("%s column cannot be used for ordering", slot.Kind()))
			}
			q = q.OrderBy(alias + name + " " + string(o.Dir))
		}
	}

	if p.Filter != nil {
		for name, slot := range (*p.Filter).Columns() {
			if slot == nil {
				continue
			}
			cond, err := where(d, alias+name, name, slot)
			if err != nil {
				return base, err
			}
			q = q.Where(cond)
		}
	}
	return q, nil
}

func where(d Dialect, column, name string, slot Slot) (sq.Sqlizer, error) {
	switch s := slot.(type) {
	case OrderedSlot:
		switch s.Op {
		case OrderedIn, OrderedNotIn:
			if len(s.Values) == 0 {
				return nil, invalid(name, "pass at least one value")
			}
			if s.Op == OrderedIn {
				return d.in(column, s.List), nil
			}
			return d.notIn(column, s.List), nil
		case OrderedBetween:
			if len(s.Values) != 2 {
				return nil, invalid(name, "from and to must be set")
			}
			return sq.Expr(column+" BETWEEN ? AND ?", s.Values[0], s.Values[1]), nil
		default:
			if len(s.Values) == 0 {
				return nil, invalid(name, "pass a value")
			}
			return sq.Expr(column+" "+s.Op.String()+" ?", s.Values[0]), nil
		}
	case TextSlot:
		if len(s.Values) == 0 {
			return nil, invalid(name, "pass a value")
		}
		switch s.Op {
		case TextIn:
			return d.in(column, s.Values), nil
		case TextNotIn:
			return d.notIn(column, s.Values), nil
		case TextLike:
			return sq.Expr(column+" LIKE ?", s.Values[0]+"%"), nil
		default:
			return sq.Expr(column+" "+s.Op.String()+" ?", s.Values[0]), nil
		}
	case DiscreteSlot:
		if len(s.Values) != 1 {
			return nil, invalid(name, "pass exactly one value")
		}
		if s.Op == DiscreteIn {
			return d.in(column, s.List), nil
		}
		return sq.Expr(column+" "+s.Op.String()+" ?", s.Values[0]), nil
	case OrderSlot:
		return nil, invalid(name, "order column cannot be used for filtering")
	default:
		return nil, invalid(name, "unsupported column type")
	}
}

func invalid(name, msg string) error {
	return domain.ValidationError{Field: name, Msg: msg}
}

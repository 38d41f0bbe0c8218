package query

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TextFilter filters a text column.
type TextFilter struct {
	Val []string `json:"val"`
	Op  TextOp   `json:"op"`
}

// OrderedFilter filters a numeric or date column.
type OrderedFilter[T any] struct {
	Val []T       `json:"val"`
	Op  OrderedOp `json:"op"`
}

// DiscreteFilter filters an enum or bool column.
type DiscreteFilter[T any] struct {
	Val []T        `json:"val"`
	Op  DiscreteOp `json:"op"`
}

type rawFilter struct {
	Val []json.RawMessage `json:"val"`
	Op  string            `json:"op"`
}

func (f *TextFilter) UnmarshalJSON(data []byte) error {
	var raw rawFilter
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	vals, err := decodeValues[string](raw.Val)
	if err != nil {
		return err
	}
	if err := f.Op.UnmarshalText([]byte(raw.Op)); err != nil {
		return err
	}
	f.Val = vals
	return nil
}

func (f *OrderedFilter[T]) UnmarshalJSON(data []byte) error {
	var raw rawFilter
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	vals, err := decodeValues[T](raw.Val)
	if err != nil {
		return err
	}
	if err := f.Op.UnmarshalText([]byte(raw.Op)); err != nil {
		return err
	}
	f.Val = vals
	return nil
}

func (f *DiscreteFilter[T]) UnmarshalJSON(data []byte) error {
	var raw rawFilter
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	vals, err := decodeValues[T](raw.Val)
	if err != nil {
		return err
	}
	if err := f.Op.UnmarshalText([]byte(raw.Op)); err != nil {
		return err
	}
	f.Val = vals
	return nil
}

// decodeValues decodes each element into T. Query strings deliver every value
// as a JSON string, so a string that does not decode directly is retried
// with its quotes stripped ("5" -> 5, "true" -> true). null never decodes.
func decodeValues[T any](raws []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		if isNull(raw) {
			return nil, errNullValue
		}
		var v T
		err := json.Unmarshal(raw, &v)
		if err != nil {
			trimmed := bytes.TrimSpace(raw)
			if len(trimmed) == 0 || trimmed[0] != '"' {
				return nil, err
			}
			s, uerr := strconv.Unquote(string(trimmed))
			if uerr != nil {
				return nil, err
			}
			unquoted := []byte(strings.TrimSpace(s))
			if isNull(unquoted) {
				return nil, errNullValue
			}
			if retry := json.Unmarshal(unquoted, &v); retry != nil {
				return nil, fmt.Errorf("invalid value %s: %w", trimmed, err)
			}
		}
		out = append(out, v)
	}
	return out, nil
}

var errNullValue = errors.New("filter values cannot be null")

func isNull(b []byte) bool {
	return bytes.Equal(bytes.TrimSpace(b), []byte("null"))
}

const dateLayout = "2006-01-02"

// Date is a calendar date encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid date %s, expected YYYY-MM-DD", b)
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = Date{v}
	case string:
		p, err := ParseDate(v[:min(len(v), len(dateLayout))])
		if err != nil {
			return err
		}
		*d = p
	case []byte:
		return d.Scan(string(v))
	case nil:
		*d = Date{}
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}

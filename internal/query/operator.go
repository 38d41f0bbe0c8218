package query

import (
	"fmt"
	"strings"
)

// TextOp is the operator vocabulary for text columns.
type TextOp string

const (
	TextEQ    TextOp = "EQ"
	TextNEQ   TextOp = "NEQ"
	TextLike  TextOp = "LIKE"
	TextIn    TextOp = "IN"
	TextNotIn TextOp = "NIN"
)

// OrderedOp is the operator vocabulary for numeric and date columns.
type OrderedOp string

const (
	OrderedEQ      OrderedOp = "EQ"
	OrderedNEQ     OrderedOp = "NEQ"
	OrderedLT      OrderedOp = "LT"
	OrderedLTE     OrderedOp = "LTE"
	OrderedGT      OrderedOp = "GT"
	OrderedGTE     OrderedOp = "GTE"
	OrderedIn      OrderedOp = "IN"
	OrderedNotIn   OrderedOp = "NIN"
	OrderedBetween OrderedOp = "BETWEEN"
)

// DiscreteOp is the operator vocabulary for enum and bool columns.
type DiscreteOp string

const (
	DiscreteEQ  DiscreteOp = "EQ"
	DiscreteNEQ DiscreteOp = "NEQ"
	DiscreteIn  DiscreteOp = "IN"
)

// sqlTokens renders every wire token of every family.
var sqlTokens = map[string]string{
	"EQ":      "=",
	"NEQ":     "!=",
	"LIKE":    "LIKE",
	"IN":      "IN",
	"NIN":     "NOT IN",
	"LT":      "<",
	"LTE":     "<=",
	"GT":      ">",
	"GTE":     ">=",
	"BETWEEN": "BETWEEN",
}

var (
	textOps     = []TextOp{TextEQ, TextNEQ, TextLike, TextIn, TextNotIn}
	orderedOps  = []OrderedOp{OrderedEQ, OrderedNEQ, OrderedLT, OrderedLTE, OrderedGT, OrderedGTE, OrderedIn, OrderedNotIn, OrderedBetween}
	discreteOps = []DiscreteOp{DiscreteEQ, DiscreteNEQ, DiscreteIn}
)

func (o TextOp) String() string     { return sqlTokens[string(o)] }
func (o OrderedOp) String() string  { return sqlTokens[string(o)] }
func (o DiscreteOp) String() string { return sqlTokens[string(o)] }

func (o *TextOp) UnmarshalText(b []byte) error {
	v, err := parseOp(b, textOps)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func (o *OrderedOp) UnmarshalText(b []byte) error {
	v, err := parseOp(b, orderedOps)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func (o *DiscreteOp) UnmarshalText(b []byte) error {
	v, err := parseOp(b, discreteOps)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func parseOp[T ~string](b []byte, allowed []T) (T, error) {
	token := strings.ToUpper(strings.TrimSpace(string(b)))
	if token == "NOT_IN" {
		token = "NIN"
	}
	for _, op := range allowed {
		if string(op) == token {
			return op, nil
		}
	}
	names := make([]string, len(allowed))
	for i, op := range allowed {
		names[i] = string(op)
	}
	return "", fmt.Errorf("unknown operator %q, expected one of %s", string(b), strings.Join(names, ", "))
}

// Direction is a sort direction for an order column.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

func (d *Direction) UnmarshalText(b []byte) error {
	switch Direction(strings.ToUpper(strings.TrimSpace(string(b)))) {
	case ASC:
		*d = ASC
	case DESC:
		*d = DESC
	default:
		return fmt.Errorf("unknown order direction %q, expected ASC or DESC", string(b))
	}
	return nil
}

// FilterType selects how filters combine. Only AND is compiled; OR is
// accepted on the wire and ignored.
type FilterType string

const (
	AND FilterType = "AND"
	OR  FilterType = "OR"
)

func (t *FilterType) UnmarshalText(b []byte) error {
	switch FilterType(strings.ToUpper(strings.TrimSpace(string(b)))) {
	case AND:
		*t = AND
	case OR:
		*t = OR
	default:
		return fmt.Errorf("unknown filter_type %q, expected AND or OR", string(b))
	}
	return nil
}

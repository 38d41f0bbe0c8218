package query

import (
	"net/url"
	"testing"

	"amabackend/internal/domain"

	"github.com/stretchr/testify/require"
)

func parseQuery(t *testing.T, raw string) (*testParams, error) {
	t.Helper()
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return ParseValues[testFilter, testOrder](values)
}

func TestParseValues_FullEnvelope(t *testing.T) {
	p, err := parseQuery(t, "page=2&limit=10&filter_type=AND&meta=x"+
		"&filter[content][op]=NEQ&filter[content][val][]=Sam"+
		"&filter[status][op]=EQ&filter[status][val][]=active"+
		"&filter[amount][op]=BETWEEN&filter[amount][val][1]=9&filter[amount][val][0]=5"+
		"&order[id]=DESC&order[content]=asc")
	require.NoError(t, err)

	require.Equal(t, uint64(2), *p.Page)
	require.Equal(t, uint64(10), *p.Limit)
	require.Equal(t, AND, *p.FilterType)
	require.Equal(t, "x", p.Meta)
	require.Equal(t, &TextFilter{Op: TextNEQ, Val: []string{"Sam"}}, p.Filter.Content)
	require.Equal(t, []domain.Status{domain.StatusActive}, p.Filter.Status.Val)
	require.Equal(t, &OrderedFilter[int32]{Op: OrderedBetween, Val: []int32{5, 9}}, p.Filter.Amount)
	require.Nil(t, p.Filter.Effective)
	require.Equal(t, DESC, *p.Order.ID)
	require.Equal(t, ASC, *p.Order.Content)
}

func TestParseValues_ScalarValAndDates(t *testing.T) {
	p, err := parseQuery(t, "filter[effective_date][op]=GTE&filter[effective_date][val]=2024-03-01")
	require.NoError(t, err)
	require.Equal(t, OrderedGTE, p.Filter.Effective.Op)
	require.Equal(t, []Date{NewDate(2024, 3, 1)}, p.Filter.Effective.Val)
}

func TestParseValues_CompilesEndToEnd(t *testing.T) {
	p, err := parseQuery(t, "page=1&filter[content][val][]=Sam&filter[content][op]=NEQ&order[id]=DESC&order[content]=ASC")
	require.NoError(t, err)
	st := compileAma(t, p)
	require.Equal(t, "SELECT * FROM ama WHERE content != $1 ORDER BY id DESC, content ASC LIMIT 20", st.SQL)
	require.Equal(t, []any{"Sam"}, st.Args)
}

func TestParseValues_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field string
	}{
		{"limit below minimum", "limit=1", "limit"},
		{"limit above maximum", "limit=101", "limit"},
		{"page zero", "page=0", "page"},
		{"page overflows offset", "page=184467440737095518&limit=100", "page"},
		{"page at int64 max", "page=9223372036854775807&limit=2", "page"},
		{"null number", "filter[amount][op]=EQ&filter[amount][val][]=null", "query"},
		{"null date", "filter[effective_date][op]=GT&filter[effective_date][val][]=null", "query"},
		{"unknown column", "filter[secret][op]=EQ&filter[secret][val][]=1", "query"},
		{"unknown operator", "filter[content][op]=GT&filter[content][val][]=a", "query"},
		{"bad direction", "order[id]=UP", "query"},
		{"bad number", "filter[amount][op]=EQ&filter[amount][val][]=abc", "query"},
		{"bad date", "filter[effective_date][op]=EQ&filter[effective_date][val][]=01/02/2024", "query"},
		{"bad enum", "filter[status][op]=EQ&filter[status][val][]=Deleted", "query"},
		{"malformed key", "filter[content=1", "query"},
		{"unknown top level key", "sort=id", "query"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseQuery(t, tt.query)
			var verr domain.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestParseJSON(t *testing.T) {
	p, err := ParseJSON[testFilter, testOrder]([]byte(`{
		"page": 3,
		"limit": 20,
		"filter": {"amount": {"val": [1, 2], "op": "NOT_IN"}},
		"order": {"content": "DESC"}
	}`))
	require.NoError(t, err)
	require.Equal(t, OrderedNotIn, p.Filter.Amount.Op)
	require.Equal(t, []int32{1, 2}, p.Filter.Amount.Val)

	st := compileAma(t, p)
	require.Equal(t, "SELECT * FROM ama WHERE amount <> ALL($1) ORDER BY content DESC LIMIT 20 OFFSET 40", st.SQL)

	empty, err := ParseJSON[testFilter, testOrder](nil)
	require.NoError(t, err)
	require.Nil(t, empty.Filter)

	_, err = ParseJSON[testFilter, testOrder]([]byte(`{"limit": "ten"}`))
	require.True(t, domain.IsValidation(err))

	for _, body := range []string{
		`{"filter": {"content": {"val": [null], "op": "EQ"}}}`,
		`{"filter": {"amount": {"val": [null], "op": "GT"}}}`,
		`{"filter": {"amount": {"val": [1, null], "op": "IN"}}}`,
	} {
		_, err = ParseJSON[testFilter, testOrder]([]byte(body))
		require.True(t, domain.IsValidation(err), body)
	}
}

func TestParseValues_PageLimits(t *testing.T) {
	p, err := parseQuery(t, "page=92233720368547759&limit=100")
	require.NoError(t, err)
	st := compileAma(t, p)
	require.Equal(t, "SELECT * FROM ama LIMIT 100 OFFSET 9223372036854775800", st.SQL)

	p, err = parseQuery(t, "filter[content][op]=EQ&filter[content][val][]=null")
	require.NoError(t, err)
	require.Equal(t, []string{"null"}, p.Filter.Content.Val)
}

package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"amabackend/internal/domain"
	"amabackend/internal/query"
)

func TestRunCompile(t *testing.T) {
	tests := []struct {
		name     string
		resource string
		dialect  query.Dialect
		raw      string
		wantSQL  string
		wantArgs int
	}{
		{
			name:     "ama postgres",
			resource: "ama",
			dialect:  query.Postgres,
			raw:      "?filter[content][op]=NEQ&filter[content][val][]=Sam&order[id]=DESC&order[content]=ASC",
			wantSQL:  "SELECT id, content, status, effective_date FROM ama WHERE content != $1 ORDER BY id DESC, content ASC LIMIT 20",
			wantArgs: 1,
		},
		{
			name:     "users mysql membership",
			resource: "users",
			dialect:  query.MySQL,
			raw:      "limit=10&page=3&filter[country][op]=IN&filter[country][val][]=CA",
			wantSQL: "SELECT u.id, u.first_name, u.last_name, u.email, u.user_type, u.status, u.country, u.created_at " +
				"FROM users u WHERE u.country IN (?) LIMIT 10 OFFSET 20",
			wantArgs: 1,
		},
		{
			name:     "empty query",
			resource: "ama",
			dialect:  query.Postgres,
			raw:      "",
			wantSQL:  "SELECT id, content, status, effective_date FROM ama LIMIT 20",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := runCompile(&buf, tt.resource, tt.dialect, tt.raw, 20); err != nil {
				t.Fatalf("compile error: %v", err)
			}
			var out compileOutput
			if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
				t.Fatalf("decode output: %v", err)
			}
			if out.SQL != tt.wantSQL {
				t.Fatalf("sql mismatch:\n got %s\nwant %s", out.SQL, tt.wantSQL)
			}
			if len(out.Args) != tt.wantArgs || out.Next != tt.wantArgs+1 {
				t.Fatalf("unexpected args %v next %d", out.Args, out.Next)
			}
		})
	}
}

func TestRunCompileErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := runCompile(&buf, "orders", query.Postgres, "", 20); err == nil {
		t.Fatalf("expected unknown resource error")
	}
	err := runCompile(&buf, "ama", query.Postgres, "limit=500", 20)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

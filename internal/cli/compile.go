package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"amabackend/internal/domain/models"
	"amabackend/internal/query"
	"amabackend/internal/repositories"

	"github.com/spf13/cobra"
)

var (
	compileResource string
	compileQuery    string
	compileDialect  string
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Print the SQL a list query compiles to",
	Long: `Parses a bracket-notation query string for a resource and prints the
compiled statement and its bind values as JSON.

Examples:
  amabackend compile --resource ama --query 'filter[content][op]=LIKE&filter[content][val][]=Sam&order[id]=DESC'
  amabackend compile --resource users --dialect mysql --query 'filter[status][op]=IN&filter[status][val][]=Active'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := compileDialect
		if name == "" {
			name = env.DBDriver
		}
		dialect, err := query.ParseDialect(name)
		if err != nil {
			return err
		}
		return runCompile(cmd.OutOrStdout(), compileResource, dialect, compileQuery, env.DefaultPageSize)
	},
}

func init() {
	compileCmd.Flags().StringVar(&compileResource, "resource", "ama", "resource to compile for (ama|users)")
	compileCmd.Flags().StringVar(&compileQuery, "query", "", "bracket-notation query string")
	compileCmd.Flags().StringVar(&compileDialect, "dialect", "", "postgres or mysql (defaults to DB_DRIVER)")
	rootCmd.AddCommand(compileCmd)
}

type compileOutput struct {
	SQL  string `json:"sql"`
	Args []any  `json:"args"`
	Next int    `json:"next"`
}

func runCompile(w io.Writer, resource string, d query.Dialect, raw string, pageSize uint64) error {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return fmt.Errorf("invalid query string: %w", err)
	}
	if pageSize == 0 {
		pageSize = 20
	}

	var st query.Statement
	switch resource {
	case "ama":
		p, err := query.ParseValues[models.AmaFilter, models.AmaOrder](values)
		if err != nil {
			return err
		}
		if st, err = query.Compile(d, repositories.AmaListBase(d), "", pageSize, p); err != nil {
			return err
		}
	case "users":
		p, err := query.ParseValues[models.UserFilter, models.UserOrder](values)
		if err != nil {
			return err
		}
		if st, err = query.Compile(d, repositories.UserListBase(d), repositories.UserListAlias, pageSize, p); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown resource %q, expected ama or users", resource)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(compileOutput{SQL: st.SQL, Args: st.Args, Next: st.Next})
}

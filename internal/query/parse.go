package query

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"amabackend/internal/domain"
)

// ParseJSON decodes and validates a JSON envelope. Unknown keys, including
// undeclared column names, are rejected.
func ParseJSON[F, O ColumnSet](data []byte) (*Params[F, O], error) {
	p := new(Params[F, O])
	if len(bytes.TrimSpace(data)) == 0 {
		return p, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		return nil, domain.ValidationError{Field: "query", Msg: cleanDecodeError(err), Err: err}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseValues decodes a bracket-notation query string:
//
//	page=2&limit=10
//	filter[content][op]=LIKE&filter[content][val][]=Sam
//	filter[effective_date][op]=BETWEEN&filter[effective_date][val][0]=2024-01-01&filter[effective_date][val][1]=2024-02-01
//	order[id]=DESC
func ParseValues[F, O ColumnSet](values url.Values) (*Params[F, O], error) {
	tree, err := valuesTree(values)
	if err != nil {
		return nil, domain.ValidationError{Field: "query", Msg: err.Error(), Err: err}
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to encode query parameters", Err: err}
	}
	return ParseJSON[F, O](data)
}

func valuesTree(values url.Values) (map[string]any, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	root := map[string]any{}
	indexed := map[string]map[int]string{}
	var indexedPaths [][]string

	for _, key := range keys {
		path, err := splitKey(key)
		if err != nil {
			return nil, err
		}
		vals := values[key]
		last := path[len(path)-1]

		switch {
		case last == "":
			if err := setPath(root, path[:len(path)-1], toAnySlice(vals)); err != nil {
				return nil, err
			}
		case isIndex(last):
			parent := path[:len(path)-1]
			pk := strings.Join(parent, "\x00")
			if _, ok := indexed[pk]; !ok {
				indexed[pk] = map[int]string{}
				indexedPaths = append(indexedPaths, parent)
			}
			i, _ := strconv.Atoi(last)
			indexed[pk][i] = vals[len(vals)-1]
		case len(path) >= 2 && last == "val":
			if err := setPath(root, path, toAnySlice(vals)); err != nil {
				return nil, err
			}
		default:
			if err := setPath(root, path, scalar(path, vals[len(vals)-1])); err != nil {
				return nil, err
			}
		}
	}

	for _, parent := range indexedPaths {
		byIndex := indexed[strings.Join(parent, "\x00")]
		idx := make([]int, 0, len(byIndex))
		for i := range byIndex {
			idx = append(idx, i)
		}
		sort.Ints(idx)
		list := make([]any, 0, len(idx))
		for _, i := range idx {
			list = append(list, byIndex[i])
		}
		if err := setPath(root, parent, list); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// splitKey turns "filter[content][val][]" into [filter content val ""].
func splitKey(key string) ([]string, error) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return []string{key}, nil
	}
	path := []string{key[:open]}
	rest := key[open:]
	for rest != "" {
		if rest[0] != '[' {
			return nil, fmt.Errorf("malformed parameter %q", key)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, fmt.Errorf("malformed parameter %q", key)
		}
		path = append(path, rest[1:end])
		rest = rest[end+1:]
	}
	return path, nil
}

func setPath(root map[string]any, path []string, value any) error {
	node := root
	for i, seg := range path {
		if i == len(path)-1 {
			if _, exists := node[seg]; exists {
				return fmt.Errorf("parameter %q given more than once", strings.Join(path, "."))
			}
			node[seg] = value
			return nil
		}
		next, ok := node[seg]
		if !ok {
			child := map[string]any{}
			node[seg] = child
			node = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("parameter %q mixes a value and nested keys", strings.Join(path[:i+1], "."))
		}
		node = child
	}
	return nil
}

// scalar keeps page and limit numeric so they decode into integers.
func scalar(path []string, v string) any {
	if len(path) == 1 && (path[0] == "page" || path[0] == "limit") {
		if n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
	}
	return v
}

func isIndex(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func toAnySlice(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func cleanDecodeError(err error) string {
	msg := err.Error()
	msg = strings.TrimPrefix(msg, "json: ")
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("invalid value for %s", typeErr.Field)
	}
	return msg
}

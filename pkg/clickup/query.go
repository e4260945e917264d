package clickup

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
)

// EncodeQuery converts decoded JSON arguments into query parameters the way
// ClickUp expects them: scalar arrays repeat as key[]=v, structured values
// are sent as JSON strings, nil values are dropped.
func EncodeQuery(args map[string]any) url.Values {
	q := url.Values{}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := args[k].(type) {
		case nil:
		case []any:
			if !scalars(v) {
				q.Set(k, mustJSON(v))
				continue
			}
			for _, item := range v {
				q.Add(k+"[]", scalarString(item))
			}
		case []string:
			for _, item := range v {
				q.Add(k+"[]", item)
			}
		case map[string]any:
			q.Set(k, mustJSON(v))
		default:
			q.Set(k, scalarString(v))
		}
	}
	return q
}

func scalars(items []any) bool {
	for _, item := range items {
		switch item.(type) {
		case map[string]any, []any:
			return false
		}
	}
	return true
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return fmt.Sprint(v)
	}
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

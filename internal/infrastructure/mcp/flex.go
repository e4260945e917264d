package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/clickup-mcp/pkg/clickup"
)

// FlexBool accepts both boolean and string ("true"/"false") JSON values.
// MCP clients sometimes send string values for boolean fields.
type FlexBool bool

func (fb *FlexBool) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*fb = FlexBool(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.ToLower(strings.TrimSpace(s))
		*fb = FlexBool(s == "true" || s == "1" || s == "yes")
		return nil
	}
	return fmt.Errorf("expected boolean or string, got %s", string(data))
}

// FlexInt accepts both integer and string JSON values. It is 64-bit so
// millisecond timestamps fit.
type FlexInt int64

func (fi *FlexInt) UnmarshalJSON(data []byte) error {
	var i int64
	if err := json.Unmarshal(data, &i); err == nil {
		*fi = FlexInt(i)
		return nil
	}
	// 1.7e12 style numbers from clients that only know floats.
	var f float64
	if err := json.Unmarshal(data, &f); err == nil && f == float64(int64(f)) {
		*fi = FlexInt(int64(f))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			*fi = FlexInt(n)
			return nil
		}
	}
	return fmt.Errorf("expected integer or string, got %s", string(data))
}

// Bool returns a *FlexBool, for building args in code.
func Bool(b bool) *FlexBool {
	v := FlexBool(b)
	return &v
}

// Int returns a *FlexInt, for building args in code.
func Int(n int64) *FlexInt {
	v := FlexInt(n)
	return &v
}

// bodyOf converts an args struct into a request payload, dropping the
// named keys (usually path parameters). Unset optional fields are already
// absent thanks to omitempty.
func bodyOf(args any, omit ...string) (map[string]any, error) {
	data, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encode arguments: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("encode arguments: %w", err)
	}
	for _, k := range omit {
		delete(m, k)
	}
	return m, nil
}

// jsonText pretty-prints a response payload with two-space indentation.
func jsonText(raw []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", fmt.Errorf("format response: %w", err)
	}
	return buf.String(), nil
}

// marshalText pretty-prints any value.
func marshalText(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format response: %w", err)
	}
	return string(data), nil
}

// required reports the first empty value among name/value pairs.
func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return fmt.Errorf("%s is required", pairs[i])
		}
	}
	return nil
}

// queryOf converts an args struct into ClickUp query parameters.
func queryOf(args any, omit ...string) (url.Values, error) {
	m, err := bodyOf(args, omit...)
	if err != nil {
		return nil, err
	}
	return clickup.EncodeQuery(m), nil
}

func flag(b *FlexBool) bool {
	return b != nil && bool(*b)
}

func intOf(n *FlexInt) int {
	if n == nil {
		return 0
	}
	return int(*n)
}

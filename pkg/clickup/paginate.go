package clickup

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/url"
	"strconv"
)

// Paginate walks a page-numbered list endpoint, yielding the items found
// under dataKey one page at a time. Pages start at zero. Iteration ends
// when a response sets last_page, when a page comes back empty, or on the
// first error, which is yielded once. Ranging again starts over.
func (c *Client) Paginate(ctx context.Context, path string, params url.Values, dataKey string) iter.Seq2[[]json.RawMessage, error] {
	return func(yield func([]json.RawMessage, error) bool) {
		for page := 0; ; page++ {
			q := cloneValues(params)
			q.Set("page", strconv.Itoa(page))

			raw, err := c.Get(ctx, path, q)
			if err != nil {
				yield(nil, err)
				return
			}
			items, last, err := decodePage(raw, dataKey)
			if err != nil {
				yield(nil, err)
				return
			}
			if len(items) == 0 {
				return
			}
			if !yield(items, nil) {
				return
			}
			if last {
				return
			}
		}
	}
}

// Collect drains a paginated sequence, stopping after maxPages batches
// when maxPages is positive.
func Collect(seq iter.Seq2[[]json.RawMessage, error], maxPages int) ([]json.RawMessage, int, error) {
	var (
		all   []json.RawMessage
		pages int
	)
	for batch, err := range seq {
		if err != nil {
			return all, pages, err
		}
		all = append(all, batch...)
		pages++
		if maxPages > 0 && pages >= maxPages {
			break
		}
	}
	return all, pages, nil
}

func decodePage(raw json.RawMessage, dataKey string) ([]json.RawMessage, bool, error) {
	var page map[string]json.RawMessage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, false, &Error{Kind: KindAPI, Message: fmt.Sprintf("decode page: %v", err), Err: err}
	}

	var last bool
	if v, ok := page["last_page"]; ok {
		_ = json.Unmarshal(v, &last)
	}

	var items []json.RawMessage
	if v, ok := page[dataKey]; ok && string(v) != "null" {
		if err := json.Unmarshal(v, &items); err != nil {
			return nil, false, &Error{Kind: KindAPI, Message: fmt.Sprintf("decode %q: %v", dataKey, err), Err: err}
		}
	}
	return items, last, nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+1)
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

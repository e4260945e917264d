// Package clickup provides a Go client for the ClickUp v2 REST API.
//
// Every call goes through one pipeline: dispatches on a client are spaced
// by a minimum interval, each attempt is bounded by a timeout, failures are
// classified into *Error kinds, and only rate-limited (429) failures are
// retried, a bounded number of times after a fixed delay. Resources are
// returned as opaque json.RawMessage payloads.
//
// Usage:
//
//	c, err := clickup.New(clickup.Config{APIToken: os.Getenv("CLICKUP_API_TOKEN")})
//	if err != nil {
//		return err
//	}
//	teams, err := c.GetAuthorizedTeams(ctx)
//
//	for batch, err := range c.AllTasks(ctx, listID, nil) {
//		if err != nil {
//			return err
//		}
//		process(batch)
//	}
package clickup

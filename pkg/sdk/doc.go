// Package sdk provides a typed Go client for the clickup-mcp server.
//
// The client wraps mcp-go/client.CallTool with typed methods for the most
// used tools, a generic Call for the rest, and automatic retry of transport
// failures via fortify. ClickUp API errors arrive as *ToolError and are
// never retried here; the server already paces and retries rate limits.
//
// Usage:
//
//	transport, _ := client.NewStdioTransport("clickup-mcp", "mcp")
//	c := sdk.NewClient(transport)
//	defer c.Close()
//
//	_, _ = c.Initialize(ctx)
//	teams, _ := c.Workspaces(ctx)
//	all, _ := c.ListAllTasks(ctx, sdk.ListTasksRequest{ListID: "901"})
//	fmt.Println(teams[0].Name, len(all.Tasks))
package sdk

package mcp

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/felixgeelhaar/mcp-go/testutil"
)

func TestSchemaVersionIsSemver(t *testing.T) {
	re := regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	if !re.MatchString(SchemaVersion) {
		t.Fatalf("SchemaVersion %q is not valid semver", SchemaVersion)
	}
}

func TestDeprecatedFieldsPopulated(t *testing.T) {
	for i, d := range deprecatedFields() {
		if d.Tool == "" {
			t.Errorf("deprecatedFields()[%d].Tool is empty", i)
		}
		if d.Field == "" {
			t.Errorf("deprecatedFields()[%d].Field is empty", i)
		}
		if d.Since == "" {
			t.Errorf("deprecatedFields()[%d].Since is empty", i)
		}
		if d.RemovedIn == "" {
			t.Errorf("deprecatedFields()[%d].RemovedIn is empty", i)
		}
		if d.Migration == "" {
			t.Errorf("deprecatedFields()[%d].Migration is empty", i)
		}
	}
}

func TestServer_ReadSchemaResource(t *testing.T) {
	server, _ := newTestServer(t, nil)

	client := testutil.NewTestClient(t, server.mcpServer)
	defer client.Close()

	content, err := client.ReadResource("clickup://schema")
	if err != nil {
		t.Fatalf("read schema resource: %v", err)
	}
	var resp schemaResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		t.Fatalf("decode schema resource: %v", err)
	}
	if resp.SchemaVersion != SchemaVersion || resp.ToolCount != len(server.MCP().Tools()) {
		t.Errorf("schema = %+v", resp)
	}
}

package mcp

import (
	"encoding/json"
	"testing"
)

type flexArgs struct {
	Archived *FlexBool `json:"archived,omitempty"`
	Notify   FlexBool  `json:"notify,omitempty"`
	DueDate  *FlexInt  `json:"due_date,omitempty"`
	Limit    FlexInt   `json:"limit,omitempty"`
}

func TestFlexBoolUnmarshal(t *testing.T) {
	var args flexArgs

	if err := json.Unmarshal([]byte(`{"archived":false,"notify":"yes"}`), &args); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if args.Archived == nil || bool(*args.Archived) {
		t.Error("expected Archived to be set to false")
	}
	if !bool(args.Notify) {
		t.Error("expected Notify to be true")
	}
}

func TestFlexBoolUnmarshal_Invalid(t *testing.T) {
	var args flexArgs

	if err := json.Unmarshal([]byte(`{"notify": {}}`), &args); err == nil {
		t.Fatal("expected error for invalid flex bool")
	}
}

func TestFlexIntUnmarshal(t *testing.T) {
	var args flexArgs

	if err := json.Unmarshal([]byte(`{"limit":"5","due_date":1.7e12}`), &args); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if int(args.Limit) != 5 {
		t.Errorf("expected limit 5, got %d", int(args.Limit))
	}
	if args.DueDate == nil || int64(*args.DueDate) != 1700000000000 {
		t.Errorf("unexpected due date: %v", args.DueDate)
	}
}

func TestFlexIntUnmarshal_Invalid(t *testing.T) {
	var args flexArgs

	if err := json.Unmarshal([]byte(`{"limit":"nope"}`), &args); err == nil {
		t.Fatal("expected error for invalid flex int")
	}
	if err := json.Unmarshal([]byte(`{"limit":2.5}`), &args); err == nil {
		t.Fatal("expected error for fractional flex int")
	}
}

func TestBodyOf(t *testing.T) {
	args := struct {
		TaskID   string    `json:"task_id"`
		Name     string    `json:"name,omitempty"`
		Archived *FlexBool `json:"archived,omitempty"`
		Due      *FlexInt  `json:"due_date,omitempty"`
	}{TaskID: "abc", Archived: Bool(false), Due: Int(1700000000001)}

	body, err := bodyOf(args, "task_id")
	if err != nil {
		t.Fatalf("bodyOf: %v", err)
	}
	if _, ok := body["task_id"]; ok {
		t.Error("path parameter leaked into body")
	}
	if _, ok := body["name"]; ok {
		t.Error("unset field present in body")
	}
	if v, ok := body["archived"]; !ok || v != false {
		t.Errorf("archived = %v, want explicit false", v)
	}
	if n, ok := body["due_date"].(json.Number); !ok || n.String() != "1700000000001" {
		t.Errorf("due_date = %v, want exact json.Number", body["due_date"])
	}
}

func TestJSONText(t *testing.T) {
	got, err := jsonText([]byte(`{"a":[1,2]}`))
	if err != nil {
		t.Fatalf("jsonText: %v", err)
	}
	want := "{\n  \"a\": [\n    1,\n    2\n  ]\n}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRequired(t *testing.T) {
	if err := required("task_id", "x", "list_id", " "); err == nil || err.Error() != "list_id is required" {
		t.Errorf("err = %v", err)
	}
	if err := required("task_id", "x"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/xhanalabs/xl/pkg/models"
	"github.com/xhanalabs/xl/pkg/toolbox"
)

// --- Test helpers ---

func testConfig() *models.Config {
	return &models.Config{
		Random: models.RandomConfig{Alphabet: "xy"},
		Labels: toolbox.LabelTable{
			{Key: 0, Value: "upper"},
			{Key: 1, Value: "lower"},
		},
	}
}

// callTool is a helper that connects a client to the server and calls a tool.
func callTool(t *testing.T, srv *Server, toolName string, args map[string]any) *gomcp.CallToolResult {
	t.Helper()

	ctx := context.Background()
	client := gomcp.NewClient(&gomcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)

	t1, t2 := gomcp.NewInMemoryTransports()

	// Connect server (non-blocking).
	go func() {
		_ = srv.MCPServer().Run(ctx, t1)
	}()

	session, err := client.Connect(ctx, t2, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &gomcp.CallToolParams{
		Name:      toolName,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("call tool %s: %v", toolName, err)
	}

	return result
}

// decode reads the structured output of a successful call into out.
func decode(t *testing.T, result *gomcp.CallToolResult, out any) {
	t.Helper()

	if result.IsError {
		t.Fatalf("expected success, got error: %s", extractText(result))
	}
	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		if err != nil {
			t.Fatalf("marshalling structured content: %v", err)
		}
		if err := json.Unmarshal(data, out); err != nil {
			t.Fatalf("unmarshalling structured content: %v", err)
		}
		return
	}
	text := extractText(result)
	if err := json.Unmarshal([]byte(text), out); err != nil {
		t.Fatalf("unmarshalling output: %v (text was: %s)", err, text)
	}
}

func extractText(result *gomcp.CallToolResult) string {
	for _, c := range result.Content {
		if tc, ok := c.(*gomcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// --- Tests ---

func TestListTools(t *testing.T) {
	srv := NewServer(nil, "test")
	ctx := context.Background()
	client := gomcp.NewClient(&gomcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	t1, t2 := gomcp.NewInMemoryTransports()
	go func() {
		_ = srv.MCPServer().Run(ctx, t1)
	}()

	session, err := client.Connect(ctx, t2, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer session.Close()

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("listing tools: %v", err)
	}

	want := []string{
		"random_integer", "random_real", "random_number", "random_string", "random_uuid",
		"parse_key_value", "number_as_binary", "count_digits", "current_timestamp",
		"platform_name", "lookup_label",
	}
	got := make(map[string]bool)
	for _, tool := range res.Tools {
		got[tool.Name] = true
	}
	for _, name := range want {
		if !got[name] {
			t.Errorf("tool %s not registered", name)
		}
	}
	if got["exec"] || got["execute"] {
		t.Error("shell execution must not be exposed")
	}
}

func TestRandomInteger(t *testing.T) {
	srv := NewServer(nil, "test")

	result := callTool(t, srv, "random_integer", map[string]any{"min": -5, "max": 5, "count": 50})

	var out randomIntegerOutput
	decode(t, result, &out)
	if len(out.Values) != 50 {
		t.Fatalf("expected 50 values, got %d", len(out.Values))
	}
	for _, v := range out.Values {
		if v < -5 || v > 5 {
			t.Errorf("value %d outside [-5, 5]", v)
		}
	}
}

func TestRandomIntegerInvalidRange(t *testing.T) {
	srv := NewServer(nil, "test")

	result := callTool(t, srv, "random_integer", map[string]any{"min": 10, "max": 1})

	if !result.IsError {
		t.Fatal("expected error for min > max")
	}
	if !strings.Contains(extractText(result), "invalid range") {
		t.Errorf("expected invalid range message, got %q", extractText(result))
	}
}

func TestRandomIntegerCountLimit(t *testing.T) {
	srv := NewServer(nil, "test")

	result := callTool(t, srv, "random_integer", map[string]any{"min": 0, "max": 1, "count": maxCount + 1})

	if !result.IsError {
		t.Fatal("expected error for oversized count")
	}
}

func TestRandomReal(t *testing.T) {
	srv := NewServer(nil, "test")

	result := callTool(t, srv, "random_real", map[string]any{"min": 1.5, "max": 2.5, "count": 20})

	var out randomRealOutput
	decode(t, result, &out)
	for _, v := range out.Values {
		if v < 1.5 || v >= 2.5 {
			t.Errorf("value %g outside [1.5, 2.5)", v)
		}
	}
}

func TestRandomNumber(t *testing.T) {
	srv := NewServer(nil, "test")

	result := callTool(t, srv, "random_number", map[string]any{"length": 9, "type": "int32", "count": 10})

	var out randomNumberOutput
	decode(t, result, &out)
	for _, v := range out.Values {
		if toolbox.CountDigits(v) != 9 {
			t.Errorf("value %d does not have 9 digits", v)
		}
	}
}

func TestRandomNumberTooLong(t *testing.T) {
	srv := NewServer(nil, "test")

	result := callTool(t, srv, "random_number", map[string]any{"length": 10, "type": "int32"})

	if !result.IsError {
		t.Fatal("expected error for a 10-digit int32")
	}
}

func TestRandomNumberUnsupportedType(t *testing.T) {
	srv := NewServer(nil, "test")

	result := callTool(t, srv, "random_number", map[string]any{"length": 3, "type": "float"})

	if !result.IsError {
		t.Fatal("expected error for unsupported type")
	}
}

func TestRandomStringUsesConfiguredAlphabet(t *testing.T) {
	srv := NewServer(testConfig(), "test")

	result := callTool(t, srv, "random_string", map[string]any{"length": 16})

	var out randomStringOutput
	decode(t, result, &out)
	if len(out.Values) != 1 {
		t.Fatalf("expected 1 value, got %d", len(out.Values))
	}
	if len(out.Values[0]) != 16 {
		t.Errorf("expected 16 characters, got %q", out.Values[0])
	}
	if strings.Trim(out.Values[0], "xy") != "" {
		t.Errorf("expected only x and y, got %q", out.Values[0])
	}
}

func TestRandomStringExplicitAlphabet(t *testing.T) {
	srv := NewServer(testConfig(), "test")

	result := callTool(t, srv, "random_string", map[string]any{"length": 10, "alphabet": "abcd"})

	var out randomStringOutput
	decode(t, result, &out)
	if strings.Trim(out.Values[0], "abcd") != "" {
		t.Errorf("expected only abcd, got %q", out.Values[0])
	}
}

func TestRandomUUID(t *testing.T) {
	srv := NewServer(nil, "test")

	result := callTool(t, srv, "random_uuid", map[string]any{"count": 3})

	var out randomUUIDOutput
	decode(t, result, &out)
	if len(out.UUIDs) != 3 {
		t.Fatalf("expected 3 uuids, got %d", len(out.UUIDs))
	}
	if out.UUIDs[0] == out.UUIDs[1] {
		t.Error("expected distinct uuids")
	}
}

func TestParseKeyValue(t *testing.T) {
	srv := NewServer(nil, "test")

	result := callTool(t, srv, "parse_key_value", map[string]any{"input": "name=john&age=50"})

	var out parseKeyValueOutput
	decode(t, result, &out)
	if out.Count != 2 {
		t.Fatalf("expected 2 pairs, got %d", out.Count)
	}
	if out.Pairs[0] != (toolbox.KeyValue{Key: "name", Value: "john"}) {
		t.Errorf("unexpected first pair %+v", out.Pairs[0])
	}
	if out.Pairs[1] != (toolbox.KeyValue{Key: "age", Value: "50"}) {
		t.Errorf("unexpected second pair %+v", out.Pairs[1])
	}
}

func TestParseKeyValueCustomSeparators(t *testing.T) {
	srv := NewServer(nil, "test")

	result := callTool(t, srv, "parse_key_value", map[string]any{
		"input":             "a:1;b:2",
		"element_separator": ":",
		"item_separator":    ";",
	})

	var out parseKeyValueOutput
	decode(t, result, &out)
	if out.Count != 2 {
		t.Fatalf("expected 2 pairs, got %d", out.Count)
	}
}

func TestParseKeyValueErrors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{"duplicate key", map[string]any{"input": "name=john&name=jane"}},
		{"missing separator", map[string]any{"input": "name"}},
		{"long separator", map[string]any{"input": "a=1", "element_separator": "=="}},
		{"equal separators", map[string]any{"input": "a=1", "element_separator": "&"}},
	}

	srv := NewServer(nil, "test")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, srv, "parse_key_value", tt.args)
			if !result.IsError {
				t.Fatal("expected error result")
			}
		})
	}
}

func TestNumberAsBinary(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"default width shortened", map[string]any{"number": 2}, "0000000000000010"},
		{"full 32 bits", map[string]any{"number": 2, "full": true}, "00000000000000000000000000000010"},
		{"8 bits full", map[string]any{"number": -1, "bits": 8, "full": true}, "11111111"},
	}

	srv := NewServer(nil, "test")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out numberAsBinaryOutput
			decode(t, callTool(t, srv, "number_as_binary", tt.args), &out)
			if out.Binary != tt.want {
				t.Errorf("got %s, want %s", out.Binary, tt.want)
			}
		})
	}
}

func TestNumberAsBinaryBadWidth(t *testing.T) {
	srv := NewServer(nil, "test")

	result := callTool(t, srv, "number_as_binary", map[string]any{"number": 1, "bits": 12})

	if !result.IsError {
		t.Fatal("expected error for 12-bit width")
	}
}

func TestCountDigits(t *testing.T) {
	srv := NewServer(nil, "test")

	var out countDigitsOutput
	decode(t, callTool(t, srv, "count_digits", map[string]any{"number": -12345}), &out)
	if out.Digits != 5 {
		t.Errorf("expected 5 digits, got %d", out.Digits)
	}
}

func TestCurrentTimestamp(t *testing.T) {
	srv := NewServer(nil, "test")

	var out timestampOutput
	decode(t, callTool(t, srv, "current_timestamp", map[string]any{}), &out)
	if len(out.Timestamp) != 12 {
		t.Errorf("expected 12-character timestamp, got %q", out.Timestamp)
	}
}

func TestPlatformName(t *testing.T) {
	srv := NewServer(nil, "test")

	var out platformOutput
	decode(t, callTool(t, srv, "platform_name", map[string]any{}), &out)
	if out.Platform != toolbox.PlatformName() {
		t.Errorf("expected %q, got %q", toolbox.PlatformName(), out.Platform)
	}
}

func TestLookupLabel(t *testing.T) {
	srv := NewServer(testConfig(), "test")

	var out lookupLabelOutput
	decode(t, callTool(t, srv, "lookup_label", map[string]any{"key": 1}), &out)
	if out.Label != "lower" {
		t.Errorf("expected lower, got %q", out.Label)
	}

	result := callTool(t, srv, "lookup_label", map[string]any{"key": 7})
	if !result.IsError {
		t.Fatal("expected error for unknown key")
	}
}

func TestParseKeyValueKeepsPairsBeforeFailure(t *testing.T) {
	srv := NewServer(nil, "test")

	result := callTool(t, srv, "parse_key_value", map[string]any{"input": "name=john&age=50&name=jane"})

	if !result.IsError {
		t.Fatal("expected error result for duplicate key")
	}
	text := extractText(result)
	if !strings.Contains(text, "duplicate key") || !strings.Contains(text, "name=john&age=50") {
		t.Errorf("expected the accepted pairs in the message, got %q", text)
	}

	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		if err != nil {
			t.Fatalf("marshalling structured content: %v", err)
		}
		var out parseKeyValueOutput
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("unmarshalling structured content: %v", err)
		}
		if out.Count != 2 || out.Pairs[0].Key != "name" || out.Pairs[1].Key != "age" {
			t.Errorf("unexpected partial pairs %+v", out)
		}
	}
}

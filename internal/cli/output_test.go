package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	v := view{
		Text:    "a: 1",
		Data:    map[string]string{"a": "1"},
		Headers: []string{"KEY", "VALUE"},
		Rows:    [][]string{{"a", "1"}},
	}

	tests := []struct {
		format string
		want   string
	}{
		{"", "a: 1\n"},
		{formatText, "a: 1\n"},
		{"TEXT", "a: 1\n"},
		{formatJSON, "{\n  \"a\": \"1\"\n}\n"},
		{formatYAML, "a: \"1\"\n"},
	}

	for _, tt := range tests {
		t.Run("format="+tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := render(&buf, tt.format, v); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("render(%q) = %q, want %q", tt.format, buf.String(), tt.want)
			}
		})
	}
}

func TestRender_Table(t *testing.T) {
	var buf bytes.Buffer
	err := render(&buf, formatTable, view{
		Text:    "ignored",
		Headers: []string{"KEY", "VALUE"},
		Rows:    [][]string{{"name", "john"}, {"age", "50"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"KEY", "VALUE", "name", "john", "age", "50"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ignored") {
		t.Error("table output should not include the text form")
	}
}

func TestRender_TableFallsBackToText(t *testing.T) {
	var buf bytes.Buffer
	if err := render(&buf, formatTable, view{Text: "plain"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "plain\n" {
		t.Errorf("got %q, want plain", buf.String())
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := render(&buf, "xml", view{Text: "x"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{TraceLevel, "TRACE"},
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(999), "UNKNOWN"},
	}

	for _, test := range tests {
		if result := test.level.String(); result != test.expected {
			t.Errorf("Level.String() = %v, expected %v", result, test.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected Level
	}{
		{"trace", TraceLevel},
		{"DEBUG", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"bogus", InfoLevel},
	}

	for _, test := range tests {
		if result := ParseLevel(test.name); result != test.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", test.name, result, test.expected)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	if err := Initialize(Config{Level: WarnLevel, Component: "test"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("should be filtered")
	Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be filtered") {
		t.Error("info message leaked through warn-level filter")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("warn message missing from output")
	}
}

func TestPrettyFields(t *testing.T) {
	if err := Initialize(Config{Level: InfoLevel, Component: "hccopy"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Warn("skipping section", String("name", "Billing"), Int64("category_id", 42))

	out := buf.String()
	for _, want := range []string{"WARN", "hccopy:", "skipping section", "name=Billing", "category_id=42"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestJSONOutput(t *testing.T) {
	if err := Initialize(Config{Level: InfoLevel, JSON: true, Component: "hccopy"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Error("create failed", String("title", "Welcome"), Err(errSentinel))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if entry["level"] != "ERROR" {
		t.Errorf("expected level ERROR, got %v", entry["level"])
	}
	fields, ok := entry["fields"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected fields object, got %T", entry["fields"])
	}
	if fields["title"] != "Welcome" {
		t.Errorf("expected title field, got %v", fields["title"])
	}
	if fields["error"] != "boom" {
		t.Errorf("expected error field, got %v", fields["error"])
	}
}

type sentinelError struct{}

func (sentinelError) Error() string { return "boom" }

var errSentinel = sentinelError{}

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf, Service: "agent"})

	log.Component("cache").Info("evicted", "key", "property:10")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry[SERVICE] != "agent" || entry[COMPONENT] != "cache" || entry["key"] != "property:10" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNew_TextAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf, Format: "TEXT", Level: "WARN"})

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "msg=shown") {
		t.Errorf("expected text format output, got %q", out)
	}
}

func TestNew_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf})

	log.Info("login", "email", "seeker@stayease.test", "password", "secret", "Authorization", "Bearer abc")

	out := buf.String()
	if strings.Contains(out, "secret") || strings.Contains(out, "Bearer abc") {
		t.Errorf("secrets leaked: %q", out)
	}
	if !strings.Contains(out, "seeker@stayease.test") {
		t.Errorf("expected non-secret attributes to be kept: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":  "DEBUG",
		" WARN ": "WARN",
		"error":  "ERROR",
		"":       "INFO",
		"trace":  "INFO",
	}
	for in, want := range tests {
		if got := ParseLevel(in).String(); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewDefaultsToInfoText(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	var buf bytes.Buffer
	log := New(&buf)
	if log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v; want info", log.GetLevel())
	}
	log.Debug("hidden")
	log.Info("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug line written at info level")
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("info line missing: %q", out)
	}
}

func TestNewJSONFormatWithComponent(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")
	var buf bytes.Buffer
	log := New(&buf)
	Component(log, "combat").Debug("volley")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("not JSON: %v (%q)", err, buf.String())
	}
	if entry["component"] != "combat" {
		t.Errorf("component = %v; want combat", entry["component"])
	}
	if entry["msg"] != "volley" {
		t.Errorf("msg = %v; want volley", entry["msg"])
	}
}

func TestNewBadLevelFallsBack(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	log := New(&bytes.Buffer{})
	if log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v; want info fallback", log.GetLevel())
	}
}

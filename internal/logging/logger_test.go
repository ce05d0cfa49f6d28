package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewConsoleFormat(t *testing.T) {
	var out bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Output: &out})
	if err != nil {
		t.Fatal(err)
	}

	scoped := NewComponentLogger(logger, "planner")
	scoped.Info("scan complete", Int("files", 12))

	got := out.String()
	for _, want := range []string{"INFO", "[planner]", "scan complete", "files=12"} {
		if !strings.Contains(got, want) {
			t.Fatalf("line missing %q:\n%s", want, got)
		}
	}
}

func TestNewJSONFormat(t *testing.T) {
	var out bytes.Buffer
	logger, err := New(Options{Format: "json", Output: &out})
	if err != nil {
		t.Fatal(err)
	}

	logger.Warn("slow transfer", String("target", "/x"), Error(errors.New("timeout")))

	var record map[string]any
	if err := json.Unmarshal(out.Bytes(), &record); err != nil {
		t.Fatalf("not valid json: %v\n%s", err, out.String())
	}
	if record["msg"] != "slow transfer" {
		t.Fatalf("msg = %v", record["msg"])
	}
	if record["error"] != "timeout" {
		t.Fatalf("error = %v", record["error"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("unsupported format must be rejected")
	}
}

func TestLevelFiltering(t *testing.T) {
	var out bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &out})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("hidden")
	logger.Warn("shown")

	got := out.String()
	if strings.Contains(got, "hidden") {
		t.Fatal("info record leaked past warn level")
	}
	if !strings.Contains(got, "shown") {
		t.Fatal("warn record missing")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	for _, input := range []string{"", "INFO", "bogus"} {
		if got := parseLevel(input); got.String() != "INFO" {
			t.Fatalf("parseLevel(%q) = %v", input, got)
		}
	}
}

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	l := New(&bytes.Buffer{}, Options{})
	if !l.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected Info level to be enabled by default")
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected Debug level to be disabled by default")
	}
}

func TestNew_Verbose(t *testing.T) {
	l := New(&bytes.Buffer{}, Options{Level: slog.LevelError, Verbose: true})
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected Debug level to be enabled when verbose is true")
	}
}

func TestNew_Level(t *testing.T) {
	l := New(&bytes.Buffer{}, Options{Level: slog.LevelWarn})
	if l.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected Info level to be disabled at warn")
	}
	if !l.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("expected Warn level to be enabled at warn")
	}
}

func TestNew_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Options{}).Info("hooks installed", "alongside", true)

	out := buf.String()
	if !strings.Contains(out, "hooks installed") || !strings.Contains(out, "alongside=true") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Options{JSON: true}).Info("hook removed", "path", "/repo/.git/hooks/pre-commit")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "hook removed" || rec["path"] != "/repo/.git/hooks/pre-commit" {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestContext(t *testing.T) {
	l := New(&bytes.Buffer{}, Options{})
	ctx := context.Background()

	if FromContext(ctx) == nil {
		t.Fatal("FromContext returned nil for empty context")
	}

	ctx = WithContext(ctx, l)
	if FromContext(ctx) != l {
		t.Error("FromContext did not return the logger injected with WithContext")
	}
}

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    slog.Level
		wantErr bool
	}{
		{name: "empty defaults to info", input: "", want: slog.LevelInfo},
		{name: "debug", input: "debug", want: slog.LevelDebug},
		{name: "info", input: "info", want: slog.LevelInfo},
		{name: "warn", input: "warn", want: slog.LevelWarn},
		{name: "error", input: "error", want: slog.LevelError},
		{name: "uppercase", input: "DEBUG", want: slog.LevelDebug},
		{name: "unknown", input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter("json", slog.LevelInfo, &buf)
	if err != nil {
		t.Fatalf("NewWithWriter() error = %v", err)
	}

	logger.Info(context.Background(), "loaded", "documents", 2)

	out := buf.String()
	if !strings.Contains(out, `"msg":"loaded"`) {
		t.Errorf("output missing message: %s", out)
	}
	if !strings.Contains(out, `"documents":2`) {
		t.Errorf("output missing attribute: %s", out)
	}
}

func TestNewWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter("text", slog.LevelWarn, &buf)
	if err != nil {
		t.Fatalf("NewWithWriter() error = %v", err)
	}

	logger.Info(context.Background(), "suppressed")
	logger.Warn(context.Background(), "emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("info message should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "emitted") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestNewWithWriter_UnsupportedFormat(t *testing.T) {
	if _, err := NewWithWriter("xml", slog.LevelInfo, &bytes.Buffer{}); err == nil {
		t.Error("NewWithWriter() should reject unsupported format")
	}
}

func TestFromContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter("text", slog.LevelInfo, &buf)
	if err != nil {
		t.Fatalf("NewWithWriter() error = %v", err)
	}

	ctx := WithLogger(context.Background(), logger)
	FromContext(ctx).Info(ctx, "via context")

	if !strings.Contains(buf.String(), "via context") {
		t.Errorf("context logger not used: %s", buf.String())
	}
}

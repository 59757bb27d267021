package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWithWriterFormats(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.Background()

	l, err := NewWithWriter("json", slog.LevelInfo, &buf)
	if err != nil {
		t.Fatalf("json logger: %v", err)
	}
	l.Info(ctx, "hello", "k", "v")
	if !strings.Contains(buf.String(), `"k":"v"`) {
		t.Fatalf("json output missing attribute: %s", buf.String())
	}

	if _, err := NewWithWriter("xml", slog.LevelInfo, &buf); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l, _ := NewWithWriter("text", slog.LevelInfo, &buf)
	ctx := WithLogger(context.Background(), l.With("component", "test"))
	FromContext(ctx).Info(ctx, "tagged")
	if !strings.Contains(buf.String(), "component=test") {
		t.Fatalf("context logger not used: %s", buf.String())
	}
	// Absent logger falls back to a default, without panicking.
	FromContext(context.Background()).Debug(context.Background(), "noop")
}

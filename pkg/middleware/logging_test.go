package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/olton/router"
)

func TestLoggingRecordsNavigation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	r, err := router.New(router.WithRoute("/user/:id", nopHandler))
	if err != nil {
		t.Fatal(err)
	}
	r.Use(Logging(logger))

	r.Navigate(context.Background(), "/user/5")

	out := buf.String()
	if !strings.Contains(out, "path=/user/5") {
		t.Errorf("log output missing path: %q", out)
	}
	if !strings.Contains(out, "pattern=/user/:id") {
		t.Errorf("log output missing pattern: %q", out)
	}
	if !strings.Contains(out, "params=1") {
		t.Errorf("log output missing param count: %q", out)
	}
}

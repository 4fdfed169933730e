package middleware

import (
	"context"
	"log/slog"

	"github.com/olton/router"
)

// Logging returns a middleware that logs every committed navigation.
//
// Each navigation emits one debug record with the sanitized path, the
// matched pattern, and the extracted parameter count. Failures inside
// the pipeline surface through the router's error channel, not here.
func Logging(logger *slog.Logger) router.Middleware {
	return func(ctx context.Context, m *router.Match) error {
		logger.LogAttrs(ctx, slog.LevelDebug, "navigate",
			slog.String("path", m.Path),
			slog.String("pattern", m.Pattern),
			slog.Int("params", len(m.Params)),
		)
		return nil
	}
}

package middlewarex

import (
	"log/slog"
	"net/http"
	"time"

	"pos_catalog/pkg/contextx"
	"pos_catalog/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Logger binds a request-scoped logger (trace id, URL, method, peer) to the
// request context so every layer below logs with the same attributes.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		traceID, err := contextx.TraceIDFromContext(ctx)
		if err != nil {
			logger(ctx).Error("contextx.TraceIDFromContext", logx.Error(err))
		}

		ctx = contextx.WithLogger(
			ctx,
			logger(ctx).With(
				logx.Stringer(logx.FieldTraceID, traceID),
				logx.Stringer(logx.FieldURL, r.URL),
				slog.String(logx.FieldHTTPMethod, r.Method),
				slog.String(logx.FieldIP, r.RemoteAddr),
			),
		)

		started := time.Now()

		next.ServeHTTP(w, r.WithContext(ctx))

		logger(ctx).Debug(
			"request handled",
			slog.Int64(logx.FieldDurationMs, time.Since(started).Milliseconds()),
		)
	})
}

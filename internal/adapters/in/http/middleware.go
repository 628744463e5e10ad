package http

import (
	"strconv"
	"time"

	"bazaarlink/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// requestMetrics records handler latency per route. The route template is
// used, not the raw path, to keep label cardinality bounded.
func requestMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		start := time.Now()
		err := next(ctx)

		route := ctx.Path()
		if route == "" {
			route = "unmatched"
		}

		metrics.RequestDuration.WithLabelValues(
			route,
			ctx.Request().Method,
			strconv.Itoa(ctx.Response().Status),
		).Observe(time.Since(start).Seconds())

		return err
	}
}

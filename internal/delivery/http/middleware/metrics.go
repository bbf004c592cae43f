package middleware

import (
	"strconv"
	"time"

	"talentbridge/internal/metrics"

	"github.com/gofiber/fiber/v3"
)

type MetricsMiddleware struct {
	reg *metrics.Registry
}

func NewMetricsMiddleware(reg *metrics.Registry) *MetricsMiddleware {
	return &MetricsMiddleware{reg: reg}
}

// Middleware labels by route pattern, not raw path, to keep cardinality flat.
func (m *MetricsMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil || m.reg == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status, _, _ = normalizeError(err)
		}
		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}

		m.reg.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.reg.HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

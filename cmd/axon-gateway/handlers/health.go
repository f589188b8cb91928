package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdaops/axon/pkg/cluster/health"
)

// HealthHandler probes the configured cluster services and reports
// per-service results.
//
// The response is 200 when every service answers, 503 otherwise, so
// the endpoint doubles as a readiness probe.
func HealthHandler(checkers ...health.Checker) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		reports := health.CheckAll(ctx, checkers...)

		status := http.StatusOK
		if !health.Healthy(reports) {
			status = http.StatusServiceUnavailable
		}
		return c.JSON(status, reports)
	}
}

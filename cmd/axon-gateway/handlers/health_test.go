package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/mdaops/axon/internal/testutils/http"
	"github.com/mdaops/axon/pkg/cluster/health"
	"github.com/mdaops/axon/pkg/utils/try"

	"github.com/mdaops/axon/cmd/axon-gateway/handlers"
)

func TestHealthHandler(t *testing.T) {
	t.Run("it responds 200 with reports when every service answers", func(t *testing.T) {
		e := echo.New()
		ctx, resp := httptestutil.Get(e, "/health/")

		testee := handlers.HealthHandler(
			health.CheckFunc("valkey", func(context.Context) error { return nil }),
			health.CheckFunc("feast", func(context.Context) error { return nil }),
		)
		if err := testee(ctx); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if resp.Code != http.StatusOK {
			t.Errorf("status code: got %d, want %d", resp.Code, http.StatusOK)
		}

		reports := []health.Report{}
		try.To(0, json.Unmarshal(resp.Body.Bytes(), &reports)).OrFatal(t)
		if len(reports) != 2 {
			t.Fatalf("reports: got %d, want 2", len(reports))
		}
		for _, r := range reports {
			if !r.Ok {
				t.Errorf("service %s is reported unhealthy", r.Service)
			}
		}
	})

	t.Run("it responds 503 when any service fails", func(t *testing.T) {
		e := echo.New()
		ctx, resp := httptestutil.Get(e, "/health/")

		testee := handlers.HealthHandler(
			health.CheckFunc("valkey", func(context.Context) error { return nil }),
			health.CheckFunc("argo", func(context.Context) error {
				return errors.New("connection refused")
			}),
		)
		if err := testee(ctx); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if resp.Code != http.StatusServiceUnavailable {
			t.Errorf("status code: got %d, want %d", resp.Code, http.StatusServiceUnavailable)
		}

		reports := []health.Report{}
		try.To(0, json.Unmarshal(resp.Body.Bytes(), &reports)).OrFatal(t)

		unhealthy := 0
		for _, r := range reports {
			if !r.Ok {
				unhealthy += 1
				if r.Detail != "connection refused" {
					t.Errorf("detail: got %q", r.Detail)
				}
			}
		}
		if unhealthy != 1 {
			t.Errorf("unhealthy services: got %d, want 1", unhealthy)
		}
	})
}

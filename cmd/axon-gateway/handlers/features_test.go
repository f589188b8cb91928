package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/mdaops/axon/internal/testutils/http"
	"github.com/mdaops/axon/pkg/cluster/feast"
	feastmocks "github.com/mdaops/axon/pkg/cluster/feast/mocks"
	"github.com/mdaops/axon/pkg/cluster/valkey"
	valkeymocks "github.com/mdaops/axon/pkg/cluster/valkey/mocks"
	"github.com/mdaops/axon/pkg/utils/try"

	"github.com/mdaops/axon/cmd/axon-gateway/handlers"
)

func TestGetFeaturesHandler(t *testing.T) {

	query := `{"feature_service": "fraud-detection-v1", "entities": {"driver_id": [1001, 1002]}}`

	response := func() *feast.Response {
		r := new(feast.Response)
		r.Metadata.FeatureNames = []string{"driver_id", "trips_today"}
		r.Results = []feast.FeatureVector{
			{Values: []any{float64(1001), float64(3)}, Statuses: []string{"PRESENT", "PRESENT"}},
		}
		return r
	}

	t.Run("it serves a cached vector without asking the feature server", func(t *testing.T) {
		cache := valkeymocks.NewMockCache()
		cache.Impl.GetJSON = func(_ context.Context, key string, v any) error {
			if !strings.HasPrefix(key, "axon:features:") {
				t.Errorf("cache key is out of namespace: %s", key)
			}
			buf := try.To(json.Marshal(response())).OrFatal(t)
			return json.Unmarshal(buf, v)
		}

		fc := feastmocks.NewMockClient()
		fc.Impl.GetOnlineFeatures = func(context.Context, feast.Query) (*feast.Response, error) {
			t.Error("the feature server is asked on cache hit")
			return nil, nil
		}

		e := echo.New()
		ctx, resp := httptestutil.Post(
			e, "/api/features/", strings.NewReader(query),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.GetFeaturesHandler(cache, fc, 30*time.Second, "")
		if err := testee(ctx); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if resp.Code != http.StatusOK {
			t.Errorf("status code: got %d, want %d", resp.Code, http.StatusOK)
		}
		if got := resp.Header().Get(handlers.CacheHeader); got != "hit" {
			t.Errorf("%s: got %q, want hit", handlers.CacheHeader, got)
		}

		payload := new(feast.Response)
		try.To(0, json.Unmarshal(resp.Body.Bytes(), payload)).OrFatal(t)
		if len(payload.Metadata.FeatureNames) != 2 {
			t.Errorf("unexpected payload: %+v", payload)
		}
	})

	t.Run("it asks the feature server and fills the cache on miss", func(t *testing.T) {
		var setKey string
		var setTTL time.Duration
		cache := valkeymocks.NewMockCache()
		cache.Impl.GetJSON = func(context.Context, string, any) error {
			return valkey.ErrMiss
		}
		cache.Impl.SetJSON = func(_ context.Context, key string, _ any, ttl time.Duration) error {
			setKey = key
			setTTL = ttl
			return nil
		}

		fc := feastmocks.NewMockClient()
		fc.Impl.GetOnlineFeatures = func(_ context.Context, q feast.Query) (*feast.Response, error) {
			if q.FeatureService != "fraud-detection-v1" {
				t.Errorf("feature_service: got %q", q.FeatureService)
			}
			return response(), nil
		}

		e := echo.New()
		ctx, resp := httptestutil.Post(
			e, "/api/features/", strings.NewReader(query),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.GetFeaturesHandler(cache, fc, 30*time.Second, "")
		if err := testee(ctx); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if resp.Code != http.StatusOK {
			t.Errorf("status code: got %d, want %d", resp.Code, http.StatusOK)
		}
		if got := resp.Header().Get(handlers.CacheHeader); got != "miss" {
			t.Errorf("%s: got %q, want miss", handlers.CacheHeader, got)
		}
		if setKey == "" {
			t.Error("the cache is not filled")
		}
		if setTTL != 30*time.Second {
			t.Errorf("ttl: got %s, want 30s", setTTL)
		}
	})

	t.Run("it falls back to the configured feature service", func(t *testing.T) {
		cache := valkeymocks.NewMockCache()
		cache.Impl.GetJSON = func(context.Context, string, any) error {
			return valkey.ErrMiss
		}
		cache.Impl.SetJSON = func(context.Context, string, any, time.Duration) error {
			return nil
		}

		fc := feastmocks.NewMockClient()
		fc.Impl.GetOnlineFeatures = func(_ context.Context, q feast.Query) (*feast.Response, error) {
			if q.FeatureService != "default-v1" {
				t.Errorf("feature_service: got %q, want default-v1", q.FeatureService)
			}
			return response(), nil
		}

		e := echo.New()
		ctx, resp := httptestutil.Post(
			e, "/api/features/", strings.NewReader(`{"entities": {"driver_id": [1001]}}`),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.GetFeaturesHandler(cache, fc, 30*time.Second, "default-v1")
		if err := testee(ctx); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if resp.Code != http.StatusOK {
			t.Errorf("status code: got %d, want %d", resp.Code, http.StatusOK)
		}
	})

	t.Run("it degrades to uncached reads when valkey is down", func(t *testing.T) {
		cache := valkeymocks.NewMockCache()
		cache.Impl.GetJSON = func(context.Context, string, any) error {
			return errors.New("connection refused")
		}
		cache.Impl.SetJSON = func(context.Context, string, any, time.Duration) error {
			return errors.New("connection refused")
		}

		fc := feastmocks.NewMockClient()
		fc.Impl.GetOnlineFeatures = func(context.Context, feast.Query) (*feast.Response, error) {
			return response(), nil
		}

		e := echo.New()
		ctx, resp := httptestutil.Post(
			e, "/api/features/", strings.NewReader(query),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.GetFeaturesHandler(cache, fc, 30*time.Second, "")
		if err := testee(ctx); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if resp.Code != http.StatusOK {
			t.Errorf("status code: got %d, want %d", resp.Code, http.StatusOK)
		}
	})

	for name, body := range map[string]string{
		"neither feature_service nor features": `{"entities": {"driver_id": [1]}}`,
		"both feature_service and features":    `{"feature_service": "x", "features": ["a:b"], "entities": {}}`,
		"a non-JSON body":                      `feature_service=x`,
	} {
		t.Run("it rejects a query with "+name, func(t *testing.T) {
			cache := valkeymocks.NewMockCache()
			fc := feastmocks.NewMockClient()

			e := echo.New()
			ctx, _ := httptestutil.Post(
				e, "/api/features/", strings.NewReader(body),
				httptestutil.ContentType("application/json"),
			)

			testee := handlers.GetFeaturesHandler(cache, fc, 30*time.Second, "")
			err := testee(ctx)
			if err == nil {
				t.Fatal("error is expected, but nil")
			}
			var echoErr *echo.HTTPError
			if !errors.As(err, &echoErr) {
				t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
			}
			if echoErr.Code != http.StatusBadRequest {
				t.Errorf("status code: got %d, want %d", echoErr.Code, http.StatusBadRequest)
			}
		})
	}

	t.Run("it responds 502 when the feature server fails", func(t *testing.T) {
		cache := valkeymocks.NewMockCache()
		cache.Impl.GetJSON = func(context.Context, string, any) error {
			return valkey.ErrMiss
		}

		fc := feastmocks.NewMockClient()
		fc.Impl.GetOnlineFeatures = func(context.Context, feast.Query) (*feast.Response, error) {
			return nil, errors.New("connection refused")
		}

		e := echo.New()
		ctx, _ := httptestutil.Post(
			e, "/api/features/", strings.NewReader(query),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.GetFeaturesHandler(cache, fc, 30*time.Second, "")
		err := testee(ctx)
		if err == nil {
			t.Fatal("error is expected, but nil")
		}
		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusBadGateway {
			t.Errorf("status code: got %d, want %d", echoErr.Code, http.StatusBadGateway)
		}
	})
}

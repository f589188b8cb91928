package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	apierr "github.com/mdaops/axon/pkg/api/errors"
	"github.com/mdaops/axon/pkg/cluster/feast"
	"github.com/mdaops/axon/pkg/cluster/valkey"
)

// CacheHeader tells the caller whether the feature vector came from
// valkey or from the feature server.
const CacheHeader = "X-Axon-Cache"

// GetFeaturesHandler serves online features, read through a valkey
// cache in front of the feature server.
//
// Queries naming neither a feature service nor features fall back
// to defaultService when one is configured.
//
// Cache failures are not fatal: a broken valkey degrades to
// uncached reads.
func GetFeaturesHandler(cache valkey.Cache, fc feast.Client, ttl time.Duration, defaultService string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		q := feast.Query{}
		if err := c.Bind(&q); err != nil {
			return apierr.BadRequest("request body should be a feature query in JSON", err)
		}
		if q.FeatureService == "" && len(q.Features) == 0 {
			q.FeatureService = defaultService
		}
		if q.FeatureService == "" && len(q.Features) == 0 {
			return apierr.BadRequest(`either "feature_service" or "features" is required`, nil)
		}
		if q.FeatureService != "" && 0 < len(q.Features) {
			return apierr.BadRequest(`"feature_service" and "features" are exclusive`, nil)
		}

		key, err := valkey.Key("features", q)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		cached := new(feast.Response)
		switch err := cache.GetJSON(ctx, key, cached); {
		case err == nil:
			c.Response().Header().Set(CacheHeader, "hit")
			return c.JSON(http.StatusOK, cached)
		case !errors.Is(err, valkey.ErrMiss):
			c.Logger().Warnf("valkey read failed (key = %s): %s", key, err)
		}

		resp, err := fc.GetOnlineFeatures(ctx, q)
		if err != nil {
			return apierr.BadGateway("is the feature server up?", err)
		}

		if err := cache.SetJSON(ctx, key, resp, ttl); err != nil {
			c.Logger().Warnf("valkey write failed (key = %s): %s", key, err)
		}

		c.Response().Header().Set(CacheHeader, "miss")
		return c.JSON(http.StatusOK, resp)
	}
}

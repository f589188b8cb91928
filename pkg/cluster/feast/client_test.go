package feast_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mdaops/axon/pkg/cluster/feast"
)

func TestGetOnlineFeatures(t *testing.T) {
	t.Run("it posts a feature service query and decodes the columnar response", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/get-online-features" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("cannot decode request body: %s", err)
			}
			w.Write([]byte(`{
				"metadata": {"feature_names": ["driver_id", "acc_rate"]},
				"results": [
					{"values": [1001, 1002], "statuses": ["PRESENT", "PRESENT"]},
					{"values": [0.92, 0.85], "statuses": ["PRESENT", "PRESENT"]}
				]
			}`))
		}))
		defer server.Close()

		testee := feast.NewClient(server.URL)

		resp, err := testee.GetOnlineFeatures(context.Background(), feast.Query{
			FeatureService: "driver_activity",
			Entities:       map[string][]any{"driver_id": {1001, 1002}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if gotBody["feature_service"] != "driver_activity" {
			t.Errorf("unexpected request body: %+v", gotBody)
		}
		if len(resp.Metadata.FeatureNames) != 2 {
			t.Errorf("unexpected feature names: %+v", resp.Metadata.FeatureNames)
		}
		if len(resp.Results) != 2 || len(resp.Results[1].Values) != 2 {
			t.Errorf("unexpected results: %+v", resp.Results)
		}
	})

	t.Run("it rejects a query naming both feature service and features", func(t *testing.T) {
		testee := feast.NewClient("http://feast-feature-server:6566")

		_, err := testee.GetOnlineFeatures(context.Background(), feast.Query{
			FeatureService: "driver_activity",
			Features:       []string{"driver_stats:acc_rate"},
			Entities:       map[string][]any{"driver_id": {1001}},
		})
		if err == nil {
			t.Error("error is expected, but nil")
		}
	})

	t.Run("it returns error with server message on non-2xx", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "feature service not found", http.StatusNotFound)
		}))
		defer server.Close()

		testee := feast.NewClient(server.URL)

		_, err := testee.GetOnlineFeatures(context.Background(), feast.Query{
			FeatureService: "no-such-service",
			Entities:       map[string][]any{"driver_id": {1001}},
		})
		if err == nil {
			t.Error("error is expected, but nil")
		}
	})
}

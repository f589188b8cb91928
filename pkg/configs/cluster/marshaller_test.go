package cluster_test

import (
	"testing"
	"time"

	"github.com/mdaops/axon/pkg/configs/cluster"
)

func TestLoadConfig(t *testing.T) {

	t.Run("it can be created from a config file", func(t *testing.T) {
		result, err := cluster.LoadConfig("./testdata/config.yaml")

		if err != nil {
			t.Fatalf("failed to parse config.: %v", err)
		}

		expectedArgo := "argo-server.argo.svc.cluster.local:2746"
		if result.Argo.Addr() != expectedArgo {
			t.Errorf("unmatch argo:%s, expected:%s", result.Argo.Addr(), expectedArgo)
		}
		expectedFeast := "feast-feature-server.feast.svc.cluster.local:6566"
		if result.Feast.Addr() != expectedFeast {
			t.Errorf("unmatch feast:%s, expected:%s", result.Feast.Addr(), expectedFeast)
		}
		expectedFiler := "seaweedfs-filer.storage.svc.cluster.local:8888"
		if result.Filer.Addr() != expectedFiler {
			t.Errorf("unmatch filer:%s, expected:%s", result.Filer.Addr(), expectedFiler)
		}
		if result.Gateway.CacheTTL != 1*time.Minute {
			t.Errorf("unmatch cacheTTL:%s, expected:1m", result.Gateway.CacheTTL)
		}
		if result.Gateway.FeatureService != "fraud_detection_v2" {
			t.Errorf("unmatch featureService:%s", result.Gateway.FeatureService)
		}
	})

	t.Run("fields not in the file keep the default value", func(t *testing.T) {
		result, err := cluster.Unmarshal([]byte("s3:\n  host: seaweed-custom\n"))

		if err != nil {
			t.Fatalf("failed to parse config.: %v", err)
		}

		if result.S3.Host != "seaweed-custom" {
			t.Errorf("unmatch s3 host: %s", result.S3.Host)
		}
		if result.S3.Port != cluster.DefaultS3Port {
			t.Errorf("s3 port is not defaulted: %d", result.S3.Port)
		}
		if result.Valkey.Addr() != "valkey:6379" {
			t.Errorf("valkey is not defaulted: %s", result.Valkey.Addr())
		}
		if result.Argo.Addr() != "argo-server:2746" {
			t.Errorf("argo is not defaulted: %s", result.Argo.Addr())
		}
	})
}

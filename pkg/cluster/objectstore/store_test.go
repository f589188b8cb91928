package objectstore_test

import (
	"testing"

	"github.com/mdaops/axon/pkg/cluster/objectstore"
)

func TestParseURI(t *testing.T) {
	t.Run("it splits s3 uri into bucket and key", func(t *testing.T) {
		bucket, key, err := objectstore.ParseURI("s3://axon-artifacts/datasets/fashion-mnist/v1/samples.tar")
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if bucket != "axon-artifacts" {
			t.Errorf("unexpected bucket: %s", bucket)
		}
		if key != "datasets/fashion-mnist/v1/samples.tar" {
			t.Errorf("unexpected key: %s", key)
		}
	})

	t.Run("it rejects uri without s3 scheme", func(t *testing.T) {
		if _, _, err := objectstore.ParseURI("http://bucket/key"); err == nil {
			t.Error("error is expected, but nil")
		}
	})

	t.Run("it rejects uri without key", func(t *testing.T) {
		if _, _, err := objectstore.ParseURI("s3://bucket-only"); err == nil {
			t.Error("error is expected, but nil")
		}
	})
}

func TestObjectInfoURI(t *testing.T) {
	t.Run("URI and ParseURI are inverse", func(t *testing.T) {
		info := objectstore.ObjectInfo{Bucket: "axon-artifacts", Key: "a/b/c"}

		bucket, key, err := objectstore.ParseURI(info.URI())
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if bucket != info.Bucket || key != info.Key {
			t.Errorf("roundtrip is broken: (%s, %s)", bucket, key)
		}
	})
}

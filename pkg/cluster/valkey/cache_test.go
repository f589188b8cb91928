package valkey_test

import (
	"strings"
	"testing"

	"github.com/mdaops/axon/pkg/cluster/valkey"
)

func TestKey(t *testing.T) {
	t.Run("structurally equal payloads share a key", func(t *testing.T) {
		type query struct {
			Service  string
			Entities map[string][]int
		}

		a, err := valkey.Key("features", query{
			Service:  "driver_activity",
			Entities: map[string][]int{"driver_id": {1001, 1002}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		b, err := valkey.Key("features", query{
			Service:  "driver_activity",
			Entities: map[string][]int{"driver_id": {1001, 1002}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if a != b {
			t.Errorf("keys differ: %s != %s", a, b)
		}
	})

	t.Run("different payloads get different keys", func(t *testing.T) {
		a, _ := valkey.Key("features", map[string]int{"driver_id": 1001})
		b, _ := valkey.Key("features", map[string]int{"driver_id": 1002})

		if a == b {
			t.Errorf("keys collide: %s", a)
		}
	})

	t.Run("keys are namespaced under axon", func(t *testing.T) {
		key, err := valkey.Key("features", "payload")
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if !strings.HasPrefix(key, "axon:features:") {
			t.Errorf("unexpected key: %s", key)
		}
	})
}

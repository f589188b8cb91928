package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mdaops/axon/pkg/utils/retry"
)

func TestBlocking(t *testing.T) {
	t.Run("it retries until f stops returning ErrRetry", func(t *testing.T) {
		ctx := context.Background()

		called := 0
		value, err := retry.Blocking(
			ctx, retry.StaticBackoff(1*time.Millisecond),
			func() (int, error) {
				called += 1
				if called < 3 {
					return 0, retry.ErrRetry
				}
				return 42, nil
			},
		)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if called != 3 {
			t.Errorf("f is called %d times (expected: 3)", called)
		}
		if value != 42 {
			t.Errorf("unexpected value: %d (expected: 42)", value)
		}
	})

	t.Run("it stops on non-retry error", func(t *testing.T) {
		ctx := context.Background()

		expectedErr := errors.New("fatal")
		called := 0
		_, err := retry.Blocking(
			ctx, retry.StaticBackoff(1*time.Millisecond),
			func() (int, error) {
				called += 1
				return 0, expectedErr
			},
		)
		if !errors.Is(err, expectedErr) {
			t.Errorf("unexpected error: %s", err)
		}
		if called != 1 {
			t.Errorf("f is called %d times (expected: 1)", called)
		}
	})

	t.Run("it stops when context is canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := retry.Blocking(
			ctx, retry.StaticBackoff(10*time.Millisecond),
			func() (int, error) {
				t.Fatal("f should not be called")
				return 0, nil
			},
		)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %s", err)
		}
	})
}

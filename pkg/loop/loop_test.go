package loop_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mdaops/axon/pkg/loop"
)

func TestStart(t *testing.T) {
	t.Run("it loops until task returns Break", func(t *testing.T) {
		ctx := context.Background()

		value, err := loop.Start(ctx, 1, func(_ context.Context, value int) (int, loop.Next) {
			value += 1
			if 10 <= value {
				return value, loop.Break(nil)
			}
			return value, loop.Continue(0)
		})

		if err != nil {
			t.Errorf("unexpected error: %s", err)
		}
		if value != 10 {
			t.Errorf("unexpected value: %d (expected: 10)", value)
		}
	})

	t.Run("it returns error passed to Break", func(t *testing.T) {
		ctx := context.Background()

		expectedErr := errors.New("boom")
		value, err := loop.Start(ctx, "initial", func(_ context.Context, value string) (string, loop.Next) {
			return "last", loop.Break(expectedErr)
		})

		if !errors.Is(err, expectedErr) {
			t.Errorf("unexpected error: %s", err)
		}
		if value != "last" {
			t.Errorf("unexpected value: %s (expected: last)", value)
		}
	})

	t.Run("it does not start task when context is canceled already", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		value, err := loop.Start(ctx, 42, func(_ context.Context, value int) (int, loop.Next) {
			t.Fatal("task should not be called")
			return value, loop.Break(nil)
		})

		if !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %s", err)
		}
		if value != 42 {
			t.Errorf("unexpected value: %d (expected: 42 = init)", value)
		}
	})

	t.Run("it breaks with context error while waiting interval", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		called := 0
		_, err := loop.Start(ctx, 0, func(_ context.Context, value int) (int, loop.Next) {
			called += 1
			cancel()
			return value, loop.Continue(10 * time.Second)
		})

		if !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %s", err)
		}
		if called != 1 {
			t.Errorf("task is called %d times (expected: 1)", called)
		}
	})
}

// this package provide "mock" implementation of the valkey cache for testing.
package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/mdaops/axon/pkg/cluster/valkey"
)

type MockCache struct {
	Impl struct {
		GetJSON    func(context.Context, string, any) error
		SetJSON    func(context.Context, string, any, time.Duration) error
		Invalidate func(context.Context, ...string) error
		Healthz    func(context.Context) error
		Close      func() error
	}
}

var _ valkey.Cache = &MockCache{}

func NewMockCache() *MockCache {
	return &MockCache{}
}

func (m *MockCache) GetJSON(ctx context.Context, key string, v any) error {
	if m.Impl.GetJSON == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.GetJSON(ctx, key, v)
}

func (m *MockCache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if m.Impl.SetJSON == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.SetJSON(ctx, key, v, ttl)
}

func (m *MockCache) Invalidate(ctx context.Context, keys ...string) error {
	if m.Impl.Invalidate == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.Invalidate(ctx, keys...)
}

func (m *MockCache) Healthz(ctx context.Context) error {
	if m.Impl.Healthz == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.Healthz(ctx)
}

func (m *MockCache) Close() error {
	if m.Impl.Close == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.Close()
}

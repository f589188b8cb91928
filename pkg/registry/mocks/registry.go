// this package provide "mock" implementation of the registry for testing.
package mocks

import (
	"context"
	"errors"

	"github.com/mdaops/axon/pkg/registry"
)

type MockRegistry struct {
	Impl struct {
		Record func(context.Context, registry.Artifact) error
		Get    func(context.Context, string, string) (registry.Artifact, error)
		Find   func(context.Context, registry.Query) ([]registry.Artifact, error)
		Latest func(context.Context, string) (registry.Artifact, error)
	}
}

var _ registry.Registry = &MockRegistry{}

func NewMockRegistry() *MockRegistry {
	return &MockRegistry{}
}

func (m *MockRegistry) Record(ctx context.Context, a registry.Artifact) error {
	if m.Impl.Record == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.Record(ctx, a)
}

func (m *MockRegistry) Get(ctx context.Context, name string, version string) (registry.Artifact, error) {
	if m.Impl.Get == nil {
		return registry.Artifact{}, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Get(ctx, name, version)
}

func (m *MockRegistry) Find(ctx context.Context, q registry.Query) ([]registry.Artifact, error) {
	if m.Impl.Find == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Find(ctx, q)
}

func (m *MockRegistry) Latest(ctx context.Context, name string) (registry.Artifact, error) {
	if m.Impl.Latest == nil {
		return registry.Artifact{}, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Latest(ctx, name)
}

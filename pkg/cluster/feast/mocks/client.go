// this package provide "mock" implementation of the feast client for testing.
package mocks

import (
	"context"
	"errors"

	"github.com/mdaops/axon/pkg/cluster/feast"
)

type MockClient struct {
	Impl struct {
		GetOnlineFeatures func(context.Context, feast.Query) (*feast.Response, error)
		Healthz           func(context.Context) error
	}
}

var _ feast.Client = &MockClient{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) GetOnlineFeatures(ctx context.Context, q feast.Query) (*feast.Response, error) {
	if m.Impl.GetOnlineFeatures == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.GetOnlineFeatures(ctx, q)
}

func (m *MockClient) Healthz(ctx context.Context) error {
	if m.Impl.Healthz == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.Healthz(ctx)
}

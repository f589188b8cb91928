// this package provide "mock" implementation of the argo client for testing.
package mocks

import (
	"context"
	"errors"

	"github.com/mdaops/axon/pkg/cluster/argo"
)

type MockClient struct {
	Impl struct {
		ListWorkflows  func(context.Context, string) ([]argo.Workflow, error)
		GetWorkflow    func(context.Context, string, string) (argo.Workflow, error)
		SubmitWorkflow func(context.Context, string, argo.SubmitRequest) (argo.Workflow, error)
		StopWorkflow   func(context.Context, string, string) (argo.Workflow, error)
		Healthz        func(context.Context) error
	}
}

var _ argo.Client = &MockClient{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) ListWorkflows(ctx context.Context, namespace string) ([]argo.Workflow, error) {
	if m.Impl.ListWorkflows == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.ListWorkflows(ctx, namespace)
}

func (m *MockClient) GetWorkflow(ctx context.Context, namespace string, name string) (argo.Workflow, error) {
	if m.Impl.GetWorkflow == nil {
		return argo.Workflow{}, errors.New("[MOCK] not implemented")
	}
	return m.Impl.GetWorkflow(ctx, namespace, name)
}

func (m *MockClient) SubmitWorkflow(ctx context.Context, namespace string, sreq argo.SubmitRequest) (argo.Workflow, error) {
	if m.Impl.SubmitWorkflow == nil {
		return argo.Workflow{}, errors.New("[MOCK] not implemented")
	}
	return m.Impl.SubmitWorkflow(ctx, namespace, sreq)
}

func (m *MockClient) StopWorkflow(ctx context.Context, namespace string, name string) (argo.Workflow, error) {
	if m.Impl.StopWorkflow == nil {
		return argo.Workflow{}, errors.New("[MOCK] not implemented")
	}
	return m.Impl.StopWorkflow(ctx, namespace, name)
}

func (m *MockClient) Healthz(ctx context.Context) error {
	if m.Impl.Healthz == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.Healthz(ctx)
}

// this package provide "mock" implementation of the object store for testing.
package mocks

import (
	"context"
	"errors"
	"io"

	"github.com/mdaops/axon/pkg/cluster/objectstore"
)

type MockStore struct {
	Impl struct {
		EnsureBucket func(context.Context, string) error
		Put          func(context.Context, string, string, io.Reader, int64, string) (objectstore.ObjectInfo, error)
		Get          func(context.Context, string, string, func(io.Reader) error) error
		Stat         func(context.Context, string, string) (objectstore.ObjectInfo, error)
		Remove       func(context.Context, string, string) error
	}
}

var _ objectstore.Store = &MockStore{}

func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) EnsureBucket(ctx context.Context, bucket string) error {
	if m.Impl.EnsureBucket == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.EnsureBucket(ctx, bucket)
}

func (m *MockStore) Put(ctx context.Context, bucket string, key string, content io.Reader, size int64, contentType string) (objectstore.ObjectInfo, error) {
	if m.Impl.Put == nil {
		return objectstore.ObjectInfo{}, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Put(ctx, bucket, key, content, size, contentType)
}

func (m *MockStore) Get(ctx context.Context, bucket string, key string, handler func(io.Reader) error) error {
	if m.Impl.Get == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.Get(ctx, bucket, key, handler)
}

func (m *MockStore) Stat(ctx context.Context, bucket string, key string) (objectstore.ObjectInfo, error) {
	if m.Impl.Stat == nil {
		return objectstore.ObjectInfo{}, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Stat(ctx, bucket, key)
}

func (m *MockStore) Remove(ctx context.Context, bucket string, key string) error {
	if m.Impl.Remove == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.Remove(ctx, bucket, key)
}

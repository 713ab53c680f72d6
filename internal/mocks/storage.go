package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockDisk is a mock implementation of storage.Disk
type MockDisk struct {
	mock.Mock
}

func (m *MockDisk) Put(ctx context.Context, path string, r io.Reader, contentType string) error {
	args := m.Called(ctx, path, r, contentType)
	return args.Error(0)
}

func (m *MockDisk) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockDisk) Exists(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

func (m *MockDisk) URL(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

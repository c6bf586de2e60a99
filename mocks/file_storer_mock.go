package mocks

import (
	"context"
	"mime/multipart"

	"github.com/stretchr/testify/mock"
)

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) Init(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStorageService) SaveFile(ctx context.Context, file *multipart.FileHeader, fileType string) (string, string, error) {
	args := m.Called(ctx, file, fileType)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorageService) ReadFile(ctx context.Context, filename string) ([]byte, error) {
	args := m.Called(ctx, filename)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorageService) DeleteFile(ctx context.Context, filename string) error {
	args := m.Called(ctx, filename)
	return args.Error(0)
}

func (m *MockStorageService) Backend() string {
	args := m.Called()
	return args.String(0)
}
